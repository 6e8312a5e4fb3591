package toolrunner

import (
	"context"
	"strings"
	"sync"
)

// FakeResponse is a scripted response for a FakeRunner.
type FakeResponse struct {
	Output string
	Err    error
}

// FakeRunner is a Runner for tests. It records every command it receives
// and answers from scripted responses matched by command prefix.
//
// Responses for the same prefix are consumed in order, so a test can make
// the first two invocations fail and the third succeed. The last response
// for a prefix is sticky once the queue is drained.
type FakeRunner struct {
	mu        sync.Mutex
	Commands  []Command
	responses map[string][]FakeResponse
}

// NewFakeRunner creates an empty FakeRunner. Unscripted commands succeed
// with empty output.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string][]FakeResponse)}
}

// Respond scripts a response for commands whose rendered form starts with prefix.
func (f *FakeRunner) Respond(prefix string, output string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[prefix] = append(f.responses[prefix], FakeResponse{Output: output, Err: err})
}

// Run implements Runner.
func (f *FakeRunner) Run(_ context.Context, cmd Command) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Commands = append(f.Commands, cmd)

	rendered := cmd.String()
	for prefix, queue := range f.responses {
		if !strings.HasPrefix(rendered, prefix) {
			continue
		}
		resp := queue[0]
		if len(queue) > 1 {
			f.responses[prefix] = queue[1:]
		}
		return resp.Output, resp.Err
	}
	return "", nil
}

// Calls returns the rendered form of every command received so far.
func (f *FakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	calls := make([]string, 0, len(f.Commands))
	for _, cmd := range f.Commands {
		calls = append(calls, cmd.String())
	}
	return calls
}

// CallCount returns how many received commands start with prefix.
func (f *FakeRunner) CallCount(prefix string) int {
	count := 0
	for _, call := range f.Calls() {
		if strings.HasPrefix(call, prefix) {
			count++
		}
	}
	return count
}
