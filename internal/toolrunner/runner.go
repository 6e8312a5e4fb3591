// Package toolrunner provides execution of external CLI tools.
//
// Every interaction with minikube, docker, and kubectl goes through the
// Runner interface so components stay testable without spawning processes.
package toolrunner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command describes a single external tool invocation.
type Command struct {
	// Name is the binary to invoke, resolved via PATH.
	Name string

	// Args are the command-line arguments.
	Args []string

	// Env is appended to the current process environment when non-nil.
	Env []string

	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// String renders the command for log output.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner executes external tool commands.
type Runner interface {
	// Run executes the command and returns its combined output.
	// A non-nil error indicates a non-zero exit or a failure to start;
	// the output captured up to that point is still returned.
	Run(ctx context.Context, cmd Command) (string, error)
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct{}

// NewExecRunner creates a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (string, error) {
	// #nosec G204 - command names and arguments come from internal tables, not user input
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if cmd.Env != nil {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.Dir = cmd.Dir

	output, err := c.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("%s: %w", cmd.String(), err)
	}
	return string(output), nil
}
