// Package addons enables optional minikube cluster features best-effort.
//
// Addon failures never abort the deployment. Outcomes carry a status and
// reason instead of a bare boolean so callers can aggregate warnings.
package addons

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/banwar54/mthree/internal/toolrunner"
)

// Status classifies the result of an addon enable attempt.
type Status string

const (
	// StatusEnabled means the addon was enabled by this run.
	StatusEnabled Status = "enabled"
	// StatusAlreadyEnabled means the addon was enabled before this run.
	StatusAlreadyEnabled Status = "already-enabled"
	// StatusWarned means enabling failed; the pipeline continues.
	StatusWarned Status = "warned"
)

// Outcome is the tagged result of a TryEnable call.
type Outcome struct {
	Addon  string
	Status Status

	// Reason explains a warned outcome.
	Reason string
}

// Enabled reports whether the addon is usable after the call.
func (o Outcome) Enabled() bool {
	return o.Status == StatusEnabled || o.Status == StatusAlreadyEnabled
}

// Logger receives progress output.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Enabler toggles minikube addons.
type Enabler struct {
	runner  toolrunner.Runner
	logger  Logger
	profile string
}

// NewEnabler creates an addon enabler for the given minikube profile.
func NewEnabler(runner toolrunner.Runner, logger Logger, profile string) *Enabler {
	return &Enabler{runner: runner, logger: logger, profile: profile}
}

// addonEntry mirrors one entry of `minikube addons list -o json`.
type addonEntry struct {
	Status string `json:"Status"`
}

// TryEnable enables an addon best-effort. It never returns an error;
// failures produce a warned Outcome and the caller decides how to surface it.
func (e *Enabler) TryEnable(ctx context.Context, name string) Outcome {
	if e.IsEnabled(ctx, name) {
		e.logger.Printf("Addon %q already enabled", name)
		return Outcome{Addon: name, Status: StatusAlreadyEnabled}
	}

	output, err := e.runner.Run(ctx, toolrunner.Command{
		Name: "minikube",
		Args: []string{"addons", "enable", name, "-p", e.profile},
	})
	if err != nil {
		reason := fmt.Sprintf("enable failed: %v (output: %s)", err, output)
		e.logger.Printf("Warning: addon %q %s", name, reason)
		return Outcome{Addon: name, Status: StatusWarned, Reason: reason}
	}

	e.logger.Printf("Addon %q enabled", name)
	return Outcome{Addon: name, Status: StatusEnabled}
}

// IsEnabled queries the addon list. Query failures are treated as
// not-enabled so TryEnable proceeds to the enable attempt.
func (e *Enabler) IsEnabled(ctx context.Context, name string) bool {
	output, err := e.runner.Run(ctx, toolrunner.Command{
		Name: "minikube",
		Args: []string{"addons", "list", "-p", e.profile, "-o", "json"},
	})
	if err != nil {
		return false
	}

	var addons map[string]addonEntry
	if err := json.Unmarshal([]byte(output), &addons); err != nil {
		return false
	}

	entry, ok := addons[name]
	return ok && entry.Status == "enabled"
}
