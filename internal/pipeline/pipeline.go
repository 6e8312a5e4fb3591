// Package pipeline sequences the deployment phases.
//
// Execution is strictly sequential: every phase depends on the one before
// it (an image needs a cluster, a rollout needs applied manifests, a tunnel
// needs a rollout). Phases fail the run by returning an error; recoverable
// problems go into the report as warnings instead.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/banwar54/mthree/internal/config"
	"github.com/banwar54/mthree/internal/toolrunner"
)

// Phase is one sequential step of the deployment.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Run executes the phase. A returned error is fatal and stops the run.
	Run(ctx *Context) error
}

// Context wraps the dependencies and state shared by all phases.
type Context struct {
	context.Context
	Config   *config.Config
	Timeouts *config.Timeouts
	Runner   toolrunner.Runner
	Observer Observer
	Report   *Report
}

// NewContext creates a pipeline context.
func NewContext(ctx context.Context, cfg *config.Config, runner toolrunner.Runner, observer Observer) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Timeouts: config.LoadTimeouts(),
		Runner:   runner,
		Observer: observer,
		Report:   &Report{},
	}
}

// RunPhases executes all phases sequentially, stopping at the first fatal
// error. The failing phase is named in the returned error so the operator
// sees exactly which step broke.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting deployment with %d phases...", len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		ctx.Observer.Event(Event{Type: EventPhaseStarted, Phase: phase.Name(), Message: "starting"})
		ctx.Observer.Printf("[%s] starting", name)

		if err := phase.Run(ctx); err != nil {
			ctx.Observer.Event(Event{Type: EventPhaseFailed, Phase: phase.Name(), Message: err.Error()})
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		ctx.Observer.Event(Event{
			Type:    EventPhaseCompleted,
			Phase:   phase.Name(),
			Message: fmt.Sprintf("completed in %v", time.Since(phaseStart).Round(time.Millisecond)),
		})
	}

	ctx.Observer.Printf("Deployment pipeline completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
