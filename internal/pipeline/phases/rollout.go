package phases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/banwar54/mthree/internal/k8s"
	"github.com/banwar54/mthree/internal/pipeline"
)

// RolloutClient is the Kubernetes API surface the rollout phase needs.
type RolloutClient interface {
	WaitReady(ctx context.Context, target k8s.RolloutTarget, interval, timeout time.Duration) (k8s.RolloutState, error)
	CollectDiagnostics(ctx context.Context, namespace, labelSelector string, podSamples int) (*k8s.Diagnostics, error)
}

// Rollout waits for the workload to become ready.
type Rollout struct {
	// newClient is swapped in tests.
	newClient func(contextName string) (RolloutClient, error)
}

// NewRollout creates the rollout monitoring phase.
func NewRollout() *Rollout {
	return &Rollout{
		newClient: func(contextName string) (RolloutClient, error) {
			return k8s.NewClient("", contextName)
		},
	}
}

// Name implements pipeline.Phase.
func (p *Rollout) Name() string { return "rollout" }

// Run implements pipeline.Phase. A rollout timeout is warned, not fatal:
// diagnostics are collected and printed, and the pipeline continues so the
// operator still gets access instructions for whatever succeeded.
func (p *Rollout) Run(ctx *pipeline.Context) error {
	client, err := p.newClient(ctx.Config.Cluster.Profile)
	if err != nil {
		return fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	target := k8s.RolloutTarget{
		Deployment: ctx.Config.Rollout.Deployment,
		Namespace:  ctx.Config.App.Namespace,
	}

	ctx.Observer.Printf("Waiting for deployment %s/%s to become ready (timeout %v)...",
		target.Namespace, target.Deployment, ctx.Timeouts.Rollout)

	state, err := client.WaitReady(ctx, target, ctx.Timeouts.RolloutPoll, ctx.Timeouts.Rollout)
	if err != nil {
		return fmt.Errorf("rollout monitoring failed: %w", err)
	}

	if state == k8s.RolloutReady {
		ctx.Observer.Printf("Deployment %s is ready", target.Deployment)
		return nil
	}

	ctx.Report.Warn(p.Name(), "deployment %s did not become ready within %v",
		target.Deployment, ctx.Timeouts.Rollout)
	p.printDiagnostics(ctx, client, target)
	return nil
}

// printDiagnostics surfaces pod states and recent logs on timeout.
func (p *Rollout) printDiagnostics(ctx *pipeline.Context, client RolloutClient, target k8s.RolloutTarget) {
	selector := "app=" + ctx.Config.App.Name
	diag, err := client.CollectDiagnostics(ctx, target.Namespace, selector, ctx.Config.Diagnostics.PodSamples)
	if err != nil {
		ctx.Observer.Printf("Warning: failed to collect diagnostics: %v", err)
		return
	}

	ctx.Observer.Printf("Rollout diagnostics: %d pod(s) matching %q", len(diag.Pods), selector)
	for _, pod := range diag.Pods {
		ctx.Observer.Printf("  pod %s: phase=%s ready=%t restarts=%d", pod.Name, pod.Phase, pod.Ready, pod.Restarts)
	}
	for name, logs := range diag.Logs {
		trimmed := strings.TrimSpace(logs)
		if trimmed == "" {
			trimmed = "<no log output>"
		}
		ctx.Observer.Printf("  recent logs from %s:\n%s", name, trimmed)
	}
}
