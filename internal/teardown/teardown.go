// Package teardown deletes everything a deploy run provisioned.
//
// Teardown makes maximal forward progress: individual step failures are
// collected as warnings, never fatal. The cluster itself is left running.
package teardown

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/banwar54/mthree/internal/manifests"
	"github.com/banwar54/mthree/internal/toolrunner"
)

// StepResult records one teardown step.
type StepResult struct {
	Name string
	Err  error
}

// Report summarizes a teardown run.
type Report struct {
	// FastPath is true when the namespace-scope deletion succeeded and the
	// per-resource fallback was skipped.
	FastPath bool

	Steps []StepResult

	// Warnings aggregates every non-fatal failure.
	Warnings *multierror.Error
}

// TunnelStopper kills a supervised tunnel process.
type TunnelStopper interface {
	Stop(namespace, service string) error
}

// ResourceDeleter removes the resources of a single descriptor.
type ResourceDeleter interface {
	Delete(ctx context.Context, d manifests.Descriptor) error
}

// Logger receives progress output.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Manager tears down provisioned resources in reverse dependency order.
type Manager struct {
	runner        toolrunner.Runner
	deleter       ResourceDeleter
	tunnels       TunnelStopper
	logger        Logger
	deleteTimeout time.Duration
}

// NewManager creates a teardown manager. deleteTimeout bounds the
// namespace-scope kubectl deletion; per-descriptor deletes are bounded by
// the deleter itself.
func NewManager(runner toolrunner.Runner, deleter ResourceDeleter, tunnels TunnelStopper, logger Logger, deleteTimeout time.Duration) *Manager {
	return &Manager{runner: runner, deleter: deleter, tunnels: tunnels, logger: logger, deleteTimeout: deleteTimeout}
}

// TeardownAll removes everything: the tunnel first, unconditionally; then a
// namespace-scope deletion as the fast path; and when that fails, each
// descriptor individually in reverse application order, best-effort.
func (m *Manager) TeardownAll(ctx context.Context, namespace, service string, descriptors []manifests.Descriptor) *Report {
	report := &Report{}

	if err := m.tunnels.Stop(namespace, service); err != nil {
		m.logger.Printf("Warning: failed to stop tunnel: %v", err)
		report.Warnings = multierror.Append(report.Warnings, fmt.Errorf("tunnel stop: %w", err))
	}
	report.Steps = append(report.Steps, StepResult{Name: "tunnel"})

	if err := m.deleteNamespace(ctx, namespace); err == nil {
		m.logger.Printf("Namespace %q deleted; contained resources removed transitively", namespace)
		report.FastPath = true
		report.Steps = append(report.Steps, StepResult{Name: "namespace " + namespace})
		return report
	} else {
		m.logger.Printf("Namespace deletion failed (%v), falling back to per-resource teardown", err)
		report.Warnings = multierror.Append(report.Warnings, fmt.Errorf("namespace fast path: %w", err))
	}

	// Reverse of the application order: autoscaling and networking before
	// the workload, the workload before its configuration, the namespace last.
	for i := len(descriptors) - 1; i >= 0; i-- {
		d := descriptors[i]
		step := StepResult{Name: d.Name()}
		if err := m.deleter.Delete(ctx, d); err != nil {
			m.logger.Printf("Warning: failed to delete %s: %v", d.Name(), err)
			step.Err = err
			report.Warnings = multierror.Append(report.Warnings, fmt.Errorf("delete %s: %w", d.Name(), err))
		} else {
			m.logger.Printf("Deleted %s", d.Name())
		}
		report.Steps = append(report.Steps, step)
	}

	return report
}

// deleteNamespace issues the namespace-scope deletion fast path. The
// deadline keeps a hung kubectl from blocking teardown; expiry falls
// through to the per-resource fallback like any other failure.
func (m *Manager) deleteNamespace(ctx context.Context, namespace string) error {
	if m.deleteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.deleteTimeout)
		defer cancel()
	}

	output, err := m.runner.Run(ctx, toolrunner.Command{
		Name: "kubectl",
		Args: []string{"delete", "namespace", namespace, "--ignore-not-found"},
	})
	if err != nil {
		return fmt.Errorf("kubectl delete namespace failed: %w\nOutput: %s", err, output)
	}
	return nil
}
