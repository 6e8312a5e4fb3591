package manifests

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/banwar54/mthree/internal/config"
	"github.com/banwar54/mthree/internal/toolrunner"
	"github.com/banwar54/mthree/internal/util/retry"
)

// ApplyError reports that a required descriptor failed to apply.
// It is fatal: descriptors after the failure point are never attempted.
type ApplyError struct {
	Descriptor Descriptor
	Output     string
	Err        error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("required manifest %s (%s) failed to apply: %v", e.Descriptor.Name(), e.Descriptor.Kind, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

// ResultStatus classifies a per-descriptor apply outcome.
type ResultStatus string

const (
	// StatusApplied means the descriptor applied cleanly.
	StatusApplied ResultStatus = "applied"
	// StatusWarned means an optional descriptor failed; the run continued.
	StatusWarned ResultStatus = "warned"
	// StatusFailed means a required descriptor failed; the run aborted.
	StatusFailed ResultStatus = "failed"
	// StatusSkipped means the descriptor was never attempted because an
	// earlier required descriptor already failed.
	StatusSkipped ResultStatus = "skipped"
)

// Result is the outcome of applying one descriptor.
type Result struct {
	Descriptor Descriptor
	Status     ResultStatus
	Reason     string
}

// ApplyReport enumerates per-descriptor outcomes for observability.
type ApplyReport struct {
	Results []Result
}

// Warnings returns the warned results.
func (r *ApplyReport) Warnings() []Result {
	var warned []Result
	for _, res := range r.Results {
		if res.Status == StatusWarned {
			warned = append(warned, res)
		}
	}
	return warned
}

// Logger receives progress output.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Applier applies descriptors through kubectl with create-or-update semantics.
type Applier struct {
	runner        toolrunner.Runner
	logger        Logger
	maxAttempts   int
	retryDelay    time.Duration
	applyTimeout  time.Duration
	deleteTimeout time.Duration
}

// NewApplier creates an applier. timeouts bounds both the retry loop around
// transient API-server connection failures (ApplyAttempts total invocations,
// ApplyRetryDelay between them) and the deadline of each kubectl invocation
// (Apply for applies, Delete for deletes). A hung kubectl is killed at the
// deadline instead of blocking the run.
func NewApplier(runner toolrunner.Runner, logger Logger, timeouts *config.Timeouts) *Applier {
	attempts := timeouts.ApplyAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &Applier{
		runner:        runner,
		logger:        logger,
		maxAttempts:   attempts,
		retryDelay:    timeouts.ApplyRetryDelay,
		applyTimeout:  timeouts.Apply,
		deleteTimeout: timeouts.Delete,
	}
}

// ApplyAll applies the descriptors strictly in the given order. Later
// descriptors may reference resources created by earlier ones, so the
// sequence is never reordered or parallelized.
//
// A required descriptor failing aborts immediately with an *ApplyError;
// every remaining descriptor is recorded as skipped. An optional descriptor
// failing records a warning and the run continues.
func (a *Applier) ApplyAll(ctx context.Context, descriptors []Descriptor) (*ApplyReport, error) {
	report := &ApplyReport{}

	for i, d := range descriptors {
		if err := a.applyOne(ctx, d); err != nil {
			if d.Required {
				report.Results = append(report.Results, Result{Descriptor: d, Status: StatusFailed, Reason: err.Error()})
				for _, rest := range descriptors[i+1:] {
					report.Results = append(report.Results, Result{Descriptor: rest, Status: StatusSkipped})
				}
				return report, &ApplyError{Descriptor: d, Err: err}
			}

			a.logger.Printf("Warning: optional manifest %s failed to apply: %v", d.Name(), err)
			report.Results = append(report.Results, Result{Descriptor: d, Status: StatusWarned, Reason: err.Error()})
			continue
		}

		a.logger.Printf("Applied %s (%s)", d.Name(), d.Kind)
		report.Results = append(report.Results, Result{Descriptor: d, Status: StatusApplied})
	}

	return report, nil
}

// applyOne issues an idempotent apply for a single descriptor, retrying
// transient connection failures. Each invocation runs under its own
// deadline; the retry loop decides whether a timed-out attempt repeats.
func (a *Applier) applyOne(ctx context.Context, d Descriptor) error {
	if err := VerifyKind(d); err != nil {
		return err
	}

	return retry.WithConstantBackoff(ctx, func() error {
		runCtx, cancel := bounded(ctx, a.applyTimeout)
		defer cancel()

		output, err := a.runner.Run(runCtx, toolrunner.Command{
			Name: "kubectl",
			Args: []string{"apply", "-f", d.Path},
		})
		if err == nil {
			return nil
		}

		if !isRetryableOutput(output) {
			return retry.Fatal(fmt.Errorf("kubectl apply failed: %w\nOutput: %s", err, output))
		}
		return fmt.Errorf("kubectl apply failed: %w\nOutput: %s", err, output)
	}, a.maxAttempts, a.retryDelay)
}

// Delete removes the resources of a single descriptor, tolerating
// already-deleted resources. Used by teardown's per-resource fallback.
func (a *Applier) Delete(ctx context.Context, d Descriptor) error {
	runCtx, cancel := bounded(ctx, a.deleteTimeout)
	defer cancel()

	output, err := a.runner.Run(runCtx, toolrunner.Command{
		Name: "kubectl",
		Args: []string{"delete", "-f", d.Path, "--ignore-not-found"},
	})
	if err != nil {
		return fmt.Errorf("kubectl delete failed for %s: %w\nOutput: %s", d.Name(), err, output)
	}
	return nil
}

// bounded derives a per-invocation deadline. A non-positive timeout leaves
// the parent context as the only bound.
func bounded(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// isRetryableOutput sniffs kubectl output for transient connection failures.
// The API server can be briefly unavailable right after cluster start.
func isRetryableOutput(output string) bool {
	return strings.Contains(output, "EOF") ||
		strings.Contains(output, "connection refused") ||
		strings.Contains(output, "Unable to connect") ||
		strings.Contains(output, "connection reset")
}
