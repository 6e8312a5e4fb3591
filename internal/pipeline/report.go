package pipeline

import "fmt"

// Warning records one recoverable failure surfaced during a run.
// Warnings never change the exit code; they are printed in the final report
// so the operator gets the whole picture in one run.
type Warning struct {
	Phase   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Report aggregates the outcome of a pipeline run.
type Report struct {
	Warnings []Warning

	// AccessURL is the local URL the workload is reachable on when the
	// tunnel is healthy.
	AccessURL string

	// AltAccessHint names the alternate access path when the tunnel is
	// degraded.
	AltAccessHint string
}

// Warn records a recoverable failure.
func (r *Report) Warn(phase, format string, v ...interface{}) {
	r.Warnings = append(r.Warnings, Warning{Phase: phase, Message: fmt.Sprintf(format, v...)})
}

// HasWarnings reports whether any recoverable failures were recorded.
func (r *Report) HasWarnings() bool {
	return len(r.Warnings) > 0
}
