// Package tui provides a Bubble Tea-based terminal UI for deploy and
// teardown runs.
package tui

// PhaseMsg reports progress of a pipeline phase.
type PhaseMsg struct {
	Phase string
	Done  bool
	Err   error
}

// LogMsg carries one progress log line.
type LogMsg struct {
	Line string
}

// WarnMsg carries a recoverable warning surfaced mid-run.
type WarnMsg struct {
	Phase   string
	Message string
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries a fatal error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the run is complete.
type DoneMsg struct {
	AccessURL     string
	AltAccessHint string
}
