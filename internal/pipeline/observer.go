package pipeline

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Logger is the minimal progress output interface.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer defines the interface for structured observability during a run.
type Observer interface {
	Logger

	// Event emits a structured event.
	Event(event Event)

	// Progress reports progress for a phase.
	Progress(phase string, current, total int)
}

// Event represents a structured pipeline event.
type Event struct {
	Type      EventType
	Phase     string
	Message   string
	Resource  string
	Timestamp time.Time
}

// EventType represents the type of pipeline event.
type EventType string

const (
	// EventPhaseStarted indicates a pipeline phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a pipeline phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseWarned indicates a phase finished with a non-fatal warning.
	EventPhaseWarned EventType = "phase.warned"
	// EventPhaseFailed indicates a pipeline phase failed.
	EventPhaseFailed EventType = "phase.failed"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct{}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

// Printf implements Logger.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	parts := []string{string(event.Type)}
	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}
	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}
	parts = append(parts, event.Message)

	log.Print(strings.Join(parts, " "))
}

// Progress implements Observer.
func (o *ConsoleObserver) Progress(phase string, current, total int) {
	if total == 0 {
		log.Printf("[%s] Progress: %d/%d", phase, current, total)
		return
	}
	percentage := (current * 100) / total
	log.Printf("[%s] Progress: %d/%d (%d%%)", phase, current, total, percentage)
}
