package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/banwar54/mthree/internal/pipeline"
)

// Observer bridges pipeline observability into Bubble Tea messages.
type Observer struct {
	send func(tea.Msg)
}

// NewObserver creates an observer feeding the given program.
func NewObserver(send func(tea.Msg)) *Observer {
	return &Observer{send: send}
}

// Printf implements pipeline.Logger.
func (o *Observer) Printf(format string, v ...interface{}) {
	o.send(LogMsg{Line: fmt.Sprintf(format, v...)})
}

// Event implements pipeline.Observer.
func (o *Observer) Event(event pipeline.Event) {
	switch event.Type {
	case pipeline.EventPhaseStarted:
		o.send(PhaseMsg{Phase: event.Phase})
	case pipeline.EventPhaseCompleted:
		o.send(PhaseMsg{Phase: event.Phase, Done: true})
	case pipeline.EventPhaseWarned:
		o.send(WarnMsg{Phase: event.Phase, Message: event.Message})
	case pipeline.EventPhaseFailed:
		o.send(PhaseMsg{Phase: event.Phase, Err: fmt.Errorf("%s", event.Message)})
	}
}

// Progress implements pipeline.Observer.
func (o *Observer) Progress(phase string, current, total int) {
	o.send(LogMsg{Line: fmt.Sprintf("[%s] %d/%d", phase, current, total)})
}

// RunPipeline drives the dashboard while runFn executes the pipeline in the
// background. runFn receives the observer to report through and returns the
// final report; its error is fatal and ends the TUI.
func RunPipeline(title string, phaseNames []string, runFn func(observer pipeline.Observer) (*pipeline.Report, error)) error {
	m := NewPipelineModel(title, phaseNames)
	p := tea.NewProgram(m)

	go func() {
		observer := NewObserver(func(msg tea.Msg) { p.Send(msg) })
		report, err := runFn(observer)
		if err != nil {
			p.Send(ErrMsg{Err: err})
			return
		}

		done := DoneMsg{}
		if report != nil {
			for _, warning := range report.Warnings {
				p.Send(WarnMsg{Phase: warning.Phase, Message: warning.Message})
			}
			done.AccessURL = report.AccessURL
			done.AltAccessHint = report.AltAccessHint
		}
		p.Send(done)
	}()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	if fm.Err != nil {
		return fm.Err
	}
	return nil
}
