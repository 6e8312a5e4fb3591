package tui

import (
	"fmt"
	"strings"
	"time"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// renderView draws the dashboard.
func renderView(m Model) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("elapsed %v", time.Since(m.StartTime).Round(time.Second))))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Phases"))
	b.WriteString("\n")
	for _, phase := range m.Phases {
		b.WriteString(renderPhase(phase, m.SpinnerFrame))
		b.WriteString("\n")
	}

	if len(m.Logs) > 0 {
		b.WriteString(sectionStyle.Render("Log"))
		b.WriteString("\n")
		for _, line := range m.Logs {
			b.WriteString(dimStyle.Render("  " + line))
			b.WriteString("\n")
		}
	}

	if len(m.Warnings) > 0 {
		b.WriteString(sectionStyle.Render("Warnings"))
		b.WriteString("\n")
		for _, warning := range m.Warnings {
			b.WriteString(warningStyle.Render("  ! " + warning))
			b.WriteString("\n")
		}
	}

	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString(failedStyle.Render("Error: " + m.Err.Error()))
		b.WriteString("\n")
	}

	if m.Done {
		b.WriteString("\n")
		if m.AccessURL != "" {
			b.WriteString(readyStyle.Render("Service available at " + m.AccessURL))
			b.WriteString("\n")
		}
		if m.AltAccessHint != "" {
			b.WriteString(warningStyle.Render("Tunnel degraded; try: " + m.AltAccessHint))
			b.WriteString("\n")
		}
	}

	b.WriteString(footerStyle.Render("press q to quit"))
	b.WriteString("\n")

	return b.String()
}

func renderPhase(phase PhaseItem, frame int) string {
	switch {
	case phase.Err != nil:
		return failedStyle.Render(fmt.Sprintf("  %s %s: %v", crossMark, phase.Name, phase.Err))
	case phase.Done:
		return readyStyle.Render(fmt.Sprintf("  %s %s", checkMark, phase.Name))
	case phase.Active:
		mark := spinner + " " + spinnerFrames[frame%len(spinnerFrames)]
		return activeStyle.Render(fmt.Sprintf("  %s %s", mark, phase.Name))
	default:
		return dimStyle.Render(fmt.Sprintf("  %s %s", pending, phase.Name))
	}
}
