package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxLogLines is how many recent log lines the dashboard keeps visible.
const maxLogLines = 6

// PhaseItem is one pipeline phase in the dashboard list.
type PhaseItem struct {
	Name   string
	Done   bool
	Active bool
	Err    error
}

// Model is the Bubble Tea model for the deploy/teardown dashboard.
type Model struct {
	Title  string
	Phases []PhaseItem

	Logs     []string
	Warnings []string

	AccessURL     string
	AltAccessHint string

	StartTime    time.Time
	SpinnerFrame int

	Width  int
	Height int
	Err    error
	Done   bool
}

// NewPipelineModel creates a dashboard model for the given phase names.
func NewPipelineModel(title string, phaseNames []string) Model {
	phases := make([]PhaseItem, 0, len(phaseNames))
	for _, name := range phaseNames {
		phases = append(phases, PhaseItem{Name: name})
	}
	return Model{
		Title:     title,
		Phases:    phases,
		StartTime: time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case PhaseMsg:
		m.updatePhase(msg)
		if msg.Err != nil {
			m.Err = msg.Err
			return m, tea.Quit
		}

	case LogMsg:
		m.Logs = append(m.Logs, msg.Line)
		if len(m.Logs) > maxLogLines {
			m.Logs = m.Logs[len(m.Logs)-maxLogLines:]
		}

	case WarnMsg:
		m.Warnings = append(m.Warnings, "["+msg.Phase+"] "+msg.Message)

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		m.AccessURL = msg.AccessURL
		m.AltAccessHint = msg.AltAccessHint
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updatePhase(msg PhaseMsg) {
	idx := -1
	for i, phase := range m.Phases {
		if phase.Name == msg.Phase {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	// Phases run strictly in order, so everything before is done.
	for i := 0; i < idx; i++ {
		m.Phases[i].Done = true
		m.Phases[i].Active = false
	}

	if msg.Done {
		m.Phases[idx].Done = true
		m.Phases[idx].Active = false
	} else {
		m.Phases[idx].Active = true
	}

	if msg.Err != nil {
		m.Phases[idx].Err = msg.Err
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
