package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the state of the status view: which mode is held, through
// which method, and for how long.
type Model struct {
	ModeName   string
	MethodName string
	RealHold   bool
	Duration   time.Duration // 0 means indefinite

	start    time.Time
	spinner  spinner.Model
	quitting bool
}

// New returns a model for an active mode. realHold is false when the hold
// went through the fake-success override.
func New(modeName, methodName string, realHold bool, duration time.Duration) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = Current.Active

	return Model{
		ModeName:   modeName,
		MethodName: methodName,
		RealHold:   realHold,
		Duration:   duration,
		start:      time.Now(),
		spinner:    sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tick())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c", "enter":
			m.quitting = true
			return m, tea.Quit
		}

	case tickMsg:
		if m.Duration > 0 && time.Since(m.start) >= m.Duration {
			m.quitting = true
			return m, tea.Quit
		}
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	return view(m)
}

// Elapsed returns the time the mode has been held.
func (m Model) Elapsed() time.Duration {
	return time.Since(m.start)
}

// Remaining returns the time left on a timed hold, or 0 for indefinite.
func (m Model) Remaining() time.Duration {
	if m.Duration == 0 {
		return 0
	}
	remaining := m.Duration - time.Since(m.start)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// tickMsg is sent once per second to refresh the clock.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
