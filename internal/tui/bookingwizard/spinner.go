package bookingwizard

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/smartreno/smartreno/internal/tui/theme"
)

// Spinner wraps bubbles spinner with an active flag so steps can show it
// only while a mock API call is in flight.
type Spinner struct {
	model  spinner.Model
	active bool
}

// NewSpinner creates a MiniDot spinner in the theme's primary color.
func NewSpinner() Spinner {
	t := theme.Current()
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary))),
	)
	return Spinner{model: s}
}

// Start activates the spinner and returns the tick command.
func (s *Spinner) Start() tea.Cmd {
	s.active = true
	return s.model.Tick
}

// Stop deactivates the spinner. Pending ticks are dropped by Update.
func (s *Spinner) Stop() {
	s.active = false
}

// Active reports whether the spinner is running.
func (s *Spinner) Active() bool {
	return s.active
}

// Update handles spinner tick messages
func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	if !s.active {
		return nil
	}
	if _, ok := msg.(spinner.TickMsg); !ok {
		return nil
	}
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return cmd
}

// View renders the current spinner frame, or "" when stopped.
func (s *Spinner) View() string {
	if !s.active {
		return ""
	}
	return s.model.View()
}
