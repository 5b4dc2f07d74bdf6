package bookingwizard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/smartreno/smartreno/internal/booking"
	"github.com/smartreno/smartreno/internal/tui/theme"
	"github.com/smartreno/smartreno/internal/tui/wizard"
)

// Confirmation buttons, in bar order.
const (
	confirmStartNew wizard.ButtonID = iota
	confirmExit
)

// ConfirmationStep shows the booked appointment with Start New/Exit buttons.
type ConfirmationStep struct {
	confirmation booking.Confirmation
	buttonBar    *wizard.ButtonBar
	width        int
	height       int
}

// NewConfirmationStep creates the confirmation step.
func NewConfirmationStep(c booking.Confirmation) *ConfirmationStep {
	bar := wizard.NewButtonBar([]wizard.Button{
		{Label: "Schedule Another Project", State: wizard.ButtonNormal},
		{Label: "Exit", State: wizard.ButtonNormal},
	})
	return &ConfirmationStep{
		confirmation: c,
		buttonBar:    bar,
	}
}

// Init auto-focuses the first button.
func (s *ConfirmationStep) Init() tea.Cmd {
	s.buttonBar.FocusFirst()
	return nil
}

// Update handles messages for the confirmation step.
func (s *ConfirmationStep) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "tab", "right":
		if !s.buttonBar.FocusNext() {
			s.buttonBar.FocusFirst()
		}
	case "shift+tab", "left":
		if !s.buttonBar.FocusPrev() {
			s.buttonBar.FocusLast()
		}
	case "enter", "space":
		return s.activateButton(s.buttonBar.FocusedButton())
	case "n":
		return s.activateButton(confirmStartNew)
	}
	return nil
}

// activateButton handles button activation.
func (s *ConfirmationStep) activateButton(id wizard.ButtonID) tea.Cmd {
	switch id {
	case confirmStartNew:
		return func() tea.Msg { return StartNewMsg{} }
	case confirmExit:
		return tea.Quit
	}
	return nil
}

// SetSize updates the size of the confirmation step.
func (s *ConfirmationStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.buttonBar.SetWidth(width)
}

// View renders the confirmation step.
func (s *ConfirmationStep) View() string {
	st := theme.Current().S()
	c := s.confirmation
	var b strings.Builder

	b.WriteString(st.Success.Render("✓ Your estimate is booked!"))
	b.WriteString("\n\n")
	b.WriteString(st.Label.Render("Confirmation ") + st.Badge.Render(c.AppointmentID))
	b.WriteString("\n\n")
	b.WriteString(row("Date", c.Date))
	b.WriteString("\n")
	b.WriteString(row("Time", c.Time))
	b.WriteString("\n")
	b.WriteString(row("Estimator", c.EstimatorName))
	b.WriteString("\n")
	b.WriteString(row("Address", c.Address()))
	b.WriteString("\n\n")

	b.WriteString(sectionTitle("What happens next"))
	b.WriteString("\n")
	for _, line := range []string{
		"1. You'll get a confirmation email with the details.",
		"2. Your estimator will call the day before to confirm.",
		"3. The on-site visit takes about an hour.",
	} {
		b.WriteString(st.Value.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(s.buttonBar.Render())
	b.WriteString("\n")
	b.WriteString(wizard.RenderHintBar(
		"tab/arrow keys", "navigate",
		"enter", "select",
	))
	return b.String()
}
