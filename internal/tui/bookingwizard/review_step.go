package bookingwizard

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/smartreno/smartreno/internal/booking"
	"github.com/smartreno/smartreno/internal/tui/theme"
	"github.com/smartreno/smartreno/internal/tui/wizard"
)

// reviewPhotoPreview is how many photos review lists before "+N more".
const reviewPhotoPreview = 3

// Review buttons, in bar order.
const (
	reviewEditProject wizard.ButtonID = iota
	reviewEditLocation
	reviewEditSchedule
	reviewSubmit
)

// ReviewStep shows the collected booking read-only with edit and submit buttons.
type ReviewStep struct {
	state         booking.State
	viewport      viewport.Model
	buttonBar     *wizard.ButtonBar
	buttonFocused bool
	spinner       Spinner
	err           string
	width         int
	height        int
}

// NewReviewStep creates the review step for state.
func NewReviewStep(state booking.State) *ReviewStep {
	vp := viewport.New(
		viewport.WithWidth(60),
		viewport.WithHeight(10),
	)
	s := &ReviewStep{
		state:    state,
		viewport: vp,
		buttonBar: wizard.NewButtonBar([]wizard.Button{
			{Label: "Edit Project"},
			{Label: "Edit Location"},
			{Label: "Edit Schedule"},
			{Label: "Submit Request"},
		}),
		spinner: NewSpinner(),
		width:   60,
	}
	s.viewport.SetContent(s.renderSummary())
	return s
}

// Init initializes the review step.
func (s *ReviewStep) Init() tea.Cmd {
	return nil
}

// SetSize updates the size of the review step.
func (s *ReviewStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	vpHeight := height - 6 // button bar, error line, hint bar
	if vpHeight < 6 {
		vpHeight = 6
	}
	s.viewport.SetWidth(width)
	s.viewport.SetHeight(vpHeight)
	s.viewport.SetContent(s.renderSummary())
	s.buttonBar.SetWidth(width)
}

// SetSubmitting toggles the in-flight state of the submission.
func (s *ReviewStep) SetSubmitting(submitting bool) tea.Cmd {
	for id := reviewEditProject; id <= reviewSubmit; id++ {
		s.buttonBar.SetEnabled(id, !submitting)
	}
	if submitting {
		s.err = ""
		s.buttonFocused = false
		return s.spinner.Start()
	}
	s.spinner.Stop()
	return nil
}

// Submitting reports whether the submission is in flight.
func (s *ReviewStep) Submitting() bool {
	return s.spinner.Active()
}

// SetError shows a submission error. The user can retry.
func (s *ReviewStep) SetError(err error) {
	s.SetSubmitting(false)
	s.err = fmt.Sprintf("We couldn't submit your request: %v", err)
}

// ButtonsFocused reports whether the button bar has focus.
func (s *ReviewStep) ButtonsFocused() bool {
	return s.buttonFocused
}

// Update handles messages for the review step.
func (s *ReviewStep) Update(msg tea.Msg) tea.Cmd {
	if cmd := s.spinner.Update(msg); cmd != nil {
		return cmd
	}
	if s.spinner.Active() {
		return nil
	}

	if key, ok := msg.(tea.KeyPressMsg); ok {
		if s.buttonFocused {
			switch key.String() {
			case "tab", "right":
				if !s.buttonBar.FocusNext() {
					s.blurButtons()
				}
				return nil
			case "shift+tab", "left":
				if !s.buttonBar.FocusPrev() {
					s.blurButtons()
				}
				return nil
			case "enter", "space":
				return s.activateButton(s.buttonBar.FocusedButton())
			case "esc":
				s.blurButtons()
				return nil
			}
			return nil
		}

		switch key.String() {
		case "tab":
			s.buttonFocused = true
			s.buttonBar.FocusFirst()
			return nil
		case "shift+tab":
			s.buttonFocused = true
			s.buttonBar.FocusLast()
			return nil
		case "ctrl+d":
			return s.activateButton(reviewSubmit)
		}
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return cmd
}

func (s *ReviewStep) blurButtons() {
	s.buttonFocused = false
	s.buttonBar.Blur()
}

// activateButton handles button activation.
func (s *ReviewStep) activateButton(id wizard.ButtonID) tea.Cmd {
	var section booking.Section
	switch id {
	case reviewEditProject:
		section = booking.SectionProject
	case reviewEditLocation:
		section = booking.SectionLocation
	case reviewEditSchedule:
		section = booking.SectionTimeslot
	case reviewSubmit:
		return func() tea.Msg { return ConfirmRequestedMsg{} }
	default:
		return nil
	}
	return func() tea.Msg { return EditSectionMsg{Section: section} }
}

// renderSummary renders the read-only booking summary.
func (s *ReviewStep) renderSummary() string {
	st := theme.Current().S()
	var b strings.Builder

	b.WriteString(sectionTitle("Project"))
	b.WriteString("\n")
	b.WriteString(row("Photos", fmt.Sprintf("%d", len(s.state.Photos))))
	b.WriteString("\n")
	for i, p := range s.state.Photos {
		if i == reviewPhotoPreview {
			break
		}
		b.WriteString(st.Muted.Render(fmt.Sprintf("  %d. photo %s", i+1, shortID(p.ID))))
		b.WriteString("\n")
	}
	if extra := len(s.state.Photos) - reviewPhotoPreview; extra > 0 {
		b.WriteString(st.Muted.Render(fmt.Sprintf("  +%d more photos", extra)))
		b.WriteString("\n")
	}
	b.WriteString(st.Label.Render("Description:"))
	b.WriteString("\n")
	b.WriteString(st.Value.Width(max(s.width-2, 20)).Render(s.state.Description))
	b.WriteString("\n\n")

	b.WriteString(sectionTitle("Location"))
	b.WriteString("\n")
	b.WriteString(row("Address", s.state.Address()))
	b.WriteString("\n")
	b.WriteString(row("ZIP code", s.state.ZIPCode))
	b.WriteString("\n\n")

	b.WriteString(sectionTitle("Schedule"))
	b.WriteString("\n")
	if slot := s.state.SelectedSlot; slot != nil {
		b.WriteString(row("Date", slot.Date))
		b.WriteString("\n")
		b.WriteString(row("Time", slot.Time))
		b.WriteString("\n")
		b.WriteString(row("Estimator", slot.EstimatorName))
		b.WriteString("\n")
	} else {
		b.WriteString(st.Muted.Render("No time selected"))
		b.WriteString("\n")
	}
	return b.String()
}

// View renders the review step.
func (s *ReviewStep) View() string {
	var b strings.Builder

	b.WriteString(s.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(s.buttonBar.Render())
	b.WriteString("\n")

	if s.spinner.Active() {
		b.WriteString(s.spinner.View() + theme.Current().S().Muted.Render(" Submitting your request..."))
		b.WriteString("\n")
	}
	if e := wizard.RenderError(s.err); e != "" {
		b.WriteString(e + "\n")
	}

	b.WriteString(wizard.RenderHintBar(
		"↑↓", "scroll",
		"tab", "buttons",
		"ctrl+d", "submit",
		"esc", "back",
	))
	return b.String()
}
