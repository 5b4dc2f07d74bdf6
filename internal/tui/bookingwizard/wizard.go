package bookingwizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/smartreno/smartreno/internal/booking"
	"github.com/smartreno/smartreno/internal/logger"
	"github.com/smartreno/smartreno/internal/tui/theme"
	"github.com/smartreno/smartreno/internal/tui/wizard"
)

// ErrCancelled is returned by Run when the user quits before confirming.
var ErrCancelled = errors.New("wizard cancelled by user")

// progressWidth is the width of the header progress bar in cells.
const progressWidth = 30

// Deps are the collaborators the wizard drives.
type Deps struct {
	API       booking.API
	Generator *booking.Generator
	Area      booking.ServiceArea
	Now       func() time.Time // Clock for slot generation; nil uses time.Now
}

// WizardModel is the main BubbleTea model for the booking wizard.
// It manages the flow: timeline → project → location → timeslot → review → confirmation.
type WizardModel struct {
	ctx       context.Context
	deps      Deps
	ctrl      *booking.Controller
	slots     []booking.TimeSlot
	cancelled bool
	width     int
	height    int

	// Step components
	timelineStep     *TimelineStep
	projectStep      *ProjectStep
	locationStep     *LocationStep
	timeslotStep     *TimeslotStep
	reviewStep       *ReviewStep
	confirmationStep *ConfirmationStep

	// Button bar with focus tracking
	buttonBar     *wizard.ButtonBar
	buttonFocused bool // True if buttons have focus (vs step content)

	toast *wizard.Toast
}

// NewWizard creates the wizard on the timeline view with a fresh slot pool.
func NewWizard(ctx context.Context, deps Deps) *WizardModel {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Area == nil {
		deps.Area = booking.NewServiceArea(booking.DefaultServiceAreas)
	}
	if deps.Generator == nil {
		deps.Generator = booking.NewGenerator(booking.GeneratorConfig{})
	}
	if deps.API == nil {
		deps.API = booking.NewMockAPI(booking.MockAPIConfig{})
	}
	m := &WizardModel{
		ctx:   ctx,
		deps:  deps,
		ctrl:  booking.NewController(),
		toast: wizard.NewToast(),
	}
	m.slots = deps.Generator.Generate(deps.Now())
	return m
}

// Run is the entry point for the booking wizard.
// It creates a standalone BubbleTea program, runs it, and returns the
// confirmation of the last booking made in the session.
func Run(ctx context.Context, deps Deps) (booking.Confirmation, error) {
	m := NewWizard(ctx, deps)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return booking.Confirmation{}, fmt.Errorf("wizard failed: %w", err)
	}

	wizModel, ok := finalModel.(*WizardModel)
	if !ok {
		return booking.Confirmation{}, fmt.Errorf("unexpected model type")
	}

	conf, confirmed := wizModel.ctrl.Confirmation()
	if wizModel.cancelled || !confirmed {
		return booking.Confirmation{}, ErrCancelled
	}
	return conf, nil
}

// Controller exposes the booking controller.
func (m *WizardModel) Controller() *booking.Controller {
	return m.ctrl
}

// Slots returns the slot pool offered in this session.
func (m *WizardModel) Slots() []booking.TimeSlot {
	return m.slots
}

// Cancelled reports whether the user quit without finishing.
func (m *WizardModel) Cancelled() bool {
	return m.cancelled
}

// Init initializes the wizard model.
func (m *WizardModel) Init() tea.Cmd {
	return m.initCurrentStep()
}

// Update handles messages for the wizard.
func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		// Handle button-focused keyboard input
		if m.buttonFocused && m.buttonBar != nil {
			switch msg.String() {
			case "tab", "right":
				if !m.buttonBar.FocusNext() {
					m.buttonFocused = false
					m.buttonBar.Blur()
					return m, m.focusStepContentFirst()
				}
				return m, nil
			case "shift+tab", "left":
				if !m.buttonBar.FocusPrev() {
					m.buttonFocused = false
					m.buttonBar.Blur()
					return m, m.focusStepContentLast()
				}
				return m, nil
			case "enter", "space":
				return m.activateButton(m.buttonBar.FocusedButton())
			}
		}

		// Global keybindings
		switch msg.String() {
		case "ctrl+c":
			m.cancelled = m.ctrl.Step() != booking.StepConfirmation
			return m, tea.Quit
		case "ctrl+r":
			if m.ctrl.Step() != booking.StepLocation && m.ctrl.Step() != booking.StepTimeslot {
				break
			}
			m.ctrl.BackToProject()
			return m, m.enterStep()
		case "ctrl+t":
			if m.busy() || m.ctrl.Step() == booking.StepConfirmation {
				return m, nil
			}
			return m, func() tea.Msg { return ShowTimelineMsg{} }
		case "esc":
			switch m.ctrl.Step() {
			case booking.StepTimeline, booking.StepProject:
				m.cancelled = true
				return m, tea.Quit
			case booking.StepConfirmation:
				return m, tea.Quit
			case booking.StepReview:
				if m.reviewStep != nil && (m.reviewStep.ButtonsFocused() || m.reviewStep.Submitting()) {
					break // review returns focus to its summary itself
				}
				return m.goBack()
			default:
				return m.goBack()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateCurrentStepSize()
		return m, nil

	case StartBookingMsg:
		m.ctrl.StartBooking()
		return m, m.enterStep()

	case ShowTimelineMsg:
		m.ctrl.ShowTimeline()
		return m, m.enterStep()

	case ProjectSubmittedMsg:
		return m.advance(msg.Payload)

	case LocationSubmittedMsg:
		return m.advance(msg.Payload)

	case SlotSubmittedMsg:
		return m.advance(msg.Payload)

	case EditSectionMsg:
		if err := m.ctrl.EditSection(msg.Section); err != nil {
			logger.Error("Edit section %s: %v", msg.Section, err)
			return m, nil
		}
		return m, m.enterStep()

	case ConfirmRequestedMsg:
		if m.reviewStep == nil || m.reviewStep.Submitting() {
			return m, nil
		}
		return m, tea.Batch(m.reviewStep.SetSubmitting(true), m.submitAppointment())

	case AppointmentSubmittedMsg:
		if m.reviewStep != nil {
			m.reviewStep.SetSubmitting(false)
		}
		if _, err := m.ctrl.Confirm(msg.Receipt.SubmittedAt); err != nil {
			logger.Error("Confirm appointment: %v", err)
			if m.reviewStep != nil {
				m.reviewStep.SetError(err)
			}
			return m, nil
		}
		return m, m.enterStep()

	case SubmitFailedMsg:
		logger.Error("Appointment submission failed: %v", msg.Err)
		if m.reviewStep != nil {
			m.reviewStep.SetError(msg.Err)
		}
		return m, nil

	case StartNewMsg:
		m.ctrl.StartNew()
		m.slots = m.deps.Generator.Generate(m.deps.Now())
		return m, m.enterStep()

	case wizard.ShowToastMsg:
		return m, m.toast.Show(msg.Text)

	case wizard.ToastDismissMsg:
		return m, m.toast.Update(msg)

	case wizard.TabExitForwardMsg:
		// Tab from last input - move to buttons
		if m.hasButtons() {
			m.buttonFocused = true
			m.blurStepContent()
			m.ensureButtonBar()
			m.buttonBar.FocusFirst()
		}
		return m, nil

	case wizard.TabExitBackwardMsg:
		// Shift+Tab from first input - move to buttons from end
		if m.hasButtons() {
			m.buttonFocused = true
			m.blurStepContent()
			m.ensureButtonBar()
			m.buttonBar.FocusLast()
		}
		return m, nil
	}

	// Forward messages to current step
	return m.updateCurrentStep(msg)
}

// advance hands a validated payload to the controller and shows the next step.
func (m *WizardModel) advance(p booking.Payload) (tea.Model, tea.Cmd) {
	if err := m.ctrl.Advance(p); err != nil {
		logger.Error("Advance: %v", err)
		return m, nil
	}
	return m, m.enterStep()
}

// submitAppointment sends the booking to the API off the main loop.
func (m *WizardModel) submitAppointment() tea.Cmd {
	ctx, api, state := m.ctx, m.deps.API, m.ctrl.State()
	return func() tea.Msg {
		receipt, err := api.SubmitAppointment(ctx, state)
		if err != nil {
			return SubmitFailedMsg{Err: err}
		}
		return AppointmentSubmittedMsg{Receipt: receipt}
	}
}

// busy reports whether a mock API call is in flight.
func (m *WizardModel) busy() bool {
	return m.reviewStep != nil && m.ctrl.Step() == booking.StepReview && m.reviewStep.Submitting()
}

// enterStep resets wizard focus and builds the controller's active step.
func (m *WizardModel) enterStep() tea.Cmd {
	m.buttonFocused = false
	m.buttonBar = nil
	return m.initCurrentStep()
}

// View renders the wizard.
func (m *WizardModel) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 || m.height == 0 {
		// Not ready to render
		view.Content = lipgloss.NewLayer("")
		return view
	}

	centered := lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.renderCurrentStep(),
	)

	// Draw to canvas using ultraviolet
	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(centered).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// initCurrentStep initializes the current step component and returns any init commands.
func (m *WizardModel) initCurrentStep() tea.Cmd {
	var cmd tea.Cmd
	state := m.ctrl.State()
	switch m.ctrl.Step() {
	case booking.StepTimeline:
		m.timelineStep = NewTimelineStep()
		cmd = m.timelineStep.Init()
	case booking.StepProject:
		m.projectStep = NewProjectStep(m.ctx, m.deps.API, state)
		cmd = m.projectStep.Init()
	case booking.StepLocation:
		m.locationStep = NewLocationStep(state, m.deps.Area)
		cmd = m.locationStep.Init()
	case booking.StepTimeslot:
		m.timeslotStep = NewTimeslotStep(m.slots, state.SelectedSlot, state.ZIPCode)
		cmd = m.timeslotStep.Init()
	case booking.StepReview:
		m.reviewStep = NewReviewStep(state)
		cmd = m.reviewStep.Init()
	case booking.StepConfirmation:
		conf, _ := m.ctrl.Confirmation()
		m.confirmationStep = NewConfirmationStep(conf)
		cmd = m.confirmationStep.Init()
	}
	m.updateCurrentStepSize()
	return cmd
}

// updateCurrentStep forwards a message to the current step.
func (m *WizardModel) updateCurrentStep(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.ctrl.Step() {
	case booking.StepTimeline:
		if m.timelineStep != nil {
			cmd = m.timelineStep.Update(msg)
		}
	case booking.StepProject:
		if m.projectStep != nil {
			cmd = m.projectStep.Update(msg)
		}
	case booking.StepLocation:
		if m.locationStep != nil {
			cmd = m.locationStep.Update(msg)
		}
	case booking.StepTimeslot:
		if m.timeslotStep != nil {
			cmd = m.timeslotStep.Update(msg)
		}
	case booking.StepReview:
		if m.reviewStep != nil {
			cmd = m.reviewStep.Update(msg)
		}
	case booking.StepConfirmation:
		if m.confirmationStep != nil {
			cmd = m.confirmationStep.Update(msg)
		}
	}

	return m, cmd
}

// getModalContentSize returns the internal content dimensions for the modal.
func (m *WizardModel) getModalContentSize() (width, height int) {
	width = modalContentWidth

	height = m.height - 4 // Terminal margin
	if height < 24 {
		height = 24
	}
	if height > 44 {
		height = 44
	}
	// Subtract modal chrome: padding + border + header + buttons + hint
	height = height - 12
	if height < 12 {
		height = 12
	}
	return width, height
}

// updateCurrentStepSize updates the size of the current step.
func (m *WizardModel) updateCurrentStepSize() {
	w, h := m.getModalContentSize()

	switch m.ctrl.Step() {
	case booking.StepTimeline:
		if m.timelineStep != nil {
			m.timelineStep.SetSize(w, h)
		}
	case booking.StepProject:
		if m.projectStep != nil {
			m.projectStep.SetSize(w, h)
		}
	case booking.StepLocation:
		if m.locationStep != nil {
			m.locationStep.SetSize(w, h)
		}
	case booking.StepTimeslot:
		if m.timeslotStep != nil {
			m.timeslotStep.SetSize(w, h)
		}
	case booking.StepReview:
		if m.reviewStep != nil {
			m.reviewStep.SetSize(w, h)
		}
	case booking.StepConfirmation:
		if m.confirmationStep != nil {
			m.confirmationStep.SetSize(w, h)
		}
	}
	if m.buttonBar != nil {
		m.buttonBar.SetWidth(w)
	}
}

// renderHeader renders the step title and, inside the booking sequence, the progress bar.
func (m *WizardModel) renderHeader() string {
	t := theme.Current()
	step := m.ctrl.Step()

	title := "SmartReno · " + step.Title()
	pos, total, percent := m.ctrl.Progress()
	if step == booking.StepConfirmation || pos == 0 {
		return t.S().HeaderTitle.Render(title)
	}

	filled := int(percent / 100 * progressWidth)
	bar := theme.ApplyGradient(strings.Repeat("█", filled), t.Primary, t.Tertiary) +
		t.S().Muted.Render(strings.Repeat("░", progressWidth-filled))
	status := t.S().Muted.Render(fmt.Sprintf("Step %d of %d · %.0f%%", pos, total, percent))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		t.S().HeaderTitle.Render(title),
		bar+"  "+status,
	)
}

// renderCurrentStep renders the content for the current step.
func (m *WizardModel) renderCurrentStep() string {
	t := theme.Current()

	var stepContent string
	switch m.ctrl.Step() {
	case booking.StepTimeline:
		if m.timelineStep != nil {
			stepContent = m.timelineStep.View()
		}
	case booking.StepProject:
		if m.projectStep != nil {
			stepContent = m.projectStep.View()
		}
	case booking.StepLocation:
		if m.locationStep != nil {
			stepContent = m.locationStep.View()
		}
	case booking.StepTimeslot:
		if m.timeslotStep != nil {
			stepContent = m.timeslotStep.View()
		}
	case booking.StepReview:
		if m.reviewStep != nil {
			stepContent = m.reviewStep.View()
		}
	case booking.StepConfirmation:
		if m.confirmationStep != nil {
			stepContent = m.confirmationStep.View()
		}
	}

	parts := []string{m.renderHeader(), "", stepContent}
	if notice := m.toast.View(modalContentWidth); notice != "" {
		parts = append(parts, notice)
	}
	if m.hasButtons() {
		m.ensureButtonBar()
		parts = append(parts, "", m.buttonBar.Render())
	}
	switch m.ctrl.Step() {
	case booking.StepConfirmation:
	case booking.StepLocation, booking.StepTimeslot:
		parts = append(parts, "", wizard.RenderHintBar("ctrl+r", "start over", "ctrl+t", "timeline", "ctrl+c", "quit"))
	default:
		parts = append(parts, "", wizard.RenderHintBar("ctrl+t", "timeline", "ctrl+c", "quit"))
	}

	modalStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Padding(1, modalPadding).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.BorderDefault))

	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// hasButtons returns true if the current step needs wizard-level navigation buttons.
func (m *WizardModel) hasButtons() bool {
	switch m.ctrl.Step() {
	case booking.StepProject, booking.StepLocation, booking.StepTimeslot:
		return true
	}
	return false
}

// ensureButtonBar creates the button bar for the current step if needed.
func (m *WizardModel) ensureButtonBar() {
	if m.buttonBar != nil {
		return
	}

	var buttons []wizard.Button
	switch m.ctrl.Step() {
	case booking.StepProject:
		buttons = wizard.CreateCancelNextButtons(true, "Next →")
	case booking.StepLocation:
		buttons = wizard.CreateBackNextButtons(true, true, "Next →")
	case booking.StepTimeslot:
		buttons = wizard.CreateBackNextButtons(true, true, "Review →")
	}

	m.buttonBar = wizard.NewButtonBar(buttons)
	w, _ := m.getModalContentSize()
	m.buttonBar.SetWidth(w)
}

// activateButton handles button activation.
func (m *WizardModel) activateButton(btnID wizard.ButtonID) (tea.Model, tea.Cmd) {
	switch btnID {
	case wizard.ButtonBack:
		if m.ctrl.Step() == booking.StepProject {
			m.cancelled = true
			return m, tea.Quit
		}
		return m.goBack()
	case wizard.ButtonNext:
		return m.goNext()
	}
	return m, nil
}

// goBack moves to the previous step.
func (m *WizardModel) goBack() (tea.Model, tea.Cmd) {
	before := m.ctrl.Step()
	m.ctrl.Retreat()
	if m.ctrl.Step() == before {
		return m, nil
	}
	return m, m.enterStep()
}

// goNext submits the current step; validation happens in the step.
func (m *WizardModel) goNext() (tea.Model, tea.Cmd) {
	switch m.ctrl.Step() {
	case booking.StepProject:
		if m.projectStep != nil {
			return m, m.projectStep.Submit()
		}
	case booking.StepLocation:
		if m.locationStep != nil {
			return m, m.locationStep.Submit()
		}
	case booking.StepTimeslot:
		if m.timeslotStep != nil {
			return m, m.timeslotStep.Submit()
		}
	}
	return m, nil
}

// focusStepContentFirst focuses the first element in step content.
func (m *WizardModel) focusStepContentFirst() tea.Cmd {
	switch m.ctrl.Step() {
	case booking.StepProject:
		if m.projectStep != nil {
			m.projectStep.Focus()
		}
	case booking.StepLocation:
		if m.locationStep != nil {
			m.locationStep.Focus()
		}
	case booking.StepTimeslot:
		if m.timeslotStep != nil {
			m.timeslotStep.Focus()
		}
	}
	return nil
}

// focusStepContentLast focuses the last element in step content.
func (m *WizardModel) focusStepContentLast() tea.Cmd {
	if m.ctrl.Step() == booking.StepLocation && m.locationStep != nil {
		m.locationStep.FocusLast()
		return nil
	}
	return m.focusStepContentFirst()
}

// blurStepContent blurs all step content.
func (m *WizardModel) blurStepContent() {
	switch m.ctrl.Step() {
	case booking.StepProject:
		if m.projectStep != nil {
			m.projectStep.Blur()
		}
	case booking.StepLocation:
		if m.locationStep != nil {
			m.locationStep.Blur()
		}
	case booking.StepTimeslot:
		if m.timeslotStep != nil {
			m.timeslotStep.Blur()
		}
	}
}
