package bookingwizard

import (
	"regexp"
	"strings"
	"testing"

	"github.com/smartreno/smartreno/internal/booking"
	"github.com/stretchr/testify/require"
)

var confirmationIDPattern = regexp.MustCompile(`^SR\d{6}$`)

// fillProject uploads a photo and enters a valid description, then submits.
func fillProject(t *testing.T, m *WizardModel) {
	t.Helper()
	require.Equal(t, booking.StepProject, m.ctrl.Step())
	send(m, key("ctrl+p"))
	require.Len(t, m.projectStep.Photos(), 1)
	m.projectStep.textarea.SetValue(strings.Repeat("x", 20))
	send(m, key("ctrl+d"))
}

func fillLocation(t *testing.T, m *WizardModel, street, zip string) {
	t.Helper()
	require.Equal(t, booking.StepLocation, m.ctrl.Step())
	m.locationStep.inputs[inputStreet].SetValue(street)
	m.locationStep.inputs[inputZIP].SetValue(zip)
	for _, msg := range exec(m.locationStep.Submit()) {
		send(m, msg)
	}
}

func pickFirstSlot(t *testing.T, m *WizardModel) booking.TimeSlot {
	t.Helper()
	require.Equal(t, booking.StepTimeslot, m.ctrl.Step())
	send(m, key("enter"))
	selected := m.timeslotStep.Selected()
	require.NotNil(t, selected)
	send(m, key("ctrl+d"))
	return *selected
}

func TestWizard_StartsOnTimeline(t *testing.T) {
	t.Parallel()

	m := newTestWizard(t, testDeps())
	require.Equal(t, booking.StepTimeline, m.ctrl.Step())
	require.NotNil(t, m.timelineStep)
	require.NotEmpty(t, m.Slots())

	send(m, key("enter"))
	require.Equal(t, booking.StepProject, m.ctrl.Step())
	require.NotNil(t, m.projectStep)
}

func TestWizard_EndToEnd(t *testing.T) {
	t.Parallel()

	m := newTestWizard(t, testDeps())
	send(m, key("enter"))

	fillProject(t, m)
	fillLocation(t, m, "123 Main St", "94102")
	require.Equal(t, booking.StepTimeslot, m.ctrl.Step())

	slot := pickFirstSlot(t, m)
	require.Equal(t, booking.StepReview, m.ctrl.Step())
	require.Contains(t, m.reviewStep.renderSummary(), slot.Time)

	send(m, key("ctrl+d"))
	require.Equal(t, booking.StepConfirmation, m.ctrl.Step())

	conf, ok := m.ctrl.Confirmation()
	require.True(t, ok)
	require.Regexp(t, confirmationIDPattern, conf.AppointmentID)
	require.Equal(t, booking.ConfirmationID(sunday), conf.AppointmentID)
	require.Equal(t, slot.Date, conf.Date)
	require.Equal(t, "123 Main St", conf.Address())
}

func TestWizard_EditLocationKeepsPhotosAndSlot(t *testing.T) {
	t.Parallel()

	m := newTestWizard(t, testDeps())
	send(m, key("enter"))
	fillProject(t, m)
	fillLocation(t, m, "123 Main St", "94102")
	slot := pickFirstSlot(t, m)

	send(m, EditSectionMsg{Section: booking.SectionLocation})
	require.Equal(t, booking.StepLocation, m.ctrl.Step())
	require.Equal(t, "123 Main St", m.locationStep.inputs[inputStreet].Value(), "inputs are prefilled")

	fillLocation(t, m, "9 Market St", "94105")
	require.Equal(t, booking.StepTimeslot, m.ctrl.Step())
	require.Equal(t, slot.ID, m.timeslotStep.Selected().ID, "selection survives the edit")
	send(m, key("ctrl+d"))
	send(m, key("ctrl+d"))

	conf, ok := m.ctrl.Confirmation()
	require.True(t, ok)
	require.Equal(t, "9 Market St", conf.Street)
	require.Len(t, m.ctrl.State().Photos, 1)
	require.Equal(t, slot.ID, m.ctrl.State().SelectedSlot.ID)
}

func TestWizard_StartNewResets(t *testing.T) {
	t.Parallel()

	m := newTestWizard(t, testDeps())
	send(m, key("enter"))
	fillProject(t, m)
	fillLocation(t, m, "123 Main St", "94102")
	pickFirstSlot(t, m)
	send(m, key("ctrl+d"))
	require.Equal(t, booking.StepConfirmation, m.ctrl.Step())

	// First button is "Schedule Another Project"
	send(m, key("enter"))
	require.Equal(t, booking.StepProject, m.ctrl.Step())
	require.Equal(t, booking.State{}, m.ctrl.State())
	require.Empty(t, m.projectStep.Photos())
	_, ok := m.ctrl.Confirmation()
	require.False(t, ok)
}

func TestWizard_ProjectValidationBlocks(t *testing.T) {
	t.Parallel()

	m := newTestWizard(t, testDeps())
	send(m, key("enter"))
	m.projectStep.textarea.SetValue("too short")
	send(m, key("ctrl+d"))

	require.Equal(t, booking.StepProject, m.ctrl.Step())
	errs := m.projectStep.Errors()
	require.Equal(t, booking.MsgPhotosRequired, errs.Get(booking.FieldPhotos))
	require.Equal(t, booking.MsgDescriptionShort, errs.Get(booking.FieldDescription))
}

func TestWizard_SubmitFailureShowsError(t *testing.T) {
	t.Parallel()

	deps := testDeps()
	m := newTestWizard(t, deps)
	send(m, key("enter"))
	fillProject(t, m)
	fillLocation(t, m, "123 Main St", "94102")
	pickFirstSlot(t, m)

	m.deps.API = failingAPI{}
	send(m, key("ctrl+d"))

	require.Equal(t, booking.StepReview, m.ctrl.Step())
	require.False(t, m.reviewStep.Submitting())
	require.Contains(t, m.reviewStep.err, errBackendDown.Error())

	// Retry succeeds once the backend recovers
	m.deps.API = deps.API
	send(m, key("ctrl+d"))
	require.Equal(t, booking.StepConfirmation, m.ctrl.Step())
}

func TestWizard_EscNavigation(t *testing.T) {
	t.Parallel()

	m := newTestWizard(t, testDeps())
	send(m, key("enter"))
	fillProject(t, m)
	require.Equal(t, booking.StepLocation, m.ctrl.Step())

	send(m, key("esc"))
	require.Equal(t, booking.StepProject, m.ctrl.Step())
	require.Len(t, m.projectStep.Photos(), 1, "going back keeps photos")

	_, cmd := m.Update(key("esc"))
	require.True(t, m.Cancelled())
	require.NotNil(t, cmd)
}

func TestWizard_StartOverKeepsData(t *testing.T) {
	t.Parallel()

	m := newTestWizard(t, testDeps())
	send(m, key("enter"))
	send(m, key("ctrl+r"))
	require.Equal(t, booking.StepProject, m.ctrl.Step(), "start over does nothing on the project step")

	fillProject(t, m)
	fillLocation(t, m, "123 Main St", "94102")
	require.Equal(t, booking.StepTimeslot, m.ctrl.Step())
	require.Contains(t, m.renderCurrentStep(), "start over")

	send(m, key("ctrl+r"))
	require.Equal(t, booking.StepProject, m.ctrl.Step())
	require.Len(t, m.projectStep.Photos(), 1, "photos are kept")
	require.Equal(t, strings.Repeat("x", 20), m.projectStep.textarea.Value())
	require.Equal(t, "94102", m.ctrl.State().ZIPCode, "location is kept")
}

func TestWizard_TimelineToggle(t *testing.T) {
	t.Parallel()

	m := newTestWizard(t, testDeps())
	send(m, key("enter"))
	fillProject(t, m)

	send(m, key("ctrl+t"))
	require.Equal(t, booking.StepTimeline, m.ctrl.Step())
	require.Len(t, m.ctrl.State().Photos, 1)

	send(m, key("enter"))
	require.Equal(t, booking.StepProject, m.ctrl.Step())
	require.Len(t, m.projectStep.Photos(), 1)
}

func TestWizard_TabToButtonsAndNext(t *testing.T) {
	t.Parallel()

	m := newTestWizard(t, testDeps())
	send(m, key("enter"))
	send(m, key("ctrl+p"))
	m.projectStep.textarea.SetValue(strings.Repeat("y", 25))

	send(m, key("tab"))
	require.True(t, m.buttonFocused)
	require.Equal(t, 0, int(m.buttonBar.FocusedButton()))

	send(m, key("right"))
	send(m, key("enter"))
	require.Equal(t, booking.StepLocation, m.ctrl.Step())
	require.False(t, m.buttonFocused)
}

func TestWizard_ButtonFocusWrapsToContent(t *testing.T) {
	t.Parallel()

	m := newTestWizard(t, testDeps())
	send(m, key("enter"))
	send(m, key("tab"))
	require.True(t, m.buttonFocused)

	send(m, key("tab"))
	send(m, key("tab"))
	require.False(t, m.buttonFocused, "tab past the last button returns to the content")
	require.True(t, m.projectStep.textarea.Focused())
}

func TestWizard_ViewRendersHeader(t *testing.T) {
	t.Parallel()

	m := newTestWizard(t, testDeps())
	send(m, key("enter"))
	out := m.renderCurrentStep()
	require.Contains(t, out, "Project Details")
	require.Contains(t, out, "Step 1 of 4")

	view := m.View()
	require.True(t, view.AltScreen)
}
