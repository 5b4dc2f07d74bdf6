package bookingwizard

import (
	tea "charm.land/bubbletea/v2"
	"github.com/smartreno/smartreno/internal/booking"
	"github.com/smartreno/smartreno/internal/tui/wizard"
)

// StartBookingMsg is sent when the user leaves the timeline to book.
type StartBookingMsg struct{}

// ShowTimelineMsg is sent when the user opens the development timeline.
type ShowTimelineMsg struct{}

// ProjectSubmittedMsg is sent when the project step validates.
type ProjectSubmittedMsg struct {
	Payload booking.ProjectPayload
}

// LocationSubmittedMsg is sent when the location step validates.
type LocationSubmittedMsg struct {
	Payload booking.LocationPayload
}

// SlotSubmittedMsg is sent when the timeslot step validates.
type SlotSubmittedMsg struct {
	Payload booking.TimeslotPayload
}

// EditSectionMsg is sent from review to jump back to a section.
type EditSectionMsg struct {
	Section booking.Section
}

// ConfirmRequestedMsg is sent when the user submits the request from review.
type ConfirmRequestedMsg struct{}

// AppointmentSubmittedMsg carries the backend receipt of a submitted request.
type AppointmentSubmittedMsg struct {
	Receipt booking.Receipt
}

// SubmitFailedMsg is sent when the appointment submission fails.
type SubmitFailedMsg struct {
	Err error
}

// StartNewMsg is sent from confirmation to book another project.
type StartNewMsg struct{}

// PhotoUploadedMsg carries a photo returned by the upload call.
type PhotoUploadedMsg struct {
	Photo booking.PhotoRef
}

// PhotoUploadFailedMsg is sent when a photo upload fails.
type PhotoUploadFailedMsg struct {
	Err error
}

// DescriptionEditedMsg carries the description after editing it in $EDITOR.
type DescriptionEditedMsg struct {
	Content string
}

// toast returns a command asking the wizard to show text as a toast.
func toast(text string) tea.Cmd {
	return func() tea.Msg { return wizard.ShowToastMsg{Text: text} }
}
