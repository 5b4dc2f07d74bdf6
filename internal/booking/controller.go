package booking

import (
	"fmt"
	"time"

	"github.com/smartreno/smartreno/internal/logger"
)

// Controller owns the wizard's active step and accumulated State. All
// mutation goes through its methods; views only see copies.
//
// The controller does not validate field values. Steps run their validator
// and only call Advance with a payload the validator produced.
type Controller struct {
	step         Step
	state        State
	confirmation *Confirmation
}

// NewController returns a controller on the timeline landing view with an
// empty state.
func NewController() *Controller {
	return &Controller{step: StepTimeline}
}

// Step returns the active step.
func (c *Controller) Step() Step {
	return c.step
}

// State returns a copy of the accumulated state.
func (c *Controller) State() State {
	return c.state.clone()
}

// Confirmation returns the confirmation once the booking has been confirmed.
func (c *Controller) Confirmation() (Confirmation, bool) {
	if c.confirmation == nil {
		return Confirmation{}, false
	}
	return *c.confirmation, true
}

// Advance merges payload into the state and moves to the next step.
// The payload must come from the active step.
func (c *Controller) Advance(payload Payload) error {
	if payload == nil || payload.from() != c.step {
		return fmt.Errorf("advance from %s: %w", c.step, ErrWrongStep)
	}

	switch p := payload.(type) {
	case ProjectPayload:
		c.state.Photos = append([]PhotoRef(nil), p.Photos...)
		c.state.Description = p.Description
		c.moveTo(StepLocation)
	case LocationPayload:
		c.state.Street = p.Street
		c.state.AptSuite = p.AptSuite
		c.state.ZIPCode = p.ZIPCode
		c.moveTo(StepTimeslot)
	case TimeslotPayload:
		slot := p.Slot
		c.state.SelectedSlot = &slot
		c.moveTo(StepReview)
	}
	return nil
}

// Confirm finishes the booking from the review step. The appointment id is
// derived from submittedAt.
func (c *Controller) Confirm(submittedAt time.Time) (Confirmation, error) {
	if c.step != StepReview {
		return Confirmation{}, fmt.Errorf("confirm from %s: %w", c.step, ErrNotReviewing)
	}
	if c.state.SelectedSlot == nil {
		return Confirmation{}, fmt.Errorf("confirm: %w", ErrNoSlot)
	}

	conf := Confirmation{
		AppointmentID: ConfirmationID(submittedAt),
		Date:          c.state.SelectedSlot.Date,
		Time:          c.state.SelectedSlot.Time,
		EstimatorName: c.state.SelectedSlot.EstimatorName,
		Street:        c.state.Street,
		AptSuite:      c.state.AptSuite,
	}
	c.confirmation = &conf
	c.moveTo(StepConfirmation)
	logger.Info("Appointment %s confirmed for %s %s", conf.AppointmentID, conf.Date, conf.Time)
	return conf, nil
}

// Retreat moves to the previous booking step. It does nothing on the
// project step, on the confirmation screen and on the timeline.
func (c *Controller) Retreat() {
	i := c.step.index()
	if i <= 0 || c.step == StepConfirmation {
		return
	}
	c.moveTo(bookingSteps[i-1])
}

// BackToProject returns from the location or timeslot step to the project
// step without clearing anything. Other steps are left alone.
func (c *Controller) BackToProject() {
	if c.step != StepLocation && c.step != StepTimeslot {
		return
	}
	c.moveTo(StepProject)
}

// EditSection jumps from review straight to the step owning section.
// Nothing entered so far is cleared.
func (c *Controller) EditSection(section Section) error {
	if c.step != StepReview {
		return fmt.Errorf("edit %s: %w", section, ErrNotReviewing)
	}
	target, err := section.Step()
	if err != nil {
		return err
	}
	c.moveTo(target)
	return nil
}

// StartNew discards everything and starts a new booking on the project step.
func (c *Controller) StartNew() {
	c.state = State{}
	c.confirmation = nil
	c.moveTo(StepProject)
}

// ShowTimeline switches to the timeline view, keeping entered data. It is
// ignored on the confirmation screen.
func (c *Controller) ShowTimeline() {
	if c.step == StepConfirmation {
		return
	}
	c.moveTo(StepTimeline)
}

// StartBooking leaves the timeline for the project step.
func (c *Controller) StartBooking() {
	if c.step != StepTimeline {
		return
	}
	c.moveTo(StepProject)
}

// Progress reports the 1-based position of the active step among the
// steps before confirmation, that count, and the completion percentage.
// The timeline reports 0, 0, 0.
func (c *Controller) Progress() (position, total int, percent float64) {
	i := c.step.index()
	if i < 0 {
		return 0, 0, 0
	}
	return i + 1, len(bookingSteps) - 1, float64(i+1) / float64(len(bookingSteps)) * 100
}

func (c *Controller) moveTo(step Step) {
	logger.Debug("Booking step %s -> %s", c.step, step)
	c.step = step
}
