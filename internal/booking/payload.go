package booking

// Payload is the validated data a step hands to the controller when it
// advances. The set of implementations is closed: ProjectPayload,
// LocationPayload and TimeslotPayload.
type Payload interface {
	// from reports the step that is allowed to emit the payload.
	from() Step
}

// ProjectPayload is emitted by the project step.
type ProjectPayload struct {
	Photos      []PhotoRef
	Description string // trimmed
}

// LocationPayload is emitted by the location step.
type LocationPayload struct {
	Street   string
	AptSuite string
	ZIPCode  string // exactly 5 digits
}

// TimeslotPayload is emitted by the timeslot step.
type TimeslotPayload struct {
	Slot TimeSlot
}

func (ProjectPayload) from() Step  { return StepProject }
func (LocationPayload) from() Step { return StepLocation }
func (TimeslotPayload) from() Step { return StepTimeslot }
