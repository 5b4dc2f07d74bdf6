package booking

import "fmt"

// Step identifies a screen of the wizard.
type Step int

const (
	StepTimeline     Step = iota // Informational landing view, outside the booking sequence
	StepProject                  // Photos and description
	StepLocation                 // Street, apt/suite, ZIP
	StepTimeslot                 // Appointment slot selection
	StepReview                   // Read-only summary with edit/confirm
	StepConfirmation             // Terminal confirmation screen
)

// bookingSteps is the linear booking sequence. Timeline is not part of it.
var bookingSteps = []Step{StepProject, StepLocation, StepTimeslot, StepReview, StepConfirmation}

// String returns the lowercase step name.
func (s Step) String() string {
	switch s {
	case StepTimeline:
		return "timeline"
	case StepProject:
		return "project"
	case StepLocation:
		return "location"
	case StepTimeslot:
		return "timeslot"
	case StepReview:
		return "review"
	case StepConfirmation:
		return "confirmation"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Title returns the heading shown for the step.
func (s Step) Title() string {
	switch s {
	case StepTimeline:
		return "Development Timeline"
	case StepProject:
		return "Project Details"
	case StepLocation:
		return "Location"
	case StepTimeslot:
		return "Schedule"
	case StepReview:
		return "Review"
	case StepConfirmation:
		return "Confirmed"
	default:
		return ""
	}
}

// index returns the position of s in the booking sequence, or -1.
func (s Step) index() int {
	for i, step := range bookingSteps {
		if step == s {
			return i
		}
	}
	return -1
}

// Section names a part of the review screen that can be edited.
type Section string

const (
	SectionProject  Section = "project"
	SectionLocation Section = "location"
	SectionTimeslot Section = "timeslot"
)

// Step returns the step that collects the section's data.
func (s Section) Step() (Step, error) {
	switch s {
	case SectionProject:
		return StepProject, nil
	case SectionLocation:
		return StepLocation, nil
	case SectionTimeslot:
		return StepTimeslot, nil
	default:
		return 0, fmt.Errorf("unknown section %q: %w", string(s), ErrUnknownSection)
	}
}
