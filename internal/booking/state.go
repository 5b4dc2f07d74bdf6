// Package booking holds the renovation estimate booking flow: the accumulated
// state, the step machine that moves through it, the per-step validators and
// the local mock of the appointment API.
package booking

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// MaxPhotos is the upper bound on photos attached to a project.
const MaxPhotos = 10

// MaxDescriptionLength is the character limit of the project description.
const MaxDescriptionLength = 500

// MinDescriptionLength is the trimmed length required to leave the project step.
const MinDescriptionLength = 20

// PhotoRef is an opaque reference to an uploaded project photo.
type PhotoRef struct {
	ID  string
	URL string
}

// NewPhotoRef wraps a URL or local path in a PhotoRef with a fresh ID.
func NewPhotoRef(url string) PhotoRef {
	return PhotoRef{ID: uuid.NewString(), URL: url}
}

// TimeSlot is a bookable one-hour estimation appointment.
type TimeSlot struct {
	ID            string
	Date          string    // e.g. "Mon, Oct 19"
	DayOfWeek     string    // e.g. "Monday"
	Time          string    // e.g. "8:00 AM - 9:00 AM"
	Start         time.Time // slot start in the generator's location
	EstimatorName string
	Available     bool
}

// State is everything the user has entered so far.
// The zero value is the empty state a new booking starts from.
type State struct {
	Photos       []PhotoRef
	Description  string
	Street       string
	AptSuite     string
	ZIPCode      string
	SelectedSlot *TimeSlot
}

// Address joins street and apt/suite the way the review and confirmation
// screens show it.
func (s State) Address() string {
	if s.AptSuite != "" {
		return s.Street + ", " + s.AptSuite
	}
	return s.Street
}

// clone returns a copy that shares no mutable memory with s.
func (s State) clone() State {
	out := s
	out.Photos = slices.Clone(s.Photos)
	if s.SelectedSlot != nil {
		slot := *s.SelectedSlot
		out.SelectedSlot = &slot
	}
	return out
}
