package booking

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrWrongStep is returned when a payload is offered by a step that is not active.
	ErrWrongStep = errors.New("payload does not belong to the active step")
	// ErrNotReviewing is returned by operations that are only valid on the review step.
	ErrNotReviewing = errors.New("not on the review step")
	// ErrUnknownSection is returned for an edit target that is not a review section.
	ErrUnknownSection = errors.New("unknown review section")
	// ErrNoSlot is returned when a booking is submitted without a selected slot.
	ErrNoSlot = errors.New("no appointment slot selected")
)

// Field names an input that can carry a validation error.
type Field string

const (
	FieldPhotos      Field = "photos"
	FieldDescription Field = "description"
	FieldStreet      Field = "street"
	FieldZIPCode     Field = "zipCode"
	FieldSlot        Field = "slot"
)

// FieldErrors maps fields to a human-readable validation message.
// A nil or empty FieldErrors means the input is valid.
type FieldErrors map[Field]string

// Has reports whether f carries an error.
func (e FieldErrors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// Get returns the message for f, or "".
func (e FieldErrors) Get(f Field) string {
	return e[f]
}

// Set records msg against f. An empty msg clears f.
func (e FieldErrors) Set(f Field, msg string) {
	if msg == "" {
		delete(e, f)
		return
	}
	e[f] = msg
}

// Clear removes the error for f.
func (e FieldErrors) Clear(f Field) {
	delete(e, f)
}

// Err returns e as an error, or nil when there are no field errors.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Error joins all messages ordered by field name.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[Field(f)])
	}
	return strings.Join(parts, "; ")
}
