package booking

import (
	"strings"
	"unicode/utf8"
)

// Validation messages shown next to the offending field.
const (
	MsgPhotosRequired   = "Please upload at least one photo of your project."
	MsgPhotosMax        = "You can upload a maximum of 10 photos."
	MsgDescriptionShort = "Please provide a brief description of your project (minimum 20 characters)."
	MsgDescriptionLong  = "Please keep the description to 500 characters or fewer."
	MsgStreetRequired   = "Please enter your street address."
	MsgZIPRequired      = "Please enter your ZIP code."
	MsgZIPInvalid       = "Please enter a valid 5-digit ZIP code."
	MsgZIPOutOfArea     = "Please enter a valid 5-digit ZIP code in our service area."
	MsgSlotRequired     = "Please select an available appointment time."
	MsgSlotUnavailable  = "That appointment time is no longer available."
)

const zipLength = 5

// DefaultServiceAreas are the ZIP codes served when none are configured.
var DefaultServiceAreas = []string{"94102", "94103", "94104", "94105", "10001", "10002", "10003"}

// ServiceArea is the allow-list of ZIP codes appointments can be booked in.
type ServiceArea map[string]struct{}

// NewServiceArea builds a ServiceArea from zips. Entries are normalized and
// anything that does not reduce to 5 digits is dropped.
func NewServiceArea(zips []string) ServiceArea {
	area := make(ServiceArea, len(zips))
	for _, z := range zips {
		z = NormalizeZIP(z)
		if len(z) == zipLength {
			area[z] = struct{}{}
		}
	}
	return area
}

// Contains reports whether zip is served.
func (a ServiceArea) Contains(zip string) bool {
	_, ok := a[zip]
	return ok
}

// ValidateProject checks the project step's fields.
// On success it returns the payload with the trimmed description.
func ValidateProject(photos []PhotoRef, description string) (ProjectPayload, FieldErrors) {
	errs := FieldErrors{}
	switch {
	case len(photos) == 0:
		errs.Set(FieldPhotos, MsgPhotosRequired)
	case len(photos) > MaxPhotos:
		errs.Set(FieldPhotos, MsgPhotosMax)
	}

	trimmed := strings.TrimSpace(description)
	switch n := utf8.RuneCountInString(trimmed); {
	case n < MinDescriptionLength:
		errs.Set(FieldDescription, MsgDescriptionShort)
	case n > MaxDescriptionLength:
		errs.Set(FieldDescription, MsgDescriptionLong)
	}

	if len(errs) > 0 {
		return ProjectPayload{}, errs
	}
	return ProjectPayload{
		Photos:      append([]PhotoRef(nil), photos...),
		Description: trimmed,
	}, nil
}

// CanAddPhoto reports whether another photo fits next to count existing ones.
func CanAddPhoto(count int) bool {
	return count < MaxPhotos
}

// DescriptionRemaining returns how many more characters the description
// needs before it is long enough, or 0.
func DescriptionRemaining(description string) int {
	n := MinDescriptionLength - utf8.RuneCountInString(description)
	if n < 0 {
		return 0
	}
	return n
}

// DescriptionValid reports whether the trimmed description is within the length limits.
func DescriptionValid(description string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(description))
	return n >= MinDescriptionLength && n <= MaxDescriptionLength
}

// NormalizeZIP strips non-digits and keeps at most the first 5.
func NormalizeZIP(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if b.Len() == zipLength {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateZIP returns the error message for zip, or "" when it is a served
// 5-digit ZIP code.
func ValidateZIP(zip string, area ServiceArea) string {
	if len(zip) != zipLength || NormalizeZIP(zip) != zip {
		return MsgZIPInvalid
	}
	if !area.Contains(zip) {
		return MsgZIPOutOfArea
	}
	return ""
}

// LiveZIPCheck is the as-you-type ZIP check. Once 5 digits are present it
// returns the validation result with decided=true; with 1-4 digits the error
// is cleared; with no input the current error is left alone (decided=false).
func LiveZIPCheck(zip string, area ServiceArea) (msg string, decided bool) {
	switch {
	case len(zip) == zipLength:
		return ValidateZIP(zip, area), true
	case len(zip) > 0:
		return "", true
	default:
		return "", false
	}
}

// ValidateLocation checks the location step's fields. The ZIP is normalized
// before it is checked. Apt/suite is optional and only trimmed.
func ValidateLocation(street, aptSuite, zip string, area ServiceArea) (LocationPayload, FieldErrors) {
	errs := FieldErrors{}

	street = strings.TrimSpace(street)
	if street == "" {
		errs.Set(FieldStreet, MsgStreetRequired)
	}

	zip = NormalizeZIP(zip)
	if zip == "" {
		errs.Set(FieldZIPCode, MsgZIPRequired)
	} else {
		errs.Set(FieldZIPCode, ValidateZIP(zip, area))
	}

	if len(errs) > 0 {
		return LocationPayload{}, errs
	}
	return LocationPayload{
		Street:   street,
		AptSuite: strings.TrimSpace(aptSuite),
		ZIPCode:  zip,
	}, nil
}

// SelectSlot returns the slot that should be selected after the user picks
// candidate. Unavailable candidates leave the current selection unchanged.
func SelectSlot(current *TimeSlot, candidate TimeSlot) *TimeSlot {
	if !candidate.Available {
		return current
	}
	return &candidate
}

// ValidateTimeslot checks the timeslot step's selection.
func ValidateTimeslot(selected *TimeSlot) (TimeslotPayload, FieldErrors) {
	if selected == nil {
		return TimeslotPayload{}, FieldErrors{FieldSlot: MsgSlotRequired}
	}
	if !selected.Available {
		return TimeslotPayload{}, FieldErrors{FieldSlot: MsgSlotUnavailable}
	}
	return TimeslotPayload{Slot: *selected}, nil
}
