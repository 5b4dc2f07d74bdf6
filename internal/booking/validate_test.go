package booking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func photos(n int) []PhotoRef {
	out := make([]PhotoRef, n)
	for i := range out {
		out[i] = NewPhotoRef("photo.jpg")
	}
	return out
}

func TestValidateProject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		photos      int
		description string
		wantErrs    []Field
	}{
		{name: "valid", photos: 1, description: strings.Repeat("x", 20)},
		{name: "valid max photos", photos: 10, description: "Remodel the kitchen with new cabinets"},
		{name: "no photos", photos: 0, description: strings.Repeat("x", 20), wantErrs: []Field{FieldPhotos}},
		{name: "too many photos", photos: 11, description: strings.Repeat("x", 20), wantErrs: []Field{FieldPhotos}},
		{name: "short description", photos: 2, description: strings.Repeat("x", 19), wantErrs: []Field{FieldDescription}},
		{name: "padding does not count", photos: 1, description: "   " + strings.Repeat("x", 19) + "   ", wantErrs: []Field{FieldDescription}},
		{name: "longest description", photos: 1, description: strings.Repeat("x", MaxDescriptionLength)},
		{name: "long description", photos: 1, description: strings.Repeat("x", MaxDescriptionLength+1), wantErrs: []Field{FieldDescription}},
		{name: "long multibyte description", photos: 1, description: strings.Repeat("é", 600), wantErrs: []Field{FieldDescription}},
		{name: "padding around max", photos: 1, description: "  " + strings.Repeat("x", MaxDescriptionLength) + "\n"},
		{name: "nothing entered", photos: 0, description: "", wantErrs: []Field{FieldPhotos, FieldDescription}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, errs := ValidateProject(photos(tt.photos), tt.description)
			if len(tt.wantErrs) == 0 {
				require.Empty(t, errs)
				assert.Len(t, payload.Photos, tt.photos)
				assert.Equal(t, strings.TrimSpace(tt.description), payload.Description)
				return
			}
			require.Len(t, errs, len(tt.wantErrs))
			for _, f := range tt.wantErrs {
				assert.True(t, errs.Has(f), "expected error on %s", f)
			}
		})
	}
}

func TestValidateProject_Messages(t *testing.T) {
	t.Parallel()

	_, errs := ValidateProject(nil, "short")
	assert.Equal(t, MsgPhotosRequired, errs.Get(FieldPhotos))
	assert.Equal(t, MsgDescriptionShort, errs.Get(FieldDescription))

	_, errs = ValidateProject(photos(11), strings.Repeat("x", 20))
	assert.Equal(t, MsgPhotosMax, errs.Get(FieldPhotos))

	_, errs = ValidateProject(photos(1), strings.Repeat("x", 600))
	assert.Equal(t, MsgDescriptionLong, errs.Get(FieldDescription))
	assert.False(t, DescriptionValid(strings.Repeat("x", 600)))
}

func TestValidateProject_TrimsDescription(t *testing.T) {
	t.Parallel()

	payload, errs := ValidateProject(photos(1), "\n  Replace the bathroom tiles please  \n")
	require.Empty(t, errs)
	assert.Equal(t, "Replace the bathroom tiles please", payload.Description)
}

func TestCanAddPhoto(t *testing.T) {
	t.Parallel()

	assert.True(t, CanAddPhoto(0))
	assert.True(t, CanAddPhoto(9))
	assert.False(t, CanAddPhoto(10))
}

func TestDescriptionRemaining(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 20, DescriptionRemaining(""))
	assert.Equal(t, 5, DescriptionRemaining(strings.Repeat("a", 15)))
	assert.Equal(t, 0, DescriptionRemaining(strings.Repeat("a", 25)))
}

func TestNormalizeZIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"94105", "94105"},
		{"94-105", "94105"},
		{" 9 4 1 0 5 ", "94105"},
		{"941056789", "94105"},
		{"abc", ""},
		{"941", "941"},
		{"９４１０５", ""}, // full-width digits are not ZIP digits
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeZIP(tt.in))
		})
	}
}

func TestValidateZIP(t *testing.T) {
	t.Parallel()

	area := NewServiceArea(DefaultServiceAreas)

	tests := []struct {
		zip  string
		want string
	}{
		{"94105", ""},
		{"94102", ""},
		{"10003", ""},
		{"99999", MsgZIPOutOfArea},
		{"941", MsgZIPInvalid},
		{"9410a", MsgZIPInvalid},
		{"", MsgZIPInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.zip, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateZIP(tt.zip, area))
		})
	}
}

func TestLiveZIPCheck(t *testing.T) {
	t.Parallel()

	area := NewServiceArea(DefaultServiceAreas)

	msg, decided := LiveZIPCheck("", area)
	assert.False(t, decided)
	assert.Empty(t, msg)

	msg, decided = LiveZIPCheck("9410", area)
	assert.True(t, decided)
	assert.Empty(t, msg, "partial input clears the error")

	msg, decided = LiveZIPCheck("99999", area)
	assert.True(t, decided)
	assert.Equal(t, MsgZIPOutOfArea, msg)

	msg, decided = LiveZIPCheck("94105", area)
	assert.True(t, decided)
	assert.Empty(t, msg)
}

func TestNewServiceArea_DropsMalformed(t *testing.T) {
	t.Parallel()

	area := NewServiceArea([]string{"94105", "941", "10-001", "abcde"})
	assert.Len(t, area, 2)
	assert.True(t, area.Contains("94105"))
	assert.True(t, area.Contains("10001"))
}

func TestValidateLocation(t *testing.T) {
	t.Parallel()

	area := NewServiceArea(DefaultServiceAreas)

	t.Run("valid", func(t *testing.T) {
		payload, errs := ValidateLocation(" 123 Main St ", " Apt 2B ", "94102", area)
		require.Empty(t, errs)
		assert.Equal(t, LocationPayload{Street: "123 Main St", AptSuite: "Apt 2B", ZIPCode: "94102"}, payload)
	})

	t.Run("apt optional", func(t *testing.T) {
		payload, errs := ValidateLocation("123 Main St", "", "10001", area)
		require.Empty(t, errs)
		assert.Empty(t, payload.AptSuite)
	})

	t.Run("zip formatting stripped", func(t *testing.T) {
		payload, errs := ValidateLocation("123 Main St", "", "941-05", area)
		require.Empty(t, errs)
		assert.Equal(t, "94105", payload.ZIPCode)
	})

	t.Run("missing street", func(t *testing.T) {
		_, errs := ValidateLocation("   ", "", "94105", area)
		assert.Equal(t, MsgStreetRequired, errs.Get(FieldStreet))
		assert.False(t, errs.Has(FieldZIPCode))
	})

	t.Run("missing zip", func(t *testing.T) {
		_, errs := ValidateLocation("123 Main St", "", "", area)
		assert.Equal(t, MsgZIPRequired, errs.Get(FieldZIPCode))
	})

	t.Run("out of area", func(t *testing.T) {
		_, errs := ValidateLocation("123 Main St", "", "99999", area)
		assert.Equal(t, MsgZIPOutOfArea, errs.Get(FieldZIPCode))
	})

	t.Run("short zip", func(t *testing.T) {
		_, errs := ValidateLocation("123 Main St", "", "941", area)
		assert.Equal(t, MsgZIPInvalid, errs.Get(FieldZIPCode))
	})
}

func TestSelectSlot(t *testing.T) {
	t.Parallel()

	free := TimeSlot{ID: "a", Available: true}
	taken := TimeSlot{ID: "b", Available: false}

	got := SelectSlot(nil, taken)
	assert.Nil(t, got, "unavailable slot must not become the selection")

	got = SelectSlot(nil, free)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.ID)

	again := SelectSlot(got, taken)
	assert.Same(t, got, again, "unavailable slot must not replace the selection")
}

func TestValidateTimeslot(t *testing.T) {
	t.Parallel()

	_, errs := ValidateTimeslot(nil)
	assert.Equal(t, MsgSlotRequired, errs.Get(FieldSlot))

	_, errs = ValidateTimeslot(&TimeSlot{ID: "x"})
	assert.Equal(t, MsgSlotUnavailable, errs.Get(FieldSlot))

	payload, errs := ValidateTimeslot(&TimeSlot{ID: "y", Available: true})
	require.Empty(t, errs)
	assert.Equal(t, "y", payload.Slot.ID)
}

func TestFieldErrors(t *testing.T) {
	t.Parallel()

	errs := FieldErrors{}
	require.NoError(t, errs.Err())

	errs.Set(FieldZIPCode, "bad zip")
	errs.Set(FieldStreet, "no street")
	require.Error(t, errs.Err())
	assert.Equal(t, "street: no street; zipCode: bad zip", errs.Error())

	errs.Set(FieldStreet, "")
	assert.False(t, errs.Has(FieldStreet))
	errs.Clear(FieldZIPCode)
	assert.NoError(t, errs.Err())
}
