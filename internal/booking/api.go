package booking

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// API is the appointment backend the wizard talks to. Calls may block and
// must honour ctx.
type API interface {
	// UploadPhoto stores a project photo and returns its reference.
	UploadPhoto(ctx context.Context) (PhotoRef, error)
	// SubmitAppointment requests the appointment described by state.
	SubmitAppointment(ctx context.Context, state State) (Receipt, error)
}

// Receipt is the backend's acknowledgement of a submitted appointment.
type Receipt struct {
	SubmittedAt time.Time
}

// DefaultPhotoURLs are the sample photos handed out by the mock upload.
var DefaultPhotoURLs = []string{
	"https://images.unsplash.com/photo-1578177154072-bbbd429d496f?fit=max&fm=jpg&w=1080",
	"https://images.unsplash.com/photo-1664227430687-9299c593e3da?fit=max&fm=jpg&w=1080",
}

// MockAPIConfig configures a MockAPI.
type MockAPIConfig struct {
	PhotoURLs []string         // Pool of URLs returned by UploadPhoto
	Delay     time.Duration    // Simulated round-trip latency
	Rand      *rand.Rand       // Random source; nil uses the global source
	Now       func() time.Time // Clock; nil uses time.Now
}

// MockAPI is an in-process API that never leaves the machine.
type MockAPI struct {
	photos []string
	delay  time.Duration
	rng    *rand.Rand
	now    func() time.Time
}

var _ API = (*MockAPI)(nil)

// NewMockAPI creates a MockAPI with defaults for zero config values.
func NewMockAPI(cfg MockAPIConfig) *MockAPI {
	m := &MockAPI{
		photos: cfg.PhotoURLs,
		delay:  cfg.Delay,
		rng:    cfg.Rand,
		now:    cfg.Now,
	}
	if len(m.photos) == 0 {
		m.photos = DefaultPhotoURLs
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// wait simulates latency, returning early if ctx is done.
func (m *MockAPI) wait(ctx context.Context) error {
	if m.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(m.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// UploadPhoto picks one of the sample photos.
func (m *MockAPI) UploadPhoto(ctx context.Context) (PhotoRef, error) {
	if err := m.wait(ctx); err != nil {
		return PhotoRef{}, fmt.Errorf("uploading photo: %w", err)
	}
	var i int
	if m.rng != nil {
		i = m.rng.IntN(len(m.photos))
	} else {
		i = rand.IntN(len(m.photos))
	}
	return NewPhotoRef(m.photos[i]), nil
}

// SubmitAppointment accepts any state that has a selected slot.
func (m *MockAPI) SubmitAppointment(ctx context.Context, state State) (Receipt, error) {
	if err := m.wait(ctx); err != nil {
		return Receipt{}, fmt.Errorf("submitting appointment: %w", err)
	}
	if state.SelectedSlot == nil {
		return Receipt{}, fmt.Errorf("submitting appointment: %w", ErrNoSlot)
	}
	return Receipt{SubmittedAt: m.now()}, nil
}

// Confirmation is what the confirmation screen shows.
type Confirmation struct {
	AppointmentID string
	Date          string
	Time          string
	EstimatorName string
	Street        string
	AptSuite      string
}

// Address joins street and apt/suite.
func (c Confirmation) Address() string {
	if c.AptSuite != "" {
		return c.Street + ", " + c.AptSuite
	}
	return c.Street
}

// ConfirmationID derives the reference id from a timestamp: "SR" followed by
// the last six digits of its Unix millisecond value.
func ConfirmationID(t time.Time) string {
	ms := t.UnixMilli()
	if ms < 0 {
		ms = -ms
	}
	return fmt.Sprintf("SR%06d", ms%1_000_000)
}
