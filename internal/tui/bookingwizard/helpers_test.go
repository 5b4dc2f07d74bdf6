package bookingwizard

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/smartreno/smartreno/internal/booking"
)

// sunday is a fixed clock so slot pools are reproducible.
var sunday = time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)

func testDeps() Deps {
	return Deps{
		API: booking.NewMockAPI(booking.MockAPIConfig{
			Rand: rand.New(rand.NewPCG(3, 4)),
			Now:  func() time.Time { return sunday },
		}),
		Generator: booking.NewGenerator(booking.GeneratorConfig{
			Rand: rand.New(rand.NewPCG(1, 2)),
		}),
		Area: booking.NewServiceArea(booking.DefaultServiceAreas),
		Now:  func() time.Time { return sunday },
	}
}

func newTestWizard(t *testing.T, deps Deps) *WizardModel {
	t.Helper()
	m := NewWizard(context.Background(), deps)
	m.toast.Duration = time.Millisecond
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	return m
}

// exec runs cmd and returns the messages it produces, flattening batches and
// dropping spinner ticks.
func exec(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return nil
	case spinner.TickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, exec(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// send delivers msg to the wizard and keeps feeding back the resulting
// messages until the wizard goes quiet.
func send(m *WizardModel, msg tea.Msg) {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		_, cmd := m.Update(next)
		queue = append(queue, exec(cmd)...)
	}
}

func key(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Text: s}
}

func photos(n int) []booking.PhotoRef {
	out := make([]booking.PhotoRef, n)
	for i := range out {
		out[i] = booking.NewPhotoRef("https://example.com/p.jpg")
	}
	return out
}

// failingAPI rejects every call.
type failingAPI struct{}

var errBackendDown = errors.New("backend down")

func (failingAPI) UploadPhoto(context.Context) (booking.PhotoRef, error) {
	return booking.PhotoRef{}, errBackendDown
}

func (failingAPI) SubmitAppointment(context.Context, booking.State) (booking.Receipt, error) {
	return booking.Receipt{}, errBackendDown
}
