package main

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/smartreno/smartreno/internal/booking"
	"github.com/smartreno/smartreno/internal/config"
	"github.com/stretchr/testify/require"
)

var sunday = time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)

func fixedClock(t *testing.T) func() time.Time {
	t.Helper()
	return func() time.Time { return sunday }
}

func seededConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Seed = 7
	cfg.SubmitDelay = 0
	return cfg
}

func validRequest() headlessRequest {
	return headlessRequest{
		Photos:      []string{"a.jpg"},
		Description: strings.Repeat("x", 20),
		Street:      "123 Main St",
		ZIPCode:     "94102",
		Slot:        "first",
	}
}

func TestBookHeadless_EndToEnd(t *testing.T) {
	t.Parallel()

	deps := newDeps(seededConfig(), fixedClock(t))
	conf, err := bookHeadless(context.Background(), deps, validRequest())
	require.NoError(t, err)
	require.Regexp(t, `^SR\d{6}$`, conf.AppointmentID)
	require.Equal(t, "123 Main St", conf.Address())

	var out bytes.Buffer
	printConfirmation(&out, conf)
	require.Contains(t, out.String(), conf.AppointmentID)
	require.Contains(t, out.String(), conf.EstimatorName)
}

func TestBookHeadless_SlotByID(t *testing.T) {
	t.Parallel()

	cfg := seededConfig()
	slots := newDeps(cfg, fixedClock(t)).Generator.Generate(sunday)
	free := booking.AvailableSlots(slots)
	require.NotEmpty(t, free)
	want := free[len(free)-1]

	req := validRequest()
	req.Slot = want.ID
	conf, err := bookHeadless(context.Background(), newDeps(cfg, fixedClock(t)), req)
	require.NoError(t, err)
	require.Equal(t, want.Date, conf.Date)
	require.Equal(t, want.Time, conf.Time)
}

func TestBookHeadless_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*headlessRequest)
		wantErr string
	}{
		{"no photos", func(r *headlessRequest) { r.Photos = nil }, booking.MsgPhotosRequired},
		{"short description", func(r *headlessRequest) { r.Description = "  tiny  " }, booking.MsgDescriptionShort},
		{"long description", func(r *headlessRequest) { r.Description = strings.Repeat("x", 600) }, booking.MsgDescriptionLong},
		{"missing street", func(r *headlessRequest) { r.Street = " " }, booking.MsgStreetRequired},
		{"outside area", func(r *headlessRequest) { r.ZIPCode = "99999" }, booking.MsgZIPOutOfArea},
		{"short zip", func(r *headlessRequest) { r.ZIPCode = "941" }, booking.MsgZIPInvalid},
		{"unknown slot", func(r *headlessRequest) { r.Slot = "sun-oct-18-0800" }, "unknown slot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := validRequest()
			tt.mutate(&req)
			_, err := bookHeadless(context.Background(), newDeps(seededConfig(), fixedClock(t)), req)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewDeps_SeedIsReproducible(t *testing.T) {
	t.Parallel()

	a := newDeps(seededConfig(), fixedClock(t)).Generator.Generate(sunday)
	b := newDeps(seededConfig(), fixedClock(t)).Generator.Generate(sunday)
	require.Equal(t, a, b)

	// The generator honours the configured pool
	cfg := seededConfig()
	cfg.Estimators = []string{"Ana Ruiz"}
	for _, s := range newDeps(cfg, fixedClock(t)).Generator.Generate(sunday) {
		require.Equal(t, "Ana Ruiz", s.EstimatorName)
	}
}

func TestPrintSlots(t *testing.T) {
	t.Parallel()

	gen := booking.NewGenerator(booking.GeneratorConfig{Rand: rand.New(rand.NewPCG(1, 2))})
	slots := gen.Generate(sunday)

	var free, all bytes.Buffer
	printSlots(&free, slots, false)
	printSlots(&all, slots, true)

	require.Contains(t, free.String(), "Mon, Oct 19")
	require.NotContains(t, free.String(), "Sun, Oct 25", "sundays are closed")
	require.GreaterOrEqual(t, strings.Count(all.String(), "\n"), strings.Count(free.String(), "\n"))

	var empty bytes.Buffer
	printSlots(&empty, nil, false)
	require.Contains(t, empty.String(), "No appointment times")
}
