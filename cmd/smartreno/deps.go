package main

import (
	"math/rand/v2"
	"time"

	"github.com/smartreno/smartreno/internal/booking"
	"github.com/smartreno/smartreno/internal/config"
	"github.com/smartreno/smartreno/internal/tui/bookingwizard"
)

// newDeps builds the booking collaborators described by cfg. A non-zero
// seed makes photo picks and slot availability reproducible.
func newDeps(cfg *config.Config, now func() time.Time) bookingwizard.Deps {
	var slotRand, apiRand *rand.Rand
	if cfg.Seed != 0 {
		slotRand = rand.New(rand.NewPCG(cfg.Seed, 1))
		apiRand = rand.New(rand.NewPCG(cfg.Seed, 2))
	}
	return bookingwizard.Deps{
		API: booking.NewMockAPI(booking.MockAPIConfig{
			Delay: cfg.SubmitDelay,
			Rand:  apiRand,
			Now:   now,
		}),
		Generator: booking.NewGenerator(booking.GeneratorConfig{
			Estimators:   cfg.Estimators,
			DaysAhead:    cfg.DaysAhead,
			Availability: cfg.Availability,
			Rand:         slotRand,
		}),
		Area: booking.NewServiceArea(cfg.ServiceAreas),
		Now:  now,
	}
}
