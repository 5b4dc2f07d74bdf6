package booking

import (
	"math/rand/v2"
	"time"

	"github.com/gosimple/slug"
)

// DefaultEstimators is the estimator pool used when none is configured.
var DefaultEstimators = []string{"Mike Rodriguez", "Sarah Chen", "David Kim", "Lisa Thompson"}

// Generator defaults.
const (
	DefaultDaysAhead    = 7
	DefaultAvailability = 0.8
)

// businessHours returns the start hours of the one-hour slots offered on wd.
// Mon-Fri 8:00 AM - 4:00 PM, Sat 10:00 AM - 2:00 PM, Sun closed.
func businessHours(wd time.Weekday) []int {
	switch wd {
	case time.Sunday:
		return nil
	case time.Saturday:
		return []int{10, 11, 12, 13}
	default:
		return []int{8, 9, 10, 11, 12, 13, 14, 15}
	}
}

// GeneratorConfig configures a slot Generator.
type GeneratorConfig struct {
	Estimators   []string   // Pool estimators are drawn from
	DaysAhead    int        // Calendar days to cover, starting tomorrow
	Availability float64    // Probability that a slot is free (0..1)
	Rand         *rand.Rand // Random source; nil uses the global source
}

// Generator produces the mock appointment slots for the coming days.
type Generator struct {
	estimators   []string
	daysAhead    int
	availability float64
	rng          *rand.Rand
}

// NewGenerator creates a Generator, filling zero config values with defaults.
func NewGenerator(cfg GeneratorConfig) *Generator {
	g := &Generator{
		estimators:   cfg.Estimators,
		daysAhead:    cfg.DaysAhead,
		availability: cfg.Availability,
		rng:          cfg.Rand,
	}
	if len(g.estimators) == 0 {
		g.estimators = DefaultEstimators
	}
	if g.daysAhead <= 0 {
		g.daysAhead = DefaultDaysAhead
	}
	if g.availability <= 0 || g.availability > 1 {
		g.availability = DefaultAvailability
	}
	return g
}

func (g *Generator) float64() float64 {
	if g.rng != nil {
		return g.rng.Float64()
	}
	return rand.Float64()
}

func (g *Generator) intN(n int) int {
	if g.rng != nil {
		return g.rng.IntN(n)
	}
	return rand.IntN(n)
}

// Generate returns the slots for the days after from, in chronological order.
func (g *Generator) Generate(from time.Time) []TimeSlot {
	var slots []TimeSlot
	for i := 1; i <= g.daysAhead; i++ {
		day := from.AddDate(0, 0, i)
		for _, hour := range businessHours(day.Weekday()) {
			start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
			slots = append(slots, TimeSlot{
				ID:            slotID(start),
				Date:          start.Format("Mon, Jan 2"),
				DayOfWeek:     start.Weekday().String(),
				Time:          slotLabel(start),
				Start:         start,
				EstimatorName: g.estimators[g.intN(len(g.estimators))],
				Available:     g.float64() < g.availability,
			})
		}
	}
	return slots
}

// slotID derives a stable, readable id such as "mon-oct-19-0800".
func slotID(start time.Time) string {
	return slug.Make(start.Format("Mon Jan 2 1504"))
}

// slotLabel renders "8:00 AM - 9:00 AM".
func slotLabel(start time.Time) string {
	return start.Format("3:04 PM") + " - " + start.Add(time.Hour).Format("3:04 PM")
}

// DayGroup is the slots of one calendar day.
type DayGroup struct {
	Date  string
	Slots []TimeSlot
}

// Available returns the free slots of the day.
func (d DayGroup) Available() []TimeSlot {
	return AvailableSlots(d.Slots)
}

// GroupByDate groups slots by their Date label, keeping first-seen order.
func GroupByDate(slots []TimeSlot) []DayGroup {
	var groups []DayGroup
	index := map[string]int{}
	for _, s := range slots {
		i, ok := index[s.Date]
		if !ok {
			i = len(groups)
			index[s.Date] = i
			groups = append(groups, DayGroup{Date: s.Date})
		}
		groups[i].Slots = append(groups[i].Slots, s)
	}
	return groups
}

// AvailableSlots filters slots down to the free ones.
func AvailableSlots(slots []TimeSlot) []TimeSlot {
	var out []TimeSlot
	for _, s := range slots {
		if s.Available {
			out = append(out, s)
		}
	}
	return out
}

// FindSlot looks a slot up by id.
func FindSlot(slots []TimeSlot, id string) (TimeSlot, bool) {
	for _, s := range slots {
		if s.ID == id {
			return s, true
		}
	}
	return TimeSlot{}, false
}
