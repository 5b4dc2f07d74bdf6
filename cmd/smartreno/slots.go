package main

import (
	"fmt"
	"io"
	"time"

	"github.com/smartreno/smartreno/internal/booking"
	"github.com/spf13/cobra"
)

var slotsFlags struct {
	all bool
	zip string
}

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "List appointment slots for the coming week",
	Long: `List the appointment slots offered for the coming week, grouped by day.

Use the printed ids with 'smartreno book --headless --slot <id>'. Set a
seed in the config to get the same slots across runs.`,
	RunE: runSlots,
}

func init() {
	slotsCmd.Flags().BoolVarP(&slotsFlags.all, "all", "a", false, "Include booked slots")
	slotsCmd.Flags().StringVar(&slotsFlags.zip, "zip", "", "Check that a ZIP code is in the service area first")
}

func runSlots(cmd *cobra.Command, args []string) error {
	deps := newDeps(appConfig, time.Now)
	if slotsFlags.zip != "" {
		if msg := booking.ValidateZIP(booking.NormalizeZIP(slotsFlags.zip), deps.Area); msg != "" {
			return fmt.Errorf("%s", msg)
		}
	}
	printSlots(cmd.OutOrStdout(), deps.Generator.Generate(deps.Now()), slotsFlags.all)
	return nil
}

func printSlots(w io.Writer, slots []booking.TimeSlot, all bool) {
	groups := booking.GroupByDate(slots)
	if len(groups) == 0 {
		fmt.Fprintln(w, "No appointment times are open right now.")
		return
	}
	for _, g := range groups {
		fmt.Fprintf(w, "%s (%d open)\n", g.Date, len(g.Available()))
		for _, s := range g.Slots {
			switch {
			case s.Available:
				fmt.Fprintf(w, "  %-16s %-20s %s\n", s.ID, s.Time, s.EstimatorName)
			case all:
				fmt.Fprintf(w, "  %-16s %-20s booked\n", s.ID, s.Time)
			}
		}
	}
}
