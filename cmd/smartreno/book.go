package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/smartreno/smartreno/internal/booking"
	"github.com/smartreno/smartreno/internal/logger"
	"github.com/smartreno/smartreno/internal/tui/bookingwizard"
	"github.com/spf13/cobra"
)

var bookFlags struct {
	headless    bool
	photos      []string
	description string
	street      string
	apt         string
	zip         string
	slot        string
}

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book a renovation estimate",
	Long: `Book a free on-site renovation estimate.

Without flags this opens the full-screen booking wizard. With --headless the
booking is made from flags and the confirmation is printed.`,
	Example: `  smartreno book
  smartreno book --headless --photos kitchen.jpg --description "Full kitchen remodel with new cabinets" \
    --street "123 Main St" --zip 94102 --slot first`,
	RunE: runBook,
}

func init() {
	bookCmd.Flags().BoolVar(&bookFlags.headless, "headless", false, "Book from flags without the TUI")
	bookCmd.Flags().StringSliceVar(&bookFlags.photos, "photos", nil, "Project photo references (repeatable)")
	bookCmd.Flags().StringVarP(&bookFlags.description, "description", "d", "", "Project description (min 20 characters)")
	bookCmd.Flags().StringVar(&bookFlags.street, "street", "", "Street address")
	bookCmd.Flags().StringVar(&bookFlags.apt, "apt", "", "Apt / suite (optional)")
	bookCmd.Flags().StringVar(&bookFlags.zip, "zip", "", "5-digit ZIP code")
	bookCmd.Flags().StringVar(&bookFlags.slot, "slot", "first", "Slot id from 'smartreno slots', or 'first' for the earliest free slot")
}

func runBook(cmd *cobra.Command, args []string) error {
	deps := newDeps(appConfig, time.Now)

	if !bookFlags.headless {
		conf, err := bookingwizard.Run(cmd.Context(), deps)
		if errors.Is(err, bookingwizard.ErrCancelled) {
			fmt.Fprintln(cmd.OutOrStdout(), "Booking cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
		printConfirmation(cmd.OutOrStdout(), conf)
		return nil
	}

	conf, err := bookHeadless(cmd.Context(), deps, headlessRequest{
		Photos:      bookFlags.photos,
		Description: bookFlags.description,
		Street:      bookFlags.street,
		AptSuite:    bookFlags.apt,
		ZIPCode:     bookFlags.zip,
		Slot:        bookFlags.slot,
	})
	if err != nil {
		return err
	}
	printConfirmation(cmd.OutOrStdout(), conf)
	return nil
}

// headlessRequest is a booking given entirely up front.
type headlessRequest struct {
	Photos      []string
	Description string
	Street      string
	AptSuite    string
	ZIPCode     string
	Slot        string // slot id or "first"
}

// bookHeadless drives the controller through every step with the same
// validators the wizard screens use.
func bookHeadless(ctx context.Context, deps bookingwizard.Deps, req headlessRequest) (booking.Confirmation, error) {
	ctrl := booking.NewController()
	ctrl.StartBooking()

	photos := make([]booking.PhotoRef, 0, len(req.Photos))
	for _, p := range req.Photos {
		photos = append(photos, booking.NewPhotoRef(p))
	}
	project, errs := booking.ValidateProject(photos, req.Description)
	if errs != nil {
		return booking.Confirmation{}, fmt.Errorf("project: %w", errs.Err())
	}
	if err := ctrl.Advance(project); err != nil {
		return booking.Confirmation{}, err
	}

	location, errs := booking.ValidateLocation(req.Street, req.AptSuite, req.ZIPCode, deps.Area)
	if errs != nil {
		return booking.Confirmation{}, fmt.Errorf("location: %w", errs.Err())
	}
	if err := ctrl.Advance(location); err != nil {
		return booking.Confirmation{}, err
	}

	slots := deps.Generator.Generate(deps.Now())
	var selected *booking.TimeSlot
	if req.Slot == "" || req.Slot == "first" {
		if free := booking.AvailableSlots(slots); len(free) > 0 {
			selected = booking.SelectSlot(nil, free[0])
		}
	} else if s, ok := booking.FindSlot(slots, req.Slot); ok {
		selected = booking.SelectSlot(nil, s)
	} else {
		return booking.Confirmation{}, fmt.Errorf("timeslot: unknown slot %q", req.Slot)
	}
	timeslot, errs := booking.ValidateTimeslot(selected)
	if errs != nil {
		return booking.Confirmation{}, fmt.Errorf("timeslot: %w", errs.Err())
	}
	if err := ctrl.Advance(timeslot); err != nil {
		return booking.Confirmation{}, err
	}

	logger.Info("Submitting headless booking for slot %s", timeslot.Slot.ID)
	receipt, err := deps.API.SubmitAppointment(ctx, ctrl.State())
	if err != nil {
		return booking.Confirmation{}, err
	}
	return ctrl.Confirm(receipt.SubmittedAt)
}

func printConfirmation(w io.Writer, c booking.Confirmation) {
	fmt.Fprintf(w, "Appointment confirmed: %s\n", c.AppointmentID)
	fmt.Fprintf(w, "  When:      %s, %s\n", c.Date, c.Time)
	fmt.Fprintf(w, "  Estimator: %s\n", c.EstimatorName)
	fmt.Fprintf(w, "  Address:   %s\n", c.Address())
}
