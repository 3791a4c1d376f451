package trips

import (
	"time"

	"github.com/ridesched/busgo/internal/domain"
)

// MinCancelLead is the minimum interval between an operator cancellation
// and scheduled departure.
const MinCancelLead = 24 * time.Hour

// MaxBookingWindowDays bounds how far ahead of departure a trip accepts
// bookings.
const MaxBookingWindowDays = 90

// DeriveArrival computes the arrival time-of-day from the departure clock
// and the route's estimated duration, wrapping past midnight.
func DeriveArrival(departure string, durationMinutes int) (string, error) {
	clk, err := domain.ParseClock(departure)
	if err != nil {
		return "", err
	}
	return clk.AddMinutes(durationMinutes).String(), nil
}

// ClampWindowDays forces the advance-booking window into [0, 90].
func ClampWindowDays(days int) int {
	if days < 0 {
		return 0
	}
	if days > MaxBookingWindowDays {
		return MaxBookingWindowDays
	}
	return days
}

// CheckCancellation gates operator-initiated cancellation: the trip must
// still be Scheduled and at least MinCancelLead away from departure.
func CheckCancellation(trip *domain.Trip, now time.Time) error {
	if trip.Status != domain.TripScheduled {
		return ErrAlreadyFinal
	}

	departure, err := trip.DepartureAt()
	if err != nil {
		return err
	}

	if departure.Sub(now) < MinCancelLead {
		return ErrTooLateToCancel
	}

	return nil
}
