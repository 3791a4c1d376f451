package booking

import (
	"time"

	"github.com/ridesched/busgo/internal/domain"
)

// MinLeadTime is the minimum interval between booking submission and
// scheduled departure.
const MinLeadTime = 30 * time.Minute

// CheckWindow evaluates both time-window gates against now.
//
// Returns:
//   - ErrTooCloseToDeparture if departure is under MinLeadTime away.
//   - ErrOutsideBookingWindow if now is earlier than departure minus the
//     trip's booking-window days. A window of 0 days means no ceiling.
func CheckWindow(trip *domain.Trip, now time.Time) error {
	departure, err := trip.DepartureAt()
	if err != nil {
		return err
	}

	if departure.Sub(now) < MinLeadTime {
		return ErrTooCloseToDeparture
	}

	if trip.BookingWindowDays > 0 {
		opensAt := departure.AddDate(0, 0, -trip.BookingWindowDays)
		if now.Before(opensAt) {
			return ErrOutsideBookingWindow
		}
	}

	return nil
}
