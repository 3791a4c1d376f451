package booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTripNotFound         = errors.New("trip not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrTripNotBookable      = errors.New("trip is not open for booking")
	ErrNoSeatsSelected      = errors.New("no seats selected")
	ErrSeatConflict         = errors.New("some seats are already taken")
	ErrCapacityExceeded     = errors.New("not enough seats remaining")
	ErrAlreadyFinalized     = errors.New("booking is already finalized")
	ErrTooCloseToDeparture  = errors.New("too close to departure")
	ErrOutsideBookingWindow = errors.New("outside the advance-booking window")
)

// SeatConflictError names the exact labels that collided. It unwraps to
// ErrSeatConflict so callers can match either way.
type SeatConflictError struct {
	Labels []string
}

func (e SeatConflictError) Error() string {
	return fmt.Sprintf("seats already taken: %s", strings.Join(e.Labels, ", "))
}

func (e SeatConflictError) Unwrap() error {
	return ErrSeatConflict
}

// UnknownSeatError reports requested labels that do not exist in the
// vehicle's layout.
type UnknownSeatError struct {
	Labels []string
}

func (e UnknownSeatError) Error() string {
	return fmt.Sprintf("unknown seats for this vehicle: %s", strings.Join(e.Labels, ", "))
}
