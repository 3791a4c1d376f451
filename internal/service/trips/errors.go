package trips

import "errors"

var (
	ErrTripNotFound     = errors.New("trip not found")
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrRouteNotFound    = errors.New("route not found")
	ErrTooLateToCancel  = errors.New("too late to cancel")
	ErrAlreadyFinal     = errors.New("trip is already cancelled or completed")
	ErrSeatsUnavailable = errors.New("cannot block seats that are claimed")
	ErrUnknownSeat      = errors.New("seat label not in vehicle layout")
)
