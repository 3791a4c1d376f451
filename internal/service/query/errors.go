package query

import "errors"

var (
	ErrTripNotFound    = errors.New("trip not found")
	ErrRouteNotFound   = errors.New("route not found")
	ErrBookingNotFound = errors.New("booking not found")
)
