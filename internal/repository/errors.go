package repository

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrSeatClaimTaken  = errors.New("seat already claimed")
	ErrNoCapacity      = errors.New("not enough seats remaining")
	ErrAlreadyFinal    = errors.New("booking already finalized")
	ErrTripNotBookable = errors.New("trip is not bookable")
	ErrInUse           = errors.New("record is referenced by trips")
)
