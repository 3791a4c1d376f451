package fleet

import "errors"

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrRouteNotFound    = errors.New("route not found")
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrTemplateNotFound = errors.New("seat template not found")
	ErrSameEndpoints    = errors.New("route start and end must differ")
	ErrPlateConflict    = errors.New("plate number already registered")
	ErrLocationInUse    = errors.New("location is referenced by routes")
	ErrRouteInUse       = errors.New("route is referenced by trips")
	ErrVehicleInUse     = errors.New("vehicle has scheduled trips")
)
