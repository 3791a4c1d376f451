package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ridesched/busgo/internal/domain"
	"github.com/ridesched/busgo/internal/repository"
	postgresrepo "github.com/ridesched/busgo/internal/repository/postgres"
	redisrepo "github.com/ridesched/busgo/internal/repository/redis"
	"github.com/ridesched/busgo/internal/service/booking"
)

type Config struct {
	TripSummaryTTL  time.Duration
	AvailabilityTTL time.Duration
	SeatMapTTL      time.Duration
}

type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	cfg   Config
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.TripSummaryTTL <= 0 {
		cfg.TripSummaryTTL = 60 * time.Second
	}

	if cfg.AvailabilityTTL <= 0 {
		cfg.AvailabilityTTL = 15 * time.Second
	}

	if cfg.SeatMapTTL <= 0 {
		cfg.SeatMapTTL = 15 * time.Second
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

// TripSummary is the search/booking-page view of a trip.
type TripSummary struct {
	Trip          domain.Trip `json:"trip"`
	RouteStops    []string    `json:"route_stops"`
	VehicleType   string      `json:"vehicle_type"`
	PlateNumber   string      `json:"plate_number"`
	VehicleSeats  int         `json:"vehicle_seats"`
	Amenities     []string    `json:"amenities"`
	StartLocation string      `json:"start_location"`
	EndLocation   string      `json:"end_location"`
}

// TripAvailability are the aggregate seat counters for a trip.
type TripAvailability struct {
	TripID         int64 `json:"trip_id"`
	TotalSeats     int   `json:"total_seats"`
	AvailableSeats int   `json:"available_seats"`
	TakenSeats     int   `json:"taken_seats"`
	BlockedSeats   int   `json:"blocked_seats"`
}

// GetTrip retrieves a trip summary through the cache.
//
// Returns:
//   - error: query.ErrTripNotFound if the trip is not found.
func (s *Service) GetTrip(ctx context.Context, id int64) (*TripSummary, error) {
	const op = "service.query.GetTrip"

	key := redisrepo.KeyTripSummary(id)

	summary, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.TripSummaryTTL,
		func(ctx context.Context) (TripSummary, error) {
			return s.loadTripSummary(ctx, id)
		},
	)
	if err != nil {
		if errors.Is(err, ErrTripNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrTripNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &summary, nil
}

func (s *Service) loadTripSummary(ctx context.Context, id int64) (TripSummary, error) {
	trip, err := s.store.Trips().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TripSummary{}, ErrTripNotFound
		}
		return TripSummary{}, err
	}

	vehicle, err := s.store.Fleet().GetVehicle(ctx, trip.VehicleID)
	if err != nil {
		return TripSummary{}, err
	}

	route, err := s.store.Fleet().GetRoute(ctx, trip.RouteID)
	if err != nil {
		return TripSummary{}, err
	}

	start, end := "", ""
	locations, err := s.store.Fleet().ListLocations(ctx)
	if err != nil {
		return TripSummary{}, err
	}
	for _, l := range locations {
		if l.ID == route.StartLocationID {
			start = l.Name
		}
		if l.ID == route.EndLocationID {
			end = l.Name
		}
	}

	return TripSummary{
		Trip:          *trip,
		RouteStops:    route.Stops,
		VehicleType:   string(vehicle.Type),
		PlateNumber:   vehicle.PlateNumber,
		VehicleSeats:  vehicle.TotalSeats,
		Amenities:     vehicle.Amenities,
		StartLocation: start,
		EndLocation:   end,
	}, nil
}

// Availability returns the trip's seat counters through the cache.
//
// Returns:
//   - error: query.ErrTripNotFound if the trip is not found.
func (s *Service) Availability(ctx context.Context, tripID int64) (*TripAvailability, error) {
	const op = "service.query.Availability"

	key := redisrepo.KeyTripAvailability(tripID)

	avail, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.AvailabilityTTL,
		func(ctx context.Context) (TripAvailability, error) {
			return s.loadAvailability(ctx, tripID)
		},
	)
	if err != nil {
		if errors.Is(err, ErrTripNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrTripNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &avail, nil
}

func (s *Service) loadAvailability(ctx context.Context, tripID int64) (TripAvailability, error) {
	trip, err := s.store.Trips().Get(ctx, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TripAvailability{}, ErrTripNotFound
		}
		return TripAvailability{}, err
	}

	vehicle, err := s.store.Fleet().GetVehicle(ctx, trip.VehicleID)
	if err != nil {
		return TripAvailability{}, err
	}

	active, err := s.store.Bookings().ListActiveByTrip(ctx, tripID)
	if err != nil {
		return TripAvailability{}, err
	}

	var taken []string
	for _, b := range active {
		taken = domain.UnionSeats(taken, b.SeatLabels)
	}

	return TripAvailability{
		TripID:         tripID,
		TotalSeats:     vehicle.TotalSeats,
		AvailableSeats: trip.AvailableSeats,
		TakenSeats:     len(taken),
		BlockedSeats:   len(trip.BlockedSeats),
	}, nil
}

// GetSeatMap renders the trip's seat grid with per-seat display status,
// through the cache.
//
// Returns:
//   - error: query.ErrTripNotFound if the trip is not found.
func (s *Service) GetSeatMap(ctx context.Context, tripID int64) (*SeatMap, error) {
	const op = "service.query.GetSeatMap"

	key := redisrepo.KeyTripSeatMap(tripID)

	sm, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.SeatMapTTL,
		func(ctx context.Context) (SeatMap, error) {
			return s.loadSeatMap(ctx, tripID)
		},
	)
	if err != nil {
		if errors.Is(err, ErrTripNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrTripNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &sm, nil
}

func (s *Service) loadSeatMap(ctx context.Context, tripID int64) (SeatMap, error) {
	trip, err := s.store.Trips().Get(ctx, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return SeatMap{}, ErrTripNotFound
		}
		return SeatMap{}, err
	}

	vehicle, err := s.store.Fleet().GetVehicle(ctx, trip.VehicleID)
	if err != nil {
		return SeatMap{}, err
	}

	active, err := s.store.Bookings().ListActiveByTrip(ctx, tripID)
	if err != nil {
		return SeatMap{}, err
	}

	taken := trip.BlockedSeats
	for _, b := range active {
		taken = domain.UnionSeats(taken, b.SeatLabels)
	}

	return SeatMap{
		TripID:  tripID,
		Columns: vehicle.Columns,
		Rows:    vehicle.Rows,
		Slots:   RenderSeatMap(vehicle.Layout, taken),
	}, nil
}

// SearchTrips lists scheduled trips on a route for a calendar day,
// filtered to those currently open for booking.
//
// Returns:
//   - error: query.ErrRouteNotFound if the route does not exist.
func (s *Service) SearchTrips(ctx context.Context, routeID int64, date time.Time) ([]domain.Trip, error) {
	const op = "service.query.SearchTrips"

	if _, err := s.store.Fleet().GetRoute(ctx, routeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrRouteNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	found, err := s.store.Trips().Search(ctx, routeID, date)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	now := time.Now()
	out := make([]domain.Trip, 0, len(found))
	for _, t := range found {
		if booking.CheckWindow(&t, now) != nil {
			continue
		}
		out = append(out, t)
	}

	return out, nil
}
