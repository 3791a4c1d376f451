package trips

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ridesched/busgo/internal/domain"
	"github.com/ridesched/busgo/internal/notify"
	"github.com/ridesched/busgo/internal/repository"
	postgresrepo "github.com/ridesched/busgo/internal/repository/postgres"
	redisrepo "github.com/ridesched/busgo/internal/repository/redis"
	"github.com/ridesched/busgo/internal/uow"
)

type Publisher interface {
	PublishTripChanged(ctx context.Context, tripID int64) error
}

type Service struct {
	store    *postgresrepo.Store
	cache    *redisrepo.Cache
	pubsub   Publisher
	notifier notify.Notifier
	uow      *uow.UoW
	logger   *slog.Logger
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub Publisher,
	notifier notify.Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:    store,
		cache:    cache,
		pubsub:   pubsub,
		notifier: notifier,
		uow:      uow.NewUoW(store),
		logger:   logger,
	}
}

type ScheduleParams struct {
	VehicleID         int64
	RouteID           int64
	Date              time.Time
	DepartureTime     string
	PricePerSeatCents int
	BookingWindowDays int
}

// Schedule creates a trip: arrival time derived from the route duration,
// available seats seeded from the vehicle's seat count, window days
// clamped into range.
//
// Returns:
//   - *domain.Trip: the scheduled trip.
//   - error: trips.ErrVehicleNotFound / trips.ErrRouteNotFound.
func (s *Service) Schedule(ctx context.Context, p ScheduleParams) (*domain.Trip, error) {
	const op = "service.trips.Schedule"

	var created *domain.Trip

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		vehicle, err := s.store.Fleet().With(tx).GetVehicle(ctx, p.VehicleID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrVehicleNotFound)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		route, err := s.store.Fleet().With(tx).GetRoute(ctx, p.RouteID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrRouteNotFound)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		arrival, err := DeriveArrival(p.DepartureTime, route.DurationMinutes)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		t := &domain.Trip{
			VehicleID:         vehicle.ID,
			RouteID:           route.ID,
			Date:              p.Date,
			DepartureTime:     p.DepartureTime,
			ArrivalTime:       arrival,
			PricePerSeatCents: p.PricePerSeatCents,
			AvailableSeats:    vehicle.Layout.SeatCount(),
			BookingWindowDays: ClampWindowDays(p.BookingWindowDays),
			Status:            domain.TripScheduled,
		}

		id, err := s.store.Trips().With(tx).Create(ctx, t)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
		t.ID = id
		created = t

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Cancel transitions a Scheduled trip to Cancelled by Operator, subject to
// the 24-hour lead gate. The trip and its bookings are retained. After the
// commit, every passenger with an active booking is notified; delivery
// failures are logged and never surfaced.
//
// Returns:
//   - error: trips.ErrTooLateToCancel inside the 24-hour window.
//   - error: trips.ErrAlreadyFinal if the trip is not Scheduled.
//   - error: trips.ErrTripNotFound.
func (s *Service) Cancel(ctx context.Context, tripID int64) (*domain.Trip, error) {
	const op = "service.trips.Cancel"

	var cancelled *domain.Trip

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		trip, err := s.store.Trips().With(tx).Get(ctx, tripID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrTripNotFound)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		if err := CheckCancellation(trip, time.Now()); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		if err := s.store.Trips().With(tx).SetStatus(
			ctx, tripID, domain.TripScheduled, domain.TripCancelled,
		); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("%s:%w", op, ErrAlreadyFinal)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		passengers, err := s.store.Bookings().With(tx).PassengersByTrip(ctx, tripID)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		trip.Status = domain.TripCancelled
		cancelled = trip

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateTrip(ctx, tripID)
			_ = s.pubsub.PublishTripChanged(ctx, tripID)

			for _, p := range passengers {
				if err := s.notifier.TripCancelled(ctx, tripID, p); err != nil {
					s.logger.Warn("cancellation notice failed",
						"trip_id", tripID, "email", p.Email, "error", err)
				}
			}
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return cancelled, nil
}

// BlockSeats withholds seat labels from sale. New labels merge into the
// trip's blocked set and the capacity counter drops by the newly blocked
// count in the same transaction. Labels already claimed by active bookings
// cannot be blocked.
//
// Returns:
//   - error: trips.ErrUnknownSeat for labels outside the vehicle layout.
//   - error: trips.ErrSeatsUnavailable if a label is actively claimed.
//   - error: trips.ErrTripNotFound.
func (s *Service) BlockSeats(ctx context.Context, tripID int64, labels []string) (*domain.Trip, error) {
	const op = "service.trips.BlockSeats"

	var updated *domain.Trip

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		trip, err := s.store.Trips().With(tx).Get(ctx, tripID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrTripNotFound)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		vehicle, err := s.store.Fleet().With(tx).GetVehicle(ctx, trip.VehicleID)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		for _, label := range labels {
			if !vehicle.Layout.HasSeat(label) {
				return fmt.Errorf("%s: %q: %w", op, label, ErrUnknownSeat)
			}
		}

		active, err := s.store.Bookings().With(tx).ListActiveByTrip(ctx, tripID)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		var claimed []string
		for _, b := range active {
			claimed = domain.UnionSeats(claimed, b.SeatLabels)
		}
		if conflicts := domain.ConflictingSeats(labels, claimed); len(conflicts) > 0 {
			return fmt.Errorf("%s: %v: %w", op, conflicts, ErrSeatsUnavailable)
		}

		merged := domain.UnionSeats(trip.BlockedSeats, labels)
		newlyBlocked := len(merged) - len(trip.BlockedSeats)

		if newlyBlocked > 0 {
			if err := s.store.Trips().With(tx).SetBlockedSeats(
				ctx, tripID, merged, newlyBlocked,
			); err != nil {
				return fmt.Errorf("%s:%w", op, err)
			}
		}

		trip.BlockedSeats = merged
		trip.AvailableSeats -= newlyBlocked
		updated = trip

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateTrip(ctx, tripID)
			_ = s.pubsub.PublishTripChanged(ctx, tripID)
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
