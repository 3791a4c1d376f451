package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ridesched/busgo/internal/domain"
	"github.com/ridesched/busgo/internal/notify"
	"github.com/ridesched/busgo/internal/repository"
	postgresrepo "github.com/ridesched/busgo/internal/repository/postgres"
	redisrepo "github.com/ridesched/busgo/internal/repository/redis"
	"github.com/ridesched/busgo/internal/uow"
)

type Config struct {
	// PendingTTL is how long a Pending booking keeps its seat claims
	// before the expiry sweep releases them.
	PendingTTL time.Duration
}

type Service struct {
	store    *postgresrepo.Store
	cache    *redisrepo.Cache
	pubsub   Publisher
	limiter  *redisrepo.SlidingWindowLimiter
	notifier notify.Notifier
	uow      *uow.UoW
	logger   *slog.Logger
	cfg      Config
}

// Publisher announces trip changes after commits.
type Publisher interface {
	PublishTripChanged(ctx context.Context, tripID int64) error
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub Publisher,
	limiter *redisrepo.SlidingWindowLimiter,
	notifier notify.Notifier,
	logger *slog.Logger,
	cfg Config,
) *Service {
	if cfg.PendingTTL <= 0 {
		cfg.PendingTTL = 15 * time.Minute
	}

	return &Service{
		store:    store,
		cache:    cache,
		pubsub:   pubsub,
		limiter:  limiter,
		notifier: notifier,
		uow:      uow.NewUoW(store),
		logger:   logger,
		cfg:      cfg,
	}
}

type CreateParams struct {
	TripID         int64
	PassengerEmail string
	PassengerName  string
	SeatLabels     []string
	PickupPoint    string
	DropPoint      string
}

// Create runs phase one of the reservation: conflict check, time-window
// gates and fare computation, then a Pending booking with its seat claims,
// all inside one serializable transaction. The trip's capacity counter is
// not touched until Confirm.
//
// Returns:
//   - *domain.Booking: the Pending booking.
//   - error: booking.SeatConflictError naming the taken labels.
//   - error: booking.ErrTooCloseToDeparture / ErrOutsideBookingWindow.
//   - error: booking.ErrTripNotFound / ErrTripNotBookable.
func (s *Service) Create(ctx context.Context, p CreateParams, rlKey string) (*domain.Booking, error) {
	const op = "service.booking.Create"

	seats := domain.UnionSeats(p.SeatLabels)
	if len(seats) == 0 {
		return nil, fmt.Errorf("%s:%w", op, ErrNoSeatsSelected)
	}

	if s.limiter != nil && rlKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: rate limited, retry in %s", op, retry)
		}
	}

	var created *domain.Booking

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		trip, err := s.store.Trips().With(tx).Get(ctx, p.TripID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrTripNotFound)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		if trip.Status != domain.TripScheduled {
			return fmt.Errorf("%s:%w", op, ErrTripNotBookable)
		}

		if err := CheckWindow(trip, time.Now()); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		vehicle, err := s.store.Fleet().With(tx).GetVehicle(ctx, trip.VehicleID)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		var unknown []string
		for _, label := range seats {
			if !vehicle.Layout.HasSeat(label) {
				unknown = append(unknown, label)
			}
		}
		if len(unknown) > 0 {
			return fmt.Errorf("%s:%w", op, UnknownSeatError{Labels: unknown})
		}

		active, err := s.store.Bookings().With(tx).ListActiveByTrip(ctx, trip.ID)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		taken := trip.BlockedSeats
		for _, b := range active {
			taken = domain.UnionSeats(taken, b.SeatLabels)
		}

		if conflicts := domain.ConflictingSeats(seats, taken); len(conflicts) > 0 {
			return fmt.Errorf("%s:%w", op, SeatConflictError{Labels: conflicts})
		}

		user, err := s.store.Users().With(tx).FindOrCreate(
			ctx, p.PassengerEmail, p.PassengerName, domain.RoleUser)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		b := &domain.Booking{
			ID:            uuid.New(),
			TripID:        trip.ID,
			UserID:        user.ID,
			SeatLabels:    seats,
			AmountCents:   domain.Fare(len(seats), trip.PricePerSeatCents),
			PickupPoint:   p.PickupPoint,
			DropPoint:     p.DropPoint,
			PaymentStatus: domain.PaymentPending,
			CreatedAt:     time.Now(),
		}

		if err := s.store.Bookings().With(tx).Create(ctx, b); err != nil {
			// The unique index on active claims lost us a race the
			// conflict check could not see.
			if errors.Is(err, repository.ErrSeatClaimTaken) {
				return fmt.Errorf("%s:%w", op, SeatConflictError{Labels: seats})
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		created = b

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateTrip(ctx, trip.ID)
			_ = s.pubsub.PublishTripChanged(ctx, trip.ID)
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Confirm runs phase two: the guarded capacity decrement, the Pending→Paid
// flip and the payment-id stamp, atomically. If fewer seats remain than the
// booking holds, the whole unit aborts and the caller must treat the
// payment as reversed.
//
// Returns:
//   - *domain.Booking: the Paid booking.
//   - error: booking.ErrCapacityExceeded if the capacity race was lost.
//   - error: booking.ErrBookingNotFound / ErrTripNotFound.
//   - error: booking.ErrAlreadyFinalized if the booking is not Pending.
func (s *Service) Confirm(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	const op = "service.booking.Confirm"

	var confirmed *domain.Booking

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		b, err := s.store.Bookings().With(tx).Get(ctx, bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrBookingNotFound)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		if b.PaymentStatus != domain.PaymentPending {
			return fmt.Errorf("%s:%w", op, ErrAlreadyFinalized)
		}

		if err := s.store.Trips().With(tx).ConsumeSeats(ctx, b.TripID, len(b.SeatLabels)); err != nil {
			switch {
			case errors.Is(err, repository.ErrNoCapacity):
				return fmt.Errorf("%s:%w", op, ErrCapacityExceeded)
			case errors.Is(err, repository.ErrTripNotBookable):
				return fmt.Errorf("%s:%w", op, ErrTripNotBookable)
			case errors.Is(err, repository.ErrNotFound):
				return fmt.Errorf("%s:%w", op, ErrTripNotFound)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		paymentID := fmt.Sprintf("mock_payment_%d", time.Now().UnixMilli())

		if err := s.store.Bookings().With(tx).MarkPaid(ctx, b.ID, paymentID); err != nil {
			if errors.Is(err, repository.ErrAlreadyFinal) {
				return fmt.Errorf("%s:%w", op, ErrAlreadyFinalized)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		b.PaymentStatus = domain.PaymentPaid
		b.PaymentID = paymentID
		confirmed = b

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateTrip(ctx, b.TripID)
			_ = s.pubsub.PublishTripChanged(ctx, b.TripID)

			user, err := s.store.Users().Get(ctx, b.UserID)
			if err != nil {
				s.logger.Warn("confirmation notice skipped", "booking_id", b.ID, "error", err)
				return
			}
			if err := s.notifier.BookingConfirmed(ctx, b, user.Email); err != nil {
				s.logger.Warn("confirmation notice failed", "booking_id", b.ID, "error", err)
			}
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return confirmed, nil
}

// Get retrieves a booking by ID.
//
// Returns:
//   - error: booking.ErrBookingNotFound if the booking is not found.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const op = "service.booking.Get"

	b, err := s.store.Bookings().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrBookingNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return b, nil
}

// ExpireStale marks Pending bookings older than the configured TTL as
// Expired and releases their seat claims. The status flip and the claim
// release commit together, so a crashed sweep never leaves Expired bookings
// holding seats.
//
// Returns:
//   - int64: the number of bookings expired.
func (s *Service) ExpireStale(ctx context.Context) (int64, error) {
	const op = "service.booking.ExpireStale"

	cutoff := time.Now().Add(-s.cfg.PendingTTL)

	var expired int64

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		n, err := s.store.Bookings().With(tx).ExpirePending(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
		expired = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	return expired, nil
}
