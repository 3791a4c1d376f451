package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ridesched/busgo/internal/domain"
	"github.com/ridesched/busgo/internal/repository"
)

type TripRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *TripRepo) With(db DB) *TripRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *TripRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const tripColumns = `id, vehicle_id, route_id, trip_date, departure_time, arrival_time,
       price_per_seat_cents, available_seats, booking_window_days, blocked_seats, status`

// Create inserts a scheduled trip and returns its ID. The caller derives
// arrival time and seeds available_seats before calling.
func (r *TripRepo) Create(ctx context.Context, t *domain.Trip) (int64, error) {
	const op = "postgres.TripRepo.Create"

	db := r.handle()

	blocked, err := json.Marshal(t.BlockedSeats)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO trips(vehicle_id, route_id, trip_date, departure_time, arrival_time,
                           price_per_seat_cents, available_seats, booking_window_days,
                           blocked_seats, status)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
         RETURNING id`,
		t.VehicleID, t.RouteID, t.Date, t.DepartureTime, t.ArrivalTime,
		t.PricePerSeatCents, t.AvailableSeats, t.BookingWindowDays,
		blocked, t.Status,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

// Get retrieves a trip by its ID.
//
// Returns:
//   - *domain.Trip: the trip when found.
//   - error: repository.ErrNotFound if the trip is not found.
func (r *TripRepo) Get(ctx context.Context, id int64) (*domain.Trip, error) {
	const op = "postgres.TripRepo.Get"

	db := r.handle()

	row := db.QueryRow(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id = $1`, id)

	t, err := scanTrip(row)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return t, nil
}

// Search lists scheduled trips for a route on a calendar day, soonest first.
func (r *TripRepo) Search(ctx context.Context, routeID int64, date time.Time) ([]domain.Trip, error) {
	const op = "postgres.TripRepo.Search"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT `+tripColumns+`
         FROM trips
         WHERE route_id = $1 AND trip_date = $2 AND status = $3
         ORDER BY departure_time`,
		routeID, date, domain.TripScheduled,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// ConsumeSeats decrements the trip's capacity counter by n. The guard in the
// WHERE clause is what loses the confirm-phase race for exactly one caller.
//
// Returns:
//   - error: repository.ErrNotFound if the trip does not exist.
//   - error: repository.ErrTripNotBookable if the trip is not Scheduled.
//   - error: repository.ErrNoCapacity if fewer than n seats remain.
func (r *TripRepo) ConsumeSeats(ctx context.Context, tripID int64, n int) error {
	const op = "postgres.TripRepo.ConsumeSeats"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE trips
         SET available_seats = available_seats - $2
         WHERE id = $1 AND status = $3 AND available_seats >= $2`,
		tripID, n, domain.TripScheduled,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 1 {
		return nil
	}

	var status domain.TripStatus
	var available int
	err = db.QueryRow(ctx,
		`SELECT status, available_seats FROM trips WHERE id = $1`, tripID,
	).Scan(&status, &available)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if status != domain.TripScheduled {
		return fmt.Errorf("%s:%w", op, repository.ErrTripNotBookable)
	}

	return fmt.Errorf("%s:%w", op, repository.ErrNoCapacity)
}

// SetStatus transitions a trip from one status to another.
//
// Returns:
//   - error: repository.ErrNotFound if the trip does not exist.
//   - error: repository.ErrConflict if the trip is no longer in the from status.
func (r *TripRepo) SetStatus(ctx context.Context, tripID int64, from, to domain.TripStatus) error {
	const op = "postgres.TripRepo.SetStatus"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE trips SET status = $3 WHERE id = $1 AND status = $2`,
		tripID, from, to,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM trips WHERE id = $1)`, tripID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		if !exists {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		return fmt.Errorf("%s:%w", op, repository.ErrConflict)
	}

	return nil
}

// SetBlockedSeats replaces the blocked-seat set and reduces the capacity
// counter by the number of newly blocked labels, in one statement.
//
// Returns:
//   - error: repository.ErrNoCapacity if the counter would go negative.
//   - error: repository.ErrNotFound if the trip does not exist.
func (r *TripRepo) SetBlockedSeats(
	ctx context.Context,
	tripID int64,
	blocked []string,
	newlyBlocked int,
) error {
	const op = "postgres.TripRepo.SetBlockedSeats"

	db := r.handle()

	raw, err := json.Marshal(blocked)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	tag, err := db.Exec(ctx,
		`UPDATE trips
         SET blocked_seats = $2, available_seats = available_seats - $3
         WHERE id = $1 AND available_seats >= $3`,
		tripID, raw, newlyBlocked,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM trips WHERE id = $1)`, tripID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		if !exists {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		return fmt.Errorf("%s:%w", op, repository.ErrNoCapacity)
	}

	return nil
}

// HasFutureTrips reports whether any trips on or after today reference the
// vehicle. Used to block vehicle deletion.
func (r *TripRepo) HasFutureTrips(ctx context.Context, vehicleID int64) (bool, error) {
	const op = "postgres.TripRepo.HasFutureTrips"

	db := r.handle()

	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS(
            SELECT 1 FROM trips
            WHERE vehicle_id = $1 AND trip_date >= CURRENT_DATE AND status = $2
         )`,
		vehicleID, domain.TripScheduled,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return exists, nil
}

func scanTrip(row pgx.Row) (*domain.Trip, error) {
	var t domain.Trip
	var blocked []byte

	if err := row.Scan(
		&t.ID,
		&t.VehicleID,
		&t.RouteID,
		&t.Date,
		&t.DepartureTime,
		&t.ArrivalTime,
		&t.PricePerSeatCents,
		&t.AvailableSeats,
		&t.BookingWindowDays,
		&blocked,
		&t.Status,
	); err != nil {
		return nil, err
	}

	if len(blocked) > 0 {
		if err := json.Unmarshal(blocked, &t.BlockedSeats); err != nil {
			return nil, fmt.Errorf("decode blocked seats: %w", err)
		}
	}

	return &t, nil
}
