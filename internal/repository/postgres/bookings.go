package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ridesched/busgo/internal/domain"
	"github.com/ridesched/busgo/internal/repository"
)

type BookingRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *BookingRepo) With(db DB) *BookingRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *BookingRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create persists a Pending booking together with one seat-claim row per
// label. The partial unique index on active claims makes concurrent
// requests for an overlapping label fail here rather than double-book.
//
// Returns:
//   - error: repository.ErrSeatClaimTaken if any label is already claimed.
func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	const op = "postgres.BookingRepo.Create"

	db := r.handle()

	if _, err := db.Exec(ctx,
		`INSERT INTO bookings(id, trip_id, user_id, seat_labels, amount_cents,
                              pickup_point, drop_point, payment_status, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.TripID, b.UserID, strings.Join(b.SeatLabels, ","),
		b.AmountCents, b.PickupPoint, b.DropPoint, b.PaymentStatus, b.CreatedAt,
	); err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	batch := &pgx.Batch{}
	for _, label := range b.SeatLabels {
		batch.Queue(
			`INSERT INTO seat_claims(booking_id, trip_id, seat_label)
             VALUES ($1, $2, $3)`,
			b.ID, b.TripID, label,
		)
	}
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

// Get retrieves a booking by its ID.
//
// Returns:
//   - *domain.Booking: the booking when found.
//   - error: repository.ErrNotFound if the booking is not found.
func (r *BookingRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.Get"

	db := r.handle()

	row := db.QueryRow(ctx,
		`SELECT id, trip_id, user_id, seat_labels, amount_cents, pickup_point,
                drop_point, payment_status, COALESCE(payment_id, ''), created_at
         FROM bookings WHERE id = $1`,
		id,
	)

	b, err := scanBooking(row)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return b, nil
}

// ListActiveByTrip lists the trip's bookings whose seats count as taken
// (Pending and Paid).
func (r *BookingRepo) ListActiveByTrip(ctx context.Context, tripID int64) ([]domain.Booking, error) {
	const op = "postgres.BookingRepo.ListActiveByTrip"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, trip_id, user_id, seat_labels, amount_cents, pickup_point,
                drop_point, payment_status, COALESCE(payment_id, ''), created_at
         FROM bookings
         WHERE trip_id = $1 AND payment_status = ANY($2)
         ORDER BY created_at`,
		tripID, statusStrings(domain.ActivePaymentStatuses),
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// MarkPaid flips a Pending booking to Paid and stamps the payment ID.
//
// Returns:
//   - error: repository.ErrNotFound if the booking does not exist.
//   - error: repository.ErrAlreadyFinal if the booking is no longer Pending.
func (r *BookingRepo) MarkPaid(ctx context.Context, id uuid.UUID, paymentID string) error {
	const op = "postgres.BookingRepo.MarkPaid"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE bookings
         SET payment_status = $2, payment_id = $3
         WHERE id = $1 AND payment_status = $4`,
		id, domain.PaymentPaid, paymentID, domain.PaymentPending,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM bookings WHERE id = $1)`, id,
		).Scan(&exists); err != nil {
			return fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		if !exists {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		return fmt.Errorf("%s:%w", op, repository.ErrAlreadyFinal)
	}

	return nil
}

// ExpirePending marks Pending bookings created before the cutoff as Expired
// and releases their seat claims. Two statements; callers run them inside
// one transaction so the status flip and the claim release commit together.
//
// Returns:
//   - int64: the number of bookings expired.
func (r *BookingRepo) ExpirePending(ctx context.Context, cutoff time.Time) (int64, error) {
	const op = "postgres.BookingRepo.ExpirePending"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE bookings
         SET payment_status = $2
         WHERE payment_status = $1 AND created_at <= $3`,
		domain.PaymentPending, domain.PaymentExpired, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	expired := tag.RowsAffected()

	if _, err := db.Exec(ctx,
		`DELETE FROM seat_claims sc
         USING bookings b
         WHERE sc.booking_id = b.id AND b.payment_status = $1`,
		domain.PaymentExpired,
	); err != nil {
		return expired, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return expired, nil
}

// PassengersByTrip returns one entry per distinct passenger holding active
// bookings on the trip, seat sets merged across their bookings, for
// notification fan-out.
func (r *BookingRepo) PassengersByTrip(ctx context.Context, tripID int64) ([]domain.Passenger, error) {
	const op = "postgres.BookingRepo.PassengersByTrip"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT u.email, u.name, b.seat_labels
         FROM bookings b
         JOIN users u ON u.id = b.user_id
         WHERE b.trip_id = $1 AND b.payment_status = ANY($2)
         ORDER BY b.created_at`,
		tripID, statusStrings(domain.ActivePaymentStatuses),
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Passenger
	for rows.Next() {
		var p domain.Passenger
		var labels string
		if err := rows.Scan(&p.Email, &p.Name, &labels); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		p.SeatLabels = splitSeatLabels(labels)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return domain.MergePassengers(out), nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var labels string

	if err := row.Scan(
		&b.ID,
		&b.TripID,
		&b.UserID,
		&labels,
		&b.AmountCents,
		&b.PickupPoint,
		&b.DropPoint,
		&b.PaymentStatus,
		&b.PaymentID,
		&b.CreatedAt,
	); err != nil {
		return nil, err
	}

	b.SeatLabels = splitSeatLabels(labels)

	return &b, nil
}

func splitSeatLabels(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func statusStrings(statuses []domain.PaymentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
