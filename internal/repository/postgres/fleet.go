package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ridesched/busgo/internal/domain"
	"github.com/ridesched/busgo/internal/repository"
)

type FleetRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *FleetRepo) With(db DB) *FleetRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *FleetRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// --- Locations ---

func (r *FleetRepo) CreateLocation(ctx context.Context, name, district string) (int64, error) {
	const op = "postgres.FleetRepo.CreateLocation"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO locations(name, district) VALUES ($1, $2) RETURNING id`,
		name, district,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

func (r *FleetRepo) ListLocations(ctx context.Context) ([]domain.Location, error) {
	const op = "postgres.FleetRepo.ListLocations"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, name, district FROM locations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Location
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.District); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// DeleteLocation removes a location.
//
// Returns:
//   - error: repository.ErrInUse if routes still reference it.
//   - error: repository.ErrNotFound if the location does not exist.
func (r *FleetRepo) DeleteLocation(ctx context.Context, id int64) error {
	const op = "postgres.FleetRepo.DeleteLocation"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// --- Routes ---

func (r *FleetRepo) CreateRoute(ctx context.Context, rt *domain.Route) (int64, error) {
	const op = "postgres.FleetRepo.CreateRoute"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO routes(start_location_id, end_location_id, duration_minutes, stops)
         VALUES ($1, $2, $3, $4)
         RETURNING id`,
		rt.StartLocationID, rt.EndLocationID, rt.DurationMinutes,
		strings.Join(rt.Stops, ","),
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

func (r *FleetRepo) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	const op = "postgres.FleetRepo.GetRoute"

	db := r.handle()

	var rt domain.Route
	var stops string
	err := db.QueryRow(ctx,
		`SELECT id, start_location_id, end_location_id, duration_minutes, stops
         FROM routes WHERE id = $1`,
		id,
	).Scan(&rt.ID, &rt.StartLocationID, &rt.EndLocationID, &rt.DurationMinutes, &stops)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	rt.Stops = splitStops(stops)

	return &rt, nil
}

func (r *FleetRepo) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	const op = "postgres.FleetRepo.ListRoutes"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, start_location_id, end_location_id, duration_minutes, stops
         FROM routes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Route
	for rows.Next() {
		var rt domain.Route
		var stops string
		if err := rows.Scan(
			&rt.ID, &rt.StartLocationID, &rt.EndLocationID,
			&rt.DurationMinutes, &stops,
		); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		rt.Stops = splitStops(stops)
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// DeleteRoute removes a route unless trips still reference it.
//
// Returns:
//   - error: repository.ErrInUse if trips reference the route.
//   - error: repository.ErrNotFound if the route does not exist.
func (r *FleetRepo) DeleteRoute(ctx context.Context, id int64) error {
	const op = "postgres.FleetRepo.DeleteRoute"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// --- Vehicles ---

func (r *FleetRepo) CreateVehicle(ctx context.Context, v *domain.Vehicle) (int64, error) {
	const op = "postgres.FleetRepo.CreateVehicle"

	db := r.handle()

	layout, err := domain.MarshalLayout(v.Layout)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO vehicles(plate_number, type, columns, rows, total_seats,
                              seat_layout, amenities, schedule_type,
                              operator_name, operator_whatsapp, owner_id)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
         RETURNING id`,
		v.PlateNumber, v.Type, v.Columns, v.Rows, v.TotalSeats,
		layout, strings.Join(v.Amenities, ","), v.ScheduleType,
		v.OperatorName, v.OperatorWhatsapp, v.OwnerID,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

func (r *FleetRepo) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	const op = "postgres.FleetRepo.GetVehicle"

	db := r.handle()

	var v domain.Vehicle
	var layout []byte
	var amenities string
	err := db.QueryRow(ctx,
		`SELECT id, plate_number, type, columns, rows, total_seats, seat_layout,
                amenities, schedule_type, operator_name, operator_whatsapp, owner_id
         FROM vehicles WHERE id = $1`,
		id,
	).Scan(
		&v.ID, &v.PlateNumber, &v.Type, &v.Columns, &v.Rows, &v.TotalSeats,
		&layout, &amenities, &v.ScheduleType, &v.OperatorName,
		&v.OperatorWhatsapp, &v.OwnerID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if v.Layout, err = domain.UnmarshalLayout(layout); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	v.Amenities = splitStops(amenities)

	return &v, nil
}

// DeleteVehicle removes a vehicle.
//
// Returns:
//   - error: repository.ErrNotFound if the vehicle does not exist.
func (r *FleetRepo) DeleteVehicle(ctx context.Context, id int64) error {
	const op = "postgres.FleetRepo.DeleteVehicle"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// --- Seat templates ---

func (r *FleetRepo) CreateSeatTemplate(ctx context.Context, t *domain.SeatTemplate) (int64, error) {
	const op = "postgres.FleetRepo.CreateSeatTemplate"

	db := r.handle()

	layout, err := domain.MarshalLayout(t.Layout)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO seat_templates(name, columns, rows, total_seats, seat_layout)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING id`,
		t.Name, t.Columns, t.Rows, t.TotalSeats, layout,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

func (r *FleetRepo) UpdateSeatTemplate(ctx context.Context, t *domain.SeatTemplate) error {
	const op = "postgres.FleetRepo.UpdateSeatTemplate"

	db := r.handle()

	layout, err := domain.MarshalLayout(t.Layout)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	tag, err := db.Exec(ctx,
		`UPDATE seat_templates
         SET name = $2, columns = $3, rows = $4, total_seats = $5, seat_layout = $6
         WHERE id = $1`,
		t.ID, t.Name, t.Columns, t.Rows, t.TotalSeats, layout,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *FleetRepo) GetSeatTemplate(ctx context.Context, id int64) (*domain.SeatTemplate, error) {
	const op = "postgres.FleetRepo.GetSeatTemplate"

	db := r.handle()

	var t domain.SeatTemplate
	var layout []byte
	err := db.QueryRow(ctx,
		`SELECT id, name, columns, rows, total_seats, seat_layout
         FROM seat_templates WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.Name, &t.Columns, &t.Rows, &t.TotalSeats, &layout)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if t.Layout, err = domain.UnmarshalLayout(layout); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &t, nil
}

func (r *FleetRepo) ListSeatTemplates(ctx context.Context) ([]domain.SeatTemplate, error) {
	const op = "postgres.FleetRepo.ListSeatTemplates"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, name, columns, rows, total_seats, seat_layout
         FROM seat_templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.SeatTemplate
	for rows.Next() {
		var t domain.SeatTemplate
		var layout []byte
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Columns, &t.Rows, &t.TotalSeats, &layout,
		); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		if t.Layout, err = domain.UnmarshalLayout(layout); err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (r *FleetRepo) DeleteSeatTemplate(ctx context.Context, id int64) error {
	const op = "postgres.FleetRepo.DeleteSeatTemplate"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM seat_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

func splitStops(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
