package fleet

import (
	"context"
	"errors"
	"fmt"

	"github.com/ridesched/busgo/internal/domain"
	"github.com/ridesched/busgo/internal/repository"
	postgresrepo "github.com/ridesched/busgo/internal/repository/postgres"
	"github.com/ridesched/busgo/internal/uow"
)

// Service is the operator back office: locations, routes, vehicles and
// seat templates.
type Service struct {
	store *postgresrepo.Store
	uow   *uow.UoW
}

func New(store *postgresrepo.Store) *Service {
	return &Service{
		store: store,
		uow:   uow.NewUoW(store),
	}
}

// EnsureOperator provisions the configured operator identity. Called once
// at startup; replaces implicit operator creation on first back-office use.
func (s *Service) EnsureOperator(ctx context.Context, email, name string) (*domain.User, error) {
	const op = "service.fleet.EnsureOperator"

	u, err := s.store.Users().FindOrCreate(ctx, email, name, domain.RoleOperator)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return u, nil
}

// --- Locations ---

func (s *Service) CreateLocation(ctx context.Context, name, district string) (int64, error) {
	const op = "service.fleet.CreateLocation"

	id, err := s.store.Fleet().CreateLocation(ctx, name, district)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	return id, nil
}

func (s *Service) ListLocations(ctx context.Context) ([]domain.Location, error) {
	const op = "service.fleet.ListLocations"

	out, err := s.store.Fleet().ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) DeleteLocation(ctx context.Context, id int64) error {
	const op = "service.fleet.DeleteLocation"

	if err := s.store.Fleet().DeleteLocation(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return fmt.Errorf("%s:%w", op, ErrLocationNotFound)
		case errors.Is(err, repository.ErrInUse):
			return fmt.Errorf("%s:%w", op, ErrLocationInUse)
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// --- Routes ---

type RouteParams struct {
	StartLocationID int64
	EndLocationID   int64
	DurationMinutes int
	Stops           []string
}

func (s *Service) CreateRoute(ctx context.Context, p RouteParams) (int64, error) {
	const op = "service.fleet.CreateRoute"

	if p.StartLocationID == p.EndLocationID {
		return 0, fmt.Errorf("%s:%w", op, ErrSameEndpoints)
	}

	id, err := s.store.Fleet().CreateRoute(ctx, &domain.Route{
		StartLocationID: p.StartLocationID,
		EndLocationID:   p.EndLocationID,
		DurationMinutes: p.DurationMinutes,
		Stops:           p.Stops,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInUse) {
			return 0, fmt.Errorf("%s:%w", op, ErrLocationNotFound)
		}
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	return id, nil
}

func (s *Service) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	const op = "service.fleet.ListRoutes"

	out, err := s.store.Fleet().ListRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) DeleteRoute(ctx context.Context, id int64) error {
	const op = "service.fleet.DeleteRoute"

	if err := s.store.Fleet().DeleteRoute(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return fmt.Errorf("%s:%w", op, ErrRouteNotFound)
		case errors.Is(err, repository.ErrInUse):
			return fmt.Errorf("%s:%w", op, ErrRouteInUse)
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// --- Vehicles ---

type VehicleParams struct {
	PlateNumber      string
	Type             domain.VehicleType
	Columns          int
	Rows             int
	Amenities        []string
	ScheduleType     domain.ScheduleType
	OperatorName     string
	OperatorWhatsapp string
	OwnerID          int64
	// Layout is optional: when nil, a default grid is generated from
	// Columns and Rows. When TemplateID is set, the template's layout is
	// copied instead.
	Layout     domain.Layout
	TemplateID int64
}

// CreateVehicle registers a vehicle with its seat layout. The layout comes
// from an explicit slot list, a template copy, or the generated default
// grid, in that order of precedence; whichever source, it must pass the
// vehicle-cap validation.
func (s *Service) CreateVehicle(ctx context.Context, p VehicleParams) (int64, error) {
	const op = "service.fleet.CreateVehicle"

	layout := p.Layout

	if layout == nil && p.TemplateID != 0 {
		tpl, err := s.store.Fleet().GetSeatTemplate(ctx, p.TemplateID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return 0, fmt.Errorf("%s:%w", op, ErrTemplateNotFound)
			}
			return 0, fmt.Errorf("%s:%w", op, err)
		}
		layout = tpl.Layout.Clone()
	}

	if layout == nil {
		layout = domain.GenerateDefaultLayout(p.Columns, p.Rows)
	}

	if err := layout.Validate(domain.MaxVehicleSeats); err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	id, err := s.store.Fleet().CreateVehicle(ctx, &domain.Vehicle{
		PlateNumber:      p.PlateNumber,
		Type:             p.Type,
		Columns:          p.Columns,
		Rows:             p.Rows,
		TotalSeats:       layout.SeatCount(),
		Layout:           layout,
		Amenities:        p.Amenities,
		ScheduleType:     p.ScheduleType,
		OperatorName:     p.OperatorName,
		OperatorWhatsapp: p.OperatorWhatsapp,
		OwnerID:          p.OwnerID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return 0, fmt.Errorf("%s:%w", op, ErrPlateConflict)
		}
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	return id, nil
}

func (s *Service) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	const op = "service.fleet.GetVehicle"

	v, err := s.store.Fleet().GetVehicle(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrVehicleNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return v, nil
}

// DeleteVehicle removes a vehicle unless scheduled future trips still
// reference it.
func (s *Service) DeleteVehicle(ctx context.Context, id int64) error {
	const op = "service.fleet.DeleteVehicle"

	return s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		inUse, err := s.store.Trips().With(tx).HasFutureTrips(ctx, id)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
		if inUse {
			return fmt.Errorf("%s:%w", op, ErrVehicleInUse)
		}

		if err := s.store.Fleet().With(tx).DeleteVehicle(ctx, id); err != nil {
			switch {
			case errors.Is(err, repository.ErrNotFound):
				return fmt.Errorf("%s:%w", op, ErrVehicleNotFound)
			case errors.Is(err, repository.ErrInUse):
				return fmt.Errorf("%s:%w", op, ErrVehicleInUse)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		return nil
	})
}

// --- Seat templates ---

type TemplateParams struct {
	ID      int64 // zero for create
	Name    string
	Columns int
	Rows    int
	Layout  domain.Layout
}

// SaveSeatTemplate creates or updates a reusable layout. Templates allow
// up to the template seat cap, which is looser than the vehicle cap.
func (s *Service) SaveSeatTemplate(ctx context.Context, p TemplateParams) (int64, error) {
	const op = "service.fleet.SaveSeatTemplate"

	layout := p.Layout
	if layout == nil {
		layout = domain.GenerateDefaultLayout(p.Columns, p.Rows)
	}

	if err := layout.Validate(domain.MaxTemplateSeats); err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	tpl := &domain.SeatTemplate{
		ID:         p.ID,
		Name:       p.Name,
		Columns:    p.Columns,
		Rows:       p.Rows,
		TotalSeats: layout.SeatCount(),
		Layout:     layout,
	}

	if p.ID != 0 {
		if err := s.store.Fleet().UpdateSeatTemplate(ctx, tpl); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return 0, fmt.Errorf("%s:%w", op, ErrTemplateNotFound)
			}
			return 0, fmt.Errorf("%s:%w", op, err)
		}
		return p.ID, nil
	}

	id, err := s.store.Fleet().CreateSeatTemplate(ctx, tpl)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	return id, nil
}

func (s *Service) ListSeatTemplates(ctx context.Context) ([]domain.SeatTemplate, error) {
	const op = "service.fleet.ListSeatTemplates"

	out, err := s.store.Fleet().ListSeatTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) DeleteSeatTemplate(ctx context.Context, id int64) error {
	const op = "service.fleet.DeleteSeatTemplate"

	if err := s.store.Fleet().DeleteSeatTemplate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s:%w", op, ErrTemplateNotFound)
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}
