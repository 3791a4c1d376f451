package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ridesched/busgo/internal/domain"
)

type UserRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *UserRepo) With(db DB) *UserRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *UserRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// FindOrCreate returns the user with the given email, creating it with the
// given name and role when absent. The upsert keeps the existing name and
// role on conflict; email is the identity.
func (r *UserRepo) FindOrCreate(
	ctx context.Context,
	email, name string,
	role domain.Role,
) (*domain.User, error) {
	const op = "postgres.UserRepo.FindOrCreate"

	db := r.handle()

	var u domain.User
	err := db.QueryRow(ctx,
		`INSERT INTO users(email, name, role)
         VALUES ($1, $2, $3)
         ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
         RETURNING id, email, name, role`,
		email, name, role,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Role)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &u, nil
}

// Get retrieves a user by ID.
//
// Returns:
//   - error: repository.ErrNotFound if the user does not exist.
func (r *UserRepo) Get(ctx context.Context, id int64) (*domain.User, error) {
	const op = "postgres.UserRepo.Get"

	db := r.handle()

	var u domain.User
	err := db.QueryRow(ctx,
		`SELECT id, email, name, role FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Role)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &u, nil
}
