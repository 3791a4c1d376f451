package uow

import (
	"context"

	"github.com/jackc/pgx/v5"

	postgres "github.com/ridesched/busgo/internal/repository/postgres"
)

// AfterCommit is a function that runs after a successful transaction commit.
// Booking and trip services hang cache invalidation, pubsub and passenger
// notifications on these hooks, so best-effort side effects never run for a
// rolled-back unit of work.
type AfterCommit func(ctx context.Context)

// maxAttempts bounds retries of serialization failures. Under serializable
// isolation the loser of a row conflict aborts with SQLSTATE 40001; the
// retry re-reads current state so the caller sees the domain error (no
// capacity, seat taken) instead of the transient abort.
const maxAttempts = 3

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	RunTx(ctx context.Context, opts *pgx.TxOptions, fn func(ctx context.Context, tx postgres.DB) error) error
}

// UoW represents a unit of work.
type UoW struct {
	store TxRunner
}

func NewUoW(store TxRunner) *UoW {
	return &UoW{store: store}
}

// Do runs fn inside the transaction. After a successful commit,
// it executes all after-commit hooks.
func (u *UoW) Do(
	ctx context.Context,
	fn func(ctx context.Context, tx postgres.DB, after func(AfterCommit)) error,
) error {
	return u.DoWithOpts(ctx, nil, fn)
}

// DoWithOpts runs fn inside the transaction with the given options,
// retrying the whole unit on serialization failures. After a successful
// commit, it executes the after-commit hooks registered by that attempt.
func (u *UoW) DoWithOpts(
	ctx context.Context,
	opts *pgx.TxOptions,
	fn func(ctx context.Context, tx postgres.DB, after func(AfterCommit)) error,
) error {
	var err error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		var hooks []AfterCommit

		err = u.store.RunTx(ctx, opts, func(ctx context.Context, tx postgres.DB) error {
			return fn(ctx, tx, func(h AfterCommit) {
				hooks = append(hooks, h)
			})
		})
		if err == nil {
			for _, h := range hooks {
				h(ctx)
			}
			return nil
		}

		if !postgres.IsRetryable(err) {
			return err
		}
	}

	return err
}
