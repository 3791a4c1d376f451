package uow

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	postgres "github.com/ridesched/busgo/internal/repository/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner executes the unit body, then fails the commit with the next
// queued error, mimicking a serialization abort at commit time.
type fakeRunner struct {
	calls    int
	failures []error
}

func (f *fakeRunner) RunTx(
	ctx context.Context,
	opts *pgx.TxOptions,
	fn func(ctx context.Context, tx postgres.DB) error,
) error {
	f.calls++
	if err := fn(ctx, nil); err != nil {
		return err
	}
	if f.calls <= len(f.failures) {
		return f.failures[f.calls-1]
	}
	return nil
}

func serializationFailure() error {
	return fmt.Errorf("commit: %w", &pgconn.PgError{
		Code:    "40001",
		Message: "could not serialize access due to concurrent update",
	})
}

func TestDoRetriesSerializationFailures(t *testing.T) {
	runner := &fakeRunner{failures: []error{
		serializationFailure(),
		serializationFailure(),
	}}
	u := NewUoW(runner)

	ran := 0
	err := u.Do(context.Background(), func(
		ctx context.Context,
		tx postgres.DB,
		after func(AfterCommit),
	) error {
		ran++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, runner.calls)
	assert.Equal(t, 3, ran, "unit body re-runs on every attempt")
}

func TestDoGivesUpAfterBoundedAttempts(t *testing.T) {
	runner := &fakeRunner{failures: []error{
		serializationFailure(),
		serializationFailure(),
		serializationFailure(),
	}}
	u := NewUoW(runner)

	err := u.Do(context.Background(), func(
		ctx context.Context,
		tx postgres.DB,
		after func(AfterCommit),
	) error {
		return nil
	})

	require.Error(t, err)
	var pge *pgconn.PgError
	require.ErrorAs(t, err, &pge)
	assert.Equal(t, "40001", pge.Code)
	assert.Equal(t, 3, runner.calls)
}

func TestDoDoesNotRetryDomainErrors(t *testing.T) {
	sentinel := errors.New("no capacity")
	runner := &fakeRunner{}
	u := NewUoW(runner)

	err := u.Do(context.Background(), func(
		ctx context.Context,
		tx postgres.DB,
		after func(AfterCommit),
	) error {
		return sentinel
	})

	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, runner.calls)
}

func TestDoRunsHooksOnceAfterCommit(t *testing.T) {
	runner := &fakeRunner{failures: []error{serializationFailure()}}
	u := NewUoW(runner)

	hookRuns := 0
	err := u.Do(context.Background(), func(
		ctx context.Context,
		tx postgres.DB,
		after func(AfterCommit),
	) error {
		after(func(ctx context.Context) { hookRuns++ })
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, hookRuns, "hooks registered by aborted attempts never fire")
}

func TestDoSkipsHooksOnFailure(t *testing.T) {
	runner := &fakeRunner{}
	u := NewUoW(runner)

	hookRuns := 0
	err := u.Do(context.Background(), func(
		ctx context.Context,
		tx postgres.DB,
		after func(AfterCommit),
	) error {
		after(func(ctx context.Context) { hookRuns++ })
		return errors.New("boom")
	})

	require.Error(t, err)
	assert.Zero(t, hookRuns)
}
