package dbretry

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/lab-booking-service/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(driver.ErrBadConn))
	assert.True(t, IsTransient(fmt.Errorf("wrapped: %w", driver.ErrBadConn)))
	assert.True(t, IsTransient(&pq.Error{Code: "08006"}))
	assert.True(t, IsTransient(&pq.Error{Code: "57P01"}))
	assert.False(t, IsTransient(&pq.Error{Code: "23505"}))
	assert.False(t, IsTransient(sql.ErrNoRows))
	assert.False(t, IsTransient(nil))
}

func TestDoRetriesTransientErrors(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < DefaultAttempts {
			return driver.ErrBadConn
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, DefaultAttempts, calls)
}

func TestDoGivesUpAfterAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		calls++
		return driver.ErrBadConn
	})

	require.Error(t, err)
	assert.Equal(t, DefaultAttempts, calls)
}

func TestDoDoesNotRetryPermanentErrors(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		calls++
		return sql.ErrNoRows
	})

	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.Equal(t, 1, calls)
}

func TestDoInsideTransactionRunsOnce(t *testing.T) {
	ctx := dbmetrics.WithTx(context.Background(), fakeTx{})
	calls := 0
	err := Do(ctx, func(ctx context.Context) error {
		calls++
		return driver.ErrBadConn
	})

	require.ErrorIs(t, err, driver.ErrBadConn)
	assert.Equal(t, 1, calls)
}
