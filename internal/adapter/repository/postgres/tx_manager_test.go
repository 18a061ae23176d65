package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/caisse/internal/domain"
)

func TestTxManager_BalanceUpdateCommits(t *testing.T) {
	pool := newMockPool(t)
	ctx := context.Background()

	pool.ExpectBegin()
	pool.ExpectExec("UPDATE register_sessions").
		WithArgs("s1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	pool.ExpectCommit()

	tx, err := NewTxManager(pool).Begin(ctx)
	require.NoError(t, err)
	require.IsType(t, &Tx{}, tx)

	require.NoError(t, NewSessionRepository(pool).UpdateBalance(ctx, tx, "s1", decimal.RequireFromString("140.50")))
	require.NoError(t, tx.Commit(ctx))
	assertExpectations(t, pool)
}

func TestTxManager_BeginFailure(t *testing.T) {
	pool := newMockPool(t)
	refused := errors.New("too many connections")
	pool.ExpectBegin().WillReturnError(refused)

	tx, err := NewTxManager(pool).Begin(context.Background())
	assert.ErrorIs(t, err, refused)
	assert.Nil(t, tx)
	assertExpectations(t, pool)
}

func TestTxManager_RollbackAfterMissingSession(t *testing.T) {
	pool := newMockPool(t)
	ctx := context.Background()

	pool.ExpectBegin()
	pool.ExpectQuery("FROM register_sessions").
		WithArgs("gone").
		WillReturnError(pgx.ErrNoRows)
	pool.ExpectRollback()

	tx, err := NewTxManager(pool).Begin(ctx)
	require.NoError(t, err)

	_, err = NewSessionRepository(pool).GetByIDForUpdate(ctx, tx, "gone")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
	require.NoError(t, tx.Rollback(ctx))
	assertExpectations(t, pool)
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func assertExpectations(t *testing.T, pool pgxmock.PgxPoolIface) {
	t.Helper()
	require.NoError(t, pool.ExpectationsWereMet(), "unmet pgx expectations")
}
