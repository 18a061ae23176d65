package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/caisse/internal/domain"
)

func TestTx_RollbackRevertsWrites(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	txm := NewTxManager(store)
	sessions := NewSessionRepository(store)
	entries := NewEntryRepository(store)

	now := time.Now()
	require.NoError(t, sessions.Create(ctx, nil, domain.NewRegisterSession("s1", nil, now)))

	tx, err := txm.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, entries.Create(ctx, tx, &domain.LedgerEntry{
		ID: "e1", SessionID: "s1", Type: domain.EntryTypeDeposit,
		Amount: decimal.NewFromInt(10), OccurredAt: now,
	}))
	require.NoError(t, sessions.UpdateBalance(ctx, tx, "s1", decimal.NewFromInt(10)))
	require.NoError(t, tx.Rollback(ctx))

	_, err = entries.GetByID(ctx, "e1")
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)

	s, err := sessions.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, s.ClosingBalance.IsZero())
	assert.Equal(t, int64(0), s.Version)
}

func TestTx_CommitKeepsWritesAndReleases(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	txm := NewTxManager(store)
	sessions := NewSessionRepository(store)

	tx, err := txm.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, sessions.Create(ctx, tx, domain.NewRegisterSession("s1", nil, time.Now())))
	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, tx.Rollback(ctx))
	assert.ErrorIs(t, tx.Commit(ctx), ErrTxDone)

	_, err = sessions.GetActive(ctx)
	require.NoError(t, err)

	// the semaphore was released
	tx2, err := txm.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx2.Rollback(ctx))
}

func TestTxManager_BeginHonoursContext(t *testing.T) {
	store := NewStore()
	txm := NewTxManager(store)

	tx, err := txm.Begin(context.Background())
	require.NoError(t, err)
	defer tx.Rollback(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = txm.Begin(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTable_RemoveRestoresPosition(t *testing.T) {
	tbl := newTable[int]()
	tbl.put("a", 1)
	tbl.put("b", 2)
	tbl.put("c", 3)

	undo := tbl.remove("b")
	assert.Equal(t, []int{1, 3}, tbl.scan(nil))
	undo()
	assert.Equal(t, []int{1, 2, 3}, tbl.scan(nil))
}

func TestPage(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2}, page(rows, 2, 0))
	assert.Equal(t, []int{5}, page(rows, 2, 4))
	assert.Empty(t, page(rows, 2, 9))
	assert.Equal(t, rows, page(rows, 0, 0))
}
