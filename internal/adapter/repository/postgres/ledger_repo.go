package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/caisse/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db DB) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(db)}
}

// CheckConsistency sums how far every session balance moved and the signed
// amounts of all entries.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (sessionDelta, entryTotal decimal.Decimal, err error) {
	result, err := r.queries.CheckLedgerConsistency(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(result.SessionDelta), numericToDecimal(result.EntryTotal), nil
}
