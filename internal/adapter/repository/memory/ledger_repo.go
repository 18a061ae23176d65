package memory

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	store *Store
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

func (r *LedgerRepository) CheckConsistency(ctx context.Context) (sessionDelta, entryTotal decimal.Decimal, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sessionDelta, entryTotal = decimal.Zero, decimal.Zero
	for _, s := range r.store.sessions.scan(nil) {
		sessionDelta = sessionDelta.Add(s.ClosingBalance.Sub(s.OpeningBalance))
	}
	for _, e := range r.store.entries.scan(nil) {
		entryTotal = entryTotal.Add(e.SignedAmount())
	}
	return sessionDelta, entryTotal, nil
}
