package usecase

import (
	"context"
	"errors"
)

var (
	// ErrInconsistentLedger is returned when session balances do not match their entries.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: session balances do not match entries")
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// CheckConsistency verifies that every balance movement is backed by an entry.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (bool, error) {
	sessionDelta, entryTotal, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return false, err
	}

	if !sessionDelta.Equal(entryTotal) {
		return false, ErrInconsistentLedger
	}

	return true, nil
}
