package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterSession is one opening of the cash register ("caisse").
// ClosingBalance is the running total: it moves with every ledger entry
// recorded against the session and is the amount carried forward as the
// opening balance of the next session.
type RegisterSession struct {
	OpenedAt       time.Time
	ClosedAt       *time.Time
	ID             string
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	Version        int64
	IsOpen         bool
}

// NewRegisterSession opens a session that carries forward the closing
// balance of previous, or starts from zero when there is none.
func NewRegisterSession(id string, previous *RegisterSession, openedAt time.Time) *RegisterSession {
	opening := decimal.Zero
	if previous != nil {
		opening = previous.ClosingBalance
	}

	return &RegisterSession{
		ID:             id,
		OpeningBalance: opening,
		ClosingBalance: opening,
		OpenedAt:       openedAt,
		IsOpen:         true,
	}
}

// ApplyEntry returns the closing balance after the entry is recorded.
func (s *RegisterSession) ApplyEntry(entryType EntryType, amount decimal.Decimal) decimal.Decimal {
	if entryType == EntryTypeWithdrawal {
		return s.ClosingBalance.Sub(amount)
	}
	return s.ClosingBalance.Add(amount)
}

// RevertEntry returns the closing balance after the entry is removed.
func (s *RegisterSession) RevertEntry(entryType EntryType, amount decimal.Decimal) decimal.Decimal {
	if entryType == EntryTypeWithdrawal {
		return s.ClosingBalance.Add(amount)
	}
	return s.ClosingBalance.Sub(amount)
}

// Close marks the session closed at the given time.
func (s *RegisterSession) Close(at time.Time) {
	s.IsOpen = false
	s.ClosedAt = &at
}

// ExpectedClosingBalance computes the balance implied by the opening
// balance and the session's entries.
func (s *RegisterSession) ExpectedClosingBalance(entries []*LedgerEntry) decimal.Decimal {
	balance := s.OpeningBalance
	for _, e := range entries {
		balance = balance.Add(e.SignedAmount())
	}
	return balance
}
