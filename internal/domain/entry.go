package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the direction of a ledger entry.
type EntryType string

const (
	EntryTypeDeposit    EntryType = "deposit"
	EntryTypeWithdrawal EntryType = "withdrawal"
)

// Reasons used for entries generated by the payment recorder.
const (
	ReasonOrderPayment      = "order payment"
	ReasonPaymentReversal   = "payment reversal"
	ReasonPaymentAdjustment = "payment adjustment"
)

var entryTypeAliases = map[string]EntryType{
	"deposit":    EntryTypeDeposit,
	"depot":      EntryTypeDeposit,
	"dépôt":      EntryTypeDeposit,
	"withdrawal": EntryTypeWithdrawal,
	"retrait":    EntryTypeWithdrawal,
}

// ParseEntryType accepts the canonical names and the French labels used
// by the register screens.
func ParseEntryType(s string) (EntryType, error) {
	t, ok := entryTypeAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", ErrInvalidEntryType
	}
	return t, nil
}

// IsValid reports whether t is a known entry type.
func (t EntryType) IsValid() bool {
	return t == EntryTypeDeposit || t == EntryTypeWithdrawal
}

// LedgerEntry is a single deposit or withdrawal against a register session.
type LedgerEntry struct {
	OccurredAt time.Time
	PaymentID  *string
	ID         string
	SessionID  string
	Type       EntryType
	Reason     string
	Amount     decimal.Decimal
}

// Validate checks the entry before it is stored.
func (e *LedgerEntry) Validate() error {
	if !e.Type.IsValid() {
		return ErrInvalidEntryType
	}
	return ValidateAmount(e.Amount)
}

// SignedAmount is the entry's effect on the session balance.
func (e *LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Type == EntryTypeWithdrawal {
		return e.Amount.Neg()
	}
	return e.Amount
}

// FromPayment reports whether the payment recorder generated this entry.
func (e *LedgerEntry) FromPayment() bool {
	return e.PaymentID != nil && *e.PaymentID != ""
}
