package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

// CreateEntryRequest is the body of POST /transactions.
type CreateEntryRequest struct {
	Type    string          `json:"type"`
	Motif   string          `json:"motif"`
	Montant decimal.Decimal `json:"montant"`
}

// ToUseCaseInput validates the request and converts it to use case input.
func (r *CreateEntryRequest) ToUseCaseInput() (usecase.RecordEntryInput, error) {
	entryType, err := domain.ParseEntryType(r.Type)
	if err != nil {
		return usecase.RecordEntryInput{}, err
	}
	if err := domain.ValidateAmount(r.Montant); err != nil {
		return usecase.RecordEntryInput{}, err
	}

	return usecase.RecordEntryInput{
		Type:   entryType,
		Amount: r.Montant,
		Reason: strings.TrimSpace(r.Motif),
	}, nil
}

// EntryResponse represents a ledger entry.
type EntryResponse struct {
	OccurredAt time.Time        `json:"occurred_at"`
	PaymentID  *string          `json:"payment_id,omitempty"`
	ID         string           `json:"id"`
	SessionID  string           `json:"caisse_id"`
	Type       domain.EntryType `json:"type"`
	Motif      string           `json:"motif"`
	Montant    decimal.Decimal  `json:"montant"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:         e.ID,
		SessionID:  e.SessionID,
		Type:       e.Type,
		Montant:    e.Amount,
		Motif:      e.Reason,
		PaymentID:  e.PaymentID,
		OccurredAt: e.OccurredAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	return mapSlice(entries, EntryFromDomain)
}
