package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

// SessionResponse represents a register session ("caisse").
type SessionResponse struct {
	OpenedAt       time.Time       `json:"opened_at"`
	ClosedAt       *time.Time      `json:"closed_at,omitempty"`
	ID             string          `json:"id"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Version        int64           `json:"version"`
	IsOpen         bool            `json:"is_open"`
}

// SessionFromDomain converts a domain session to a response.
func SessionFromDomain(s *domain.RegisterSession) *SessionResponse {
	return &SessionResponse{
		ID:             s.ID,
		OpeningBalance: s.OpeningBalance,
		ClosingBalance: s.ClosingBalance,
		OpenedAt:       s.OpenedAt,
		ClosedAt:       s.ClosedAt,
		IsOpen:         s.IsOpen,
		Version:        s.Version,
	}
}

// SessionsFromDomain converts domain sessions to responses.
func SessionsFromDomain(sessions []*domain.RegisterSession) []*SessionResponse {
	return mapSlice(sessions, SessionFromDomain)
}

// ReconciliationResponse is the outcome of reconciling one session.
type ReconciliationResponse struct {
	CheckedAt       time.Time       `json:"checked_at"`
	SessionID       string          `json:"session_id"`
	OpeningBalance  decimal.Decimal `json:"opening_balance"`
	RecordedBalance decimal.Decimal `json:"recorded_balance"`
	ExpectedBalance decimal.Decimal `json:"expected_balance"`
	Difference      decimal.Decimal `json:"difference"`
	Deposits        decimal.Decimal `json:"deposits"`
	Withdrawals     decimal.Decimal `json:"withdrawals"`
	EntryCount      int             `json:"entry_count"`
	IsReconciled    bool            `json:"is_reconciled"`
}

// ReconciliationFromUseCase converts a reconciliation result.
func ReconciliationFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		CheckedAt:       r.LastChecked,
		SessionID:       r.SessionID,
		OpeningBalance:  r.OpeningBalance,
		RecordedBalance: r.RecordedBalance,
		ExpectedBalance: r.ExpectedBalance,
		Difference:      r.Difference,
		Deposits:        r.Deposits,
		Withdrawals:     r.Withdrawals,
		EntryCount:      r.EntryCount,
		IsReconciled:    r.IsReconciled,
	}
}

// ConsistencyResponse summarises a check over every session.
type ConsistencyResponse struct {
	CheckedAt          time.Time                 `json:"checked_at"`
	Discrepancies      []*ReconciliationResponse `json:"discrepancies"`
	TotalSessions      int                       `json:"total_sessions"`
	ReconciledSessions int                       `json:"reconciled_sessions"`
	LedgerConsistent   bool                      `json:"ledger_consistent"`
}

// ConsistencyFromUseCase converts a reconciliation report.
func ConsistencyFromUseCase(r *usecase.ReconciliationReport) *ConsistencyResponse {
	return &ConsistencyResponse{
		CheckedAt:          r.CheckedAt,
		Discrepancies:      mapSlice(r.Discrepancies, ReconciliationFromUseCase),
		TotalSessions:      r.TotalSessions,
		ReconciledSessions: r.ReconciledSessions,
		LedgerConsistent:   r.LedgerConsistent,
	}
}
