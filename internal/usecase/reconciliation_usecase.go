package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/caisse/internal/domain"
)

// ReconciliationUseCase checks register sessions against their entries.
type ReconciliationUseCase struct {
	sessionRepo SessionRepository
	entryRepo   EntryRepository
	ledger      *LedgerUseCase
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	sessionRepo SessionRepository,
	entryRepo EntryRepository,
	ledgerRepo LedgerRepository,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		sessionRepo: sessionRepo,
		entryRepo:   entryRepo,
		ledger:      NewLedgerUseCase(ledgerRepo),
	}
}

// ReconciliationResult represents the result of reconciling one session
type ReconciliationResult struct {
	LastChecked     time.Time
	SessionID       string
	OpeningBalance  decimal.Decimal
	RecordedBalance decimal.Decimal
	ExpectedBalance decimal.Decimal
	Difference      decimal.Decimal
	Deposits        decimal.Decimal
	Withdrawals     decimal.Decimal
	EntryCount      int
	IsReconciled    bool
}

// ReconcileSession recomputes a session's closing balance from its entries.
func (uc *ReconciliationUseCase) ReconcileSession(ctx context.Context, sessionID string) (*ReconciliationResult, error) {
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return reconcile(session, entries), nil
}

func reconcile(session *domain.RegisterSession, entries []*domain.LedgerEntry) *ReconciliationResult {
	deposits, withdrawals := decimal.Zero, decimal.Zero
	for _, e := range entries {
		if e.Type == domain.EntryTypeWithdrawal {
			withdrawals = withdrawals.Add(e.Amount)
		} else {
			deposits = deposits.Add(e.Amount)
		}
	}

	expected := session.ExpectedClosingBalance(entries)
	diff := session.ClosingBalance.Sub(expected)

	return &ReconciliationResult{
		SessionID:       session.ID,
		OpeningBalance:  session.OpeningBalance,
		RecordedBalance: session.ClosingBalance,
		ExpectedBalance: expected,
		Difference:      diff,
		Deposits:        deposits,
		Withdrawals:     withdrawals,
		EntryCount:      len(entries),
		IsReconciled:    diff.IsZero(),
		LastChecked:     time.Now().UTC(),
	}
}

// ReconcileAllSessions reconciles every session, most recent first
func (uc *ReconciliationUseCase) ReconcileAllSessions(ctx context.Context) ([]*ReconciliationResult, error) {
	const pageSize = 500

	var results []*ReconciliationResult
	for offset := 0; ; offset += pageSize {
		sessions, err := uc.sessionRepo.List(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}

		for _, session := range sessions {
			entries, err := uc.entryRepo.ListBySession(ctx, session.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to reconcile session %s: %w", session.ID, err)
			}
			results = append(results, reconcile(session, entries))
		}

		if len(sessions) < pageSize {
			return results, nil
		}
	}
}

// CheckLedgerConsistency runs the ledger-wide sum check
func (uc *ReconciliationUseCase) CheckLedgerConsistency(ctx context.Context) error {
	_, err := uc.ledger.CheckConsistency(ctx)
	return err
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	CheckedAt          time.Time
	Discrepancies      []*ReconciliationResult
	TotalSessions      int
	ReconciledSessions int
	LedgerConsistent   bool
}

// GenerateReconciliationReport generates a report over every session
func (uc *ReconciliationUseCase) GenerateReconciliationReport(ctx context.Context) (*ReconciliationReport, error) {
	results, err := uc.ReconcileAllSessions(ctx)
	if err != nil {
		return nil, err
	}

	ledgerErr := uc.CheckLedgerConsistency(ctx)
	if ledgerErr != nil && !errors.Is(ledgerErr, ErrInconsistentLedger) {
		return nil, ledgerErr
	}

	report := &ReconciliationReport{
		TotalSessions:    len(results),
		Discrepancies:    make([]*ReconciliationResult, 0),
		LedgerConsistent: ledgerErr == nil,
		CheckedAt:        time.Now().UTC(),
	}

	for _, result := range results {
		if result.IsReconciled {
			report.ReconciledSessions++
		} else {
			report.Discrepancies = append(report.Discrepancies, result)
		}
	}

	return report, nil
}
