package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/caisse/internal/domain"
)

// runInTx runs fn inside a transaction bounded by DefaultTransactionTimeout.
// The whole attempt is re-run when the retrier classifies the error as
// transient, so fn must not leak state between attempts.
func runInTx(ctx context.Context, txManager TransactionManager, retrier Retrier, fn func(txCtx context.Context, tx Transaction) error) error {
	attempt := func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		if err := fn(txCtx, tx); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	}

	if retrier == nil {
		return attempt()
	}
	return retrier.Retry(ctx, attempt)
}

// cashDrawer posts ledger entries against a locked register session and
// keeps its running balance in step.
type cashDrawer struct {
	sessionRepo SessionRepository
	entryRepo   EntryRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
}

func (d cashDrawer) post(
	ctx context.Context,
	tx Transaction,
	session *domain.RegisterSession,
	entryType domain.EntryType,
	amount decimal.Decimal,
	reason string,
	paymentID *string,
	at time.Time,
) (*domain.LedgerEntry, error) {
	entry := &domain.LedgerEntry{
		ID:         d.idGen.Generate(),
		SessionID:  session.ID,
		Type:       entryType,
		Amount:     amount,
		Reason:     reason,
		PaymentID:  paymentID,
		OccurredAt: at,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := d.entryRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	newBalance := session.ApplyEntry(entryType, amount)
	if err := d.sessionRepo.UpdateBalance(ctx, tx, session.ID, newBalance); err != nil {
		return nil, err
	}
	session.ClosingBalance = newBalance
	session.Version++

	event := newOutboxEvent(d.idGen, domain.AggregateTypeEntry, entry.ID, domain.EventTypeEntryRecorded, at, map[string]any{
		"entry_id":   entry.ID,
		"session_id": session.ID,
		"type":       string(entry.Type),
		"amount":     entry.Amount.String(),
		"reason":     entry.Reason,
		"balance":    newBalance.String(),
	})
	if err := d.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	return entry, nil
}

func newOutboxEvent(idGen IDGenerator, aggregateType, aggregateID, eventType string, at time.Time, payload map[string]any) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:            idGen.Generate(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     at,
		Published:     false,
	}
}
