package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/caisse/internal/domain"
)

// EntryUseCase records manual deposits and withdrawals on the register.
type EntryUseCase struct {
	txManager   TransactionManager
	sessionRepo SessionRepository
	entryRepo   EntryRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	retrier     Retrier
	metrics     MetricsRecorder
	logger      zerolog.Logger
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(
	txManager TransactionManager,
	sessionRepo SessionRepository,
	entryRepo EntryRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	logger zerolog.Logger,
) *EntryUseCase {
	return &EntryUseCase{
		txManager:   txManager,
		sessionRepo: sessionRepo,
		entryRepo:   entryRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		retrier:     retrier,
		metrics:     noopMetrics{},
		logger:      logger,
	}
}

// SetMetrics attaches a metrics recorder.
func (uc *EntryUseCase) SetMetrics(m MetricsRecorder) {
	if m != nil {
		uc.metrics = m
	}
}

func (uc *EntryUseCase) drawer() cashDrawer {
	return cashDrawer{
		sessionRepo: uc.sessionRepo,
		entryRepo:   uc.entryRepo,
		outboxRepo:  uc.outboxRepo,
		idGen:       uc.idGen,
	}
}

// RecordEntryInput represents input for recording a ledger entry.
type RecordEntryInput struct {
	Type   domain.EntryType
	Reason string
	Amount decimal.Decimal
}

// RecordEntry records a deposit or withdrawal against the open session.
func (uc *EntryUseCase) RecordEntry(ctx context.Context, input RecordEntryInput) (*domain.LedgerEntry, error) {
	if !input.Type.IsValid() {
		return nil, domain.ErrInvalidEntryType
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(input.Reason)
	if err := domain.ValidateReason(reason); err != nil {
		return nil, err
	}

	var (
		entry   *domain.LedgerEntry
		balance decimal.Decimal
	)

	err := runInTx(ctx, uc.txManager, uc.retrier, func(txCtx context.Context, tx Transaction) error {
		session, err := uc.sessionRepo.GetActiveForUpdate(txCtx, tx)
		if err != nil {
			return err
		}

		entry, err = uc.drawer().post(txCtx, tx, session, input.Type, input.Amount, reason, nil, time.Now().UTC())
		if err != nil {
			return err
		}
		balance = session.ClosingBalance

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.EntryRecorded(entry.Type)
	uc.metrics.RegisterBalance(balance)
	uc.logger.Info().
		Str("entry_id", entry.ID).
		Str("session_id", entry.SessionID).
		Str("type", string(entry.Type)).
		Str("amount", entry.Amount.String()).
		Str("balance", balance.String()).
		Msg("ledger entry recorded")

	return entry, nil
}

// DeleteEntry removes a manual entry and reverses its effect on the
// session it was recorded against.
func (uc *EntryUseCase) DeleteEntry(ctx context.Context, id string) error {
	entry, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.FromPayment() {
		return domain.ErrEntryLinkedToPayment
	}

	var balance decimal.Decimal

	err = runInTx(ctx, uc.txManager, uc.retrier, func(txCtx context.Context, tx Transaction) error {
		session, err := uc.sessionRepo.GetByIDForUpdate(txCtx, tx, entry.SessionID)
		if err != nil {
			return err
		}

		balance = session.RevertEntry(entry.Type, entry.Amount)

		if err := uc.entryRepo.Delete(txCtx, tx, entry.ID); err != nil {
			return err
		}
		if err := uc.sessionRepo.UpdateBalance(txCtx, tx, session.ID, balance); err != nil {
			return err
		}

		now := time.Now().UTC()
		return uc.outboxRepo.Create(txCtx, tx, newOutboxEvent(uc.idGen, domain.AggregateTypeEntry, entry.ID, domain.EventTypeEntryDeleted, now, map[string]any{
			"entry_id":   entry.ID,
			"session_id": session.ID,
			"type":       string(entry.Type),
			"amount":     entry.Amount.String(),
			"reason":     entry.Reason,
			"balance":    balance.String(),
		}))
	})
	if err != nil {
		return err
	}

	uc.logger.Info().
		Str("entry_id", entry.ID).
		Str("session_id", entry.SessionID).
		Str("balance", balance.String()).
		Msg("ledger entry deleted")

	return nil
}

// GetEntry retrieves an entry by ID.
func (uc *EntryUseCase) GetEntry(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// ListEntries lists entries, most recent first.
func (uc *EntryUseCase) ListEntries(ctx context.Context, limit, offset int) ([]*domain.LedgerEntry, error) {
	limit, offset = clampLimit(limit, offset)
	return uc.entryRepo.List(ctx, limit, offset)
}

// ListEntriesForSession lists a session's entries in the order they were recorded.
func (uc *EntryUseCase) ListEntriesForSession(ctx context.Context, sessionID string) ([]*domain.LedgerEntry, error) {
	if _, err := uc.sessionRepo.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return uc.entryRepo.ListBySession(ctx, sessionID)
}
