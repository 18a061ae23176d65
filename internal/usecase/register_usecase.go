package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/caisse/internal/domain"
)

// RegisterUseCase manages the cash register session lifecycle.
type RegisterUseCase struct {
	txManager   TransactionManager
	sessionRepo SessionRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	retrier     Retrier
	metrics     MetricsRecorder
	logger      zerolog.Logger
}

// NewRegisterUseCase creates a new RegisterUseCase.
func NewRegisterUseCase(
	txManager TransactionManager,
	sessionRepo SessionRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	logger zerolog.Logger,
) *RegisterUseCase {
	return &RegisterUseCase{
		txManager:   txManager,
		sessionRepo: sessionRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		retrier:     retrier,
		metrics:     noopMetrics{},
		logger:      logger,
	}
}

// SetMetrics attaches a metrics recorder.
func (uc *RegisterUseCase) SetMetrics(m MetricsRecorder) {
	if m != nil {
		uc.metrics = m
	}
}

// OpenSession opens a new register session. A session that is still open
// is closed first, and the new one starts from the latest closing balance.
func (uc *RegisterUseCase) OpenSession(ctx context.Context) (*domain.RegisterSession, error) {
	var (
		session    *domain.RegisterSession
		autoClosed *domain.RegisterSession
	)

	err := runInTx(ctx, uc.txManager, uc.retrier, func(txCtx context.Context, tx Transaction) error {
		now := time.Now().UTC()
		autoClosed = nil

		previous, err := uc.sessionRepo.GetActiveForUpdate(txCtx, tx)
		switch {
		case err == nil:
			if err := uc.closeLocked(txCtx, tx, previous, now); err != nil {
				return err
			}
			autoClosed = previous
		case errors.Is(err, domain.ErrNoOpenSession):
			previous, err = uc.sessionRepo.GetLatest(txCtx)
			if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
				return err
			}
		default:
			return err
		}

		session = domain.NewRegisterSession(uc.idGen.Generate(), previous, now)
		if err := uc.sessionRepo.Create(txCtx, tx, session); err != nil {
			return err
		}

		return uc.outboxRepo.Create(txCtx, tx, uc.sessionEvent(session, domain.EventTypeRegisterOpened, now))
	})
	if err != nil {
		return nil, err
	}

	if autoClosed != nil {
		uc.metrics.SessionClosed()
		uc.logger.Info().
			Str("session_id", autoClosed.ID).
			Str("closing_balance", autoClosed.ClosingBalance.String()).
			Msg("register session auto-closed")
	}
	uc.metrics.SessionOpened()
	uc.metrics.RegisterBalance(session.ClosingBalance)

	uc.logger.Info().
		Str("session_id", session.ID).
		Str("opening_balance", session.OpeningBalance.String()).
		Msg("register session opened")

	return session, nil
}

// CloseSession closes the open session.
func (uc *RegisterUseCase) CloseSession(ctx context.Context) (*domain.RegisterSession, error) {
	var session *domain.RegisterSession

	err := runInTx(ctx, uc.txManager, uc.retrier, func(txCtx context.Context, tx Transaction) error {
		var err error
		session, err = uc.sessionRepo.GetActiveForUpdate(txCtx, tx)
		if err != nil {
			return err
		}

		return uc.closeLocked(txCtx, tx, session, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.SessionClosed()
	uc.logger.Info().
		Str("session_id", session.ID).
		Str("closing_balance", session.ClosingBalance.String()).
		Msg("register session closed")

	return session, nil
}

func (uc *RegisterUseCase) closeLocked(ctx context.Context, tx Transaction, session *domain.RegisterSession, now time.Time) error {
	session.Close(now)
	if err := uc.sessionRepo.Close(ctx, tx, session.ID, now); err != nil {
		return err
	}

	return uc.outboxRepo.Create(ctx, tx, uc.sessionEvent(session, domain.EventTypeRegisterClosed, now))
}

func (uc *RegisterUseCase) sessionEvent(session *domain.RegisterSession, eventType string, at time.Time) *domain.OutboxEvent {
	return newOutboxEvent(uc.idGen, domain.AggregateTypeRegister, session.ID, eventType, at, map[string]any{
		"session_id":      session.ID,
		"opening_balance": session.OpeningBalance.String(),
		"closing_balance": session.ClosingBalance.String(),
		"event_at":        at.Format(time.RFC3339),
	})
}

// GetActiveSession returns the open session or domain.ErrNoOpenSession.
func (uc *RegisterUseCase) GetActiveSession(ctx context.Context) (*domain.RegisterSession, error) {
	return uc.sessionRepo.GetActive(ctx)
}

// GetLatestSession returns the most recently opened session.
func (uc *RegisterUseCase) GetLatestSession(ctx context.Context) (*domain.RegisterSession, error) {
	return uc.sessionRepo.GetLatest(ctx)
}

// GetSession retrieves a session by ID.
func (uc *RegisterUseCase) GetSession(ctx context.Context, id string) (*domain.RegisterSession, error) {
	return uc.sessionRepo.GetByID(ctx, id)
}

// ListSessions lists sessions, most recent first.
func (uc *RegisterUseCase) ListSessions(ctx context.Context, limit, offset int) ([]*domain.RegisterSession, error) {
	limit, offset = clampLimit(limit, offset)
	return uc.sessionRepo.List(ctx, limit, offset)
}
