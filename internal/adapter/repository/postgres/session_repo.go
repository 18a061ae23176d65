package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/infrastructure/postgres/generated"
	"github.com/iho/caisse/internal/usecase"
)

// SessionRepository implements usecase.SessionRepository.
type SessionRepository struct {
	queries *generated.Queries
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{queries: generated.New(db)}
}

// Create inserts a session. A second open session violates the
// single-open index and is reported as domain.ErrSessionConflict.
func (r *SessionRepository) Create(ctx context.Context, tx usecase.Transaction, session *domain.RegisterSession) error {
	err := txQueries(tx).CreateSession(ctx, generated.CreateSessionParams{
		ID:             session.ID,
		OpeningBalance: decimalToNumeric(session.OpeningBalance),
		ClosingBalance: decimalToNumeric(session.ClosingBalance),
		OpenedAt:       timeToPgTimestamptz(session.OpenedAt),
		IsOpen:         session.IsOpen,
		Version:        session.Version,
	})
	if code, _ := pgErrorCode(err); code == pgErrUniqueViolation {
		return domain.ErrSessionConflict
	}
	return err
}

// GetByID retrieves a session by ID.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.RegisterSession, error) {
	row, err := r.queries.GetSessionByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrSessionNotFound)
	}
	return rowToSession(row), nil
}

// GetByIDForUpdate retrieves a session by ID with a FOR UPDATE lock.
func (r *SessionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.RegisterSession, error) {
	row, err := txQueries(tx).GetSessionByIDForUpdate(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrSessionNotFound)
	}
	return rowToSession(row), nil
}

// GetActive returns the open session.
func (r *SessionRepository) GetActive(ctx context.Context) (*domain.RegisterSession, error) {
	row, err := r.queries.GetActiveSession(ctx)
	if err != nil {
		return nil, notFound(err, domain.ErrNoOpenSession)
	}
	return rowToSession(row), nil
}

// GetActiveForUpdate locks the open session.
func (r *SessionRepository) GetActiveForUpdate(ctx context.Context, tx usecase.Transaction) (*domain.RegisterSession, error) {
	row, err := txQueries(tx).GetActiveSessionForUpdate(ctx)
	if err != nil {
		return nil, notFound(err, domain.ErrNoOpenSession)
	}
	return rowToSession(row), nil
}

// GetLatest returns the most recently opened session.
func (r *SessionRepository) GetLatest(ctx context.Context) (*domain.RegisterSession, error) {
	row, err := r.queries.GetLatestSession(ctx)
	if err != nil {
		return nil, notFound(err, domain.ErrSessionNotFound)
	}
	return rowToSession(row), nil
}

// UpdateBalance sets the running closing balance and bumps the version.
func (r *SessionRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal) error {
	n, err := txQueries(tx).UpdateSessionBalance(ctx, generated.UpdateSessionBalanceParams{
		ID:             id,
		ClosingBalance: decimalToNumeric(balance),
	})
	return affected(n, err, domain.ErrSessionNotFound)
}

// Close marks a session closed.
func (r *SessionRepository) Close(ctx context.Context, tx usecase.Transaction, id string, closedAt time.Time) error {
	n, err := txQueries(tx).CloseSession(ctx, generated.CloseSessionParams{
		ID:       id,
		ClosedAt: timeToPgTimestamptz(closedAt),
	})
	return affected(n, err, domain.ErrSessionNotFound)
}

// List lists sessions, most recent first.
func (r *SessionRepository) List(ctx context.Context, limit, offset int) ([]*domain.RegisterSession, error) {
	rows, err := r.queries.ListSessions(ctx, generated.ListSessionsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	sessions := make([]*domain.RegisterSession, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, rowToSession(row))
	}

	return sessions, nil
}

func rowToSession(row generated.RegisterSession) *domain.RegisterSession {
	return &domain.RegisterSession{
		ID:             row.ID,
		OpeningBalance: numericToDecimal(row.OpeningBalance),
		ClosingBalance: numericToDecimal(row.ClosingBalance),
		OpenedAt:       row.OpenedAt.Time,
		ClosedAt:       pgTimestamptzToPtr(row.ClosedAt),
		IsOpen:         row.IsOpen,
		Version:        row.Version,
	}
}
