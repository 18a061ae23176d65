package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

// SessionRepository implements usecase.SessionRepository.
type SessionRepository struct {
	store *Store
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(store *Store) *SessionRepository {
	return &SessionRepository{store: store}
}

// Create inserts a session. Only one session may be open.
func (r *SessionRepository) Create(ctx context.Context, tx usecase.Transaction, session *domain.RegisterSession) error {
	return r.store.write(tx, func() (func(), error) {
		if session.IsOpen && r.openLocked() != nil {
			return nil, domain.ErrSessionConflict
		}
		return r.store.sessions.put(session.ID, *cloneSession(*session)), nil
	})
}

func (r *SessionRepository) openLocked() *sessionRow {
	for _, s := range r.store.sessions.scan(func(s sessionRow) bool { return s.IsOpen }) {
		return &s
	}
	return nil
}

// GetByID retrieves a session by ID.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.RegisterSession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.sessions.get(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return cloneSession(s), nil
}

// GetByIDForUpdate retrieves a session inside a transaction.
func (r *SessionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.RegisterSession, error) {
	return r.GetByID(ctx, id)
}

// GetActive returns the open session.
func (r *SessionRepository) GetActive(ctx context.Context) (*domain.RegisterSession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s := r.openLocked()
	if s == nil {
		return nil, domain.ErrNoOpenSession
	}
	return cloneSession(*s), nil
}

// GetActiveForUpdate returns the open session inside a transaction.
func (r *SessionRepository) GetActiveForUpdate(ctx context.Context, tx usecase.Transaction) (*domain.RegisterSession, error) {
	return r.GetActive(ctx)
}

// GetLatest returns the most recently opened session.
func (r *SessionRepository) GetLatest(ctx context.Context) (*domain.RegisterSession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var latest *sessionRow
	for _, s := range r.store.sessions.scan(nil) {
		if latest == nil || !s.OpenedAt.Before(latest.OpenedAt) {
			latest = &s
		}
	}
	if latest == nil {
		return nil, domain.ErrSessionNotFound
	}
	return cloneSession(*latest), nil
}

// UpdateBalance sets the running closing balance.
func (r *SessionRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal) error {
	return r.store.write(tx, func() (func(), error) {
		s, ok := r.store.sessions.get(id)
		if !ok {
			return nil, domain.ErrSessionNotFound
		}
		s.ClosingBalance = balance
		s.Version++
		return r.store.sessions.put(id, s), nil
	})
}

// Close marks a session closed.
func (r *SessionRepository) Close(ctx context.Context, tx usecase.Transaction, id string, closedAt time.Time) error {
	return r.store.write(tx, func() (func(), error) {
		s, ok := r.store.sessions.get(id)
		if !ok {
			return nil, domain.ErrSessionNotFound
		}
		s.IsOpen = false
		s.ClosedAt = ptr(closedAt)
		s.Version++
		return r.store.sessions.put(id, s), nil
	})
}

// List lists sessions, most recent first.
func (r *SessionRepository) List(ctx context.Context, limit, offset int) ([]*domain.RegisterSession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows := page(reversed(r.store.sessions.scan(nil)), limit, offset)
	out := make([]*domain.RegisterSession, 0, len(rows))
	for _, s := range rows {
		out = append(out, cloneSession(s))
	}
	return out, nil
}
