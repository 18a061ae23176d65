package memory

import (
	"context"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	store *Store
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(store *Store) *EntryRepository {
	return &EntryRepository{store: store}
}

// Create inserts an entry.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	return r.store.write(tx, func() (func(), error) {
		if _, ok := r.store.sessions.get(entry.SessionID); !ok {
			return nil, domain.ErrSessionNotFound
		}
		return r.store.entries.put(entry.ID, *cloneEntry(*entry)), nil
	})
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.entries.get(id)
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	return cloneEntry(e), nil
}

// Delete removes an entry.
func (r *EntryRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	return r.store.write(tx, func() (func(), error) {
		if _, ok := r.store.entries.get(id); !ok {
			return nil, domain.ErrEntryNotFound
		}
		return r.store.entries.remove(id), nil
	})
}

// List lists entries, most recent first.
func (r *EntryRepository) List(ctx context.Context, limit, offset int) ([]*domain.LedgerEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return cloneEntries(page(reversed(r.store.entries.scan(nil)), limit, offset)), nil
}

// ListBySession lists a session's entries in creation order.
func (r *EntryRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.LedgerEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return cloneEntries(r.store.entries.scan(func(e entryRow) bool { return e.SessionID == sessionID })), nil
}

func cloneEntries(rows []entryRow) []*domain.LedgerEntry {
	out := make([]*domain.LedgerEntry, 0, len(rows))
	for _, e := range rows {
		out = append(out, cloneEntry(e))
	}
	return out
}
