package memory

import (
	"context"
	"time"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

// OutboxRepository implements usecase.OutboxRepository.
type OutboxRepository struct {
	store *Store
}

// NewOutboxRepository creates a new OutboxRepository.
func NewOutboxRepository(store *Store) *OutboxRepository {
	return &OutboxRepository{store: store}
}

func (r *OutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	return r.store.write(tx, func() (func(), error) {
		return r.store.outbox.put(event.ID, *cloneOutbox(*event)), nil
	})
}

// GetUnpublished returns the oldest unpublished events.
func (r *OutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows := page(r.store.outbox.scan(func(e outboxRow) bool { return !e.Published }), limit, 0)
	out := make([]*domain.OutboxEvent, 0, len(rows))
	for _, e := range rows {
		out = append(out, cloneOutbox(e))
	}
	return out, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	return r.store.write(nil, func() (func(), error) {
		e, ok := r.store.outbox.get(id)
		if !ok {
			return nil, nil
		}
		e.Published = true
		e.PublishedAt = ptr(publishedAt)
		return r.store.outbox.put(id, e), nil
	})
}

// DeletePublished drops events published before the cutoff.
func (r *OutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	return r.store.write(nil, func() (func(), error) {
		old := r.store.outbox.scan(func(e outboxRow) bool {
			return e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before)
		})
		for _, e := range old {
			r.store.outbox.remove(e.ID)
		}
		return nil, nil
	})
}
