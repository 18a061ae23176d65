package memory

import (
	"context"
	"time"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

// OrderRepository implements usecase.OrderRepository.
type OrderRepository struct {
	store *Store
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// Create inserts an order with its items.
func (r *OrderRepository) Create(ctx context.Context, tx usecase.Transaction, order *domain.Order) error {
	return r.store.write(tx, func() (func(), error) {
		if _, ok := r.store.clients.get(order.ClientID); !ok {
			return nil, domain.ErrClientNotFound
		}
		return r.store.orders.put(order.ID, *cloneOrder(*order)), nil
	})
}

// GetByID retrieves an order by ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	o, ok := r.store.orders.get(id)
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

// GetByIDForUpdate retrieves an order inside a transaction.
func (r *OrderRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Order, error) {
	return r.GetByID(ctx, id)
}

// Update replaces an order.
func (r *OrderRepository) Update(ctx context.Context, tx usecase.Transaction, order *domain.Order) error {
	return r.store.write(tx, func() (func(), error) {
		if _, ok := r.store.orders.get(order.ID); !ok {
			return nil, domain.ErrOrderNotFound
		}
		return r.store.orders.put(order.ID, *cloneOrder(*order)), nil
	})
}

// UpdateStatus sets the paid flag.
func (r *OrderRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, isPaid bool, updatedAt time.Time) error {
	return r.store.write(tx, func() (func(), error) {
		o, ok := r.store.orders.get(id)
		if !ok {
			return nil, domain.ErrOrderNotFound
		}
		o.IsPaid = isPaid
		o.UpdatedAt = updatedAt
		return r.store.orders.put(id, o), nil
	})
}

// Delete removes an order.
func (r *OrderRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	return r.store.write(tx, func() (func(), error) {
		if _, ok := r.store.orders.get(id); !ok {
			return nil, domain.ErrOrderNotFound
		}
		return r.store.orders.remove(id), nil
	})
}

// List lists orders, most recent first.
func (r *OrderRepository) List(ctx context.Context, filter usecase.OrderFilter) ([]*domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows := r.store.orders.scan(func(o orderRow) bool {
		if filter.ClientID != "" && o.ClientID != filter.ClientID {
			return false
		}
		return filter.IsPaid == nil || o.IsPaid == *filter.IsPaid
	})

	rows = page(reversed(rows), filter.Limit, filter.Offset)
	out := make([]*domain.Order, 0, len(rows))
	for _, o := range rows {
		out = append(out, cloneOrder(o))
	}
	return out, nil
}

// CountByStatus counts paid and unpaid orders.
func (r *OrderRepository) CountByStatus(ctx context.Context) (paid, unpaid int64, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, o := range r.store.orders.scan(nil) {
		if o.IsPaid {
			paid++
		} else {
			unpaid++
		}
	}
	return paid, unpaid, nil
}
