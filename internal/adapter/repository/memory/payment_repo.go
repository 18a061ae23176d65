package memory

import (
	"context"
	"time"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

// PaymentRepository implements usecase.PaymentRepository.
type PaymentRepository struct {
	store *Store
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(store *Store) *PaymentRepository {
	return &PaymentRepository{store: store}
}

// Create inserts a payment.
func (r *PaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	return r.store.write(tx, func() (func(), error) {
		if _, ok := r.store.orders.get(payment.OrderID); !ok {
			return nil, domain.ErrOrderNotFound
		}
		return r.store.payments.put(payment.ID, *clonePayment(*payment)), nil
	})
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.payments.get(id)
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	return clonePayment(p), nil
}

// Update replaces amount, method and session of a payment.
func (r *PaymentRepository) Update(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	return r.store.write(tx, func() (func(), error) {
		if _, ok := r.store.payments.get(payment.ID); !ok {
			return nil, domain.ErrPaymentNotFound
		}
		return r.store.payments.put(payment.ID, *clonePayment(*payment)), nil
	})
}

// Delete removes a payment.
func (r *PaymentRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	return r.store.write(tx, func() (func(), error) {
		if _, ok := r.store.payments.get(id); !ok {
			return nil, domain.ErrPaymentNotFound
		}
		return r.store.payments.remove(id), nil
	})
}

// ListByOrder lists an order's payments in creation order.
func (r *PaymentRepository) ListByOrder(ctx context.Context, orderID string) ([]*domain.Payment, error) {
	return r.list(func(p paymentRow) bool { return p.OrderID == orderID }), nil
}

// ListBySession lists payments attached to a session.
func (r *PaymentRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.Payment, error) {
	return r.list(func(p paymentRow) bool { return p.SessionID != nil && *p.SessionID == sessionID }), nil
}

// ListBetween lists payments created in [from, to].
func (r *PaymentRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Payment, error) {
	return r.list(func(p paymentRow) bool { return !p.CreatedAt.Before(from) && !p.CreatedAt.After(to) }), nil
}

func (r *PaymentRepository) list(keep func(paymentRow) bool) []*domain.Payment {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows := r.store.payments.scan(keep)
	out := make([]*domain.Payment, 0, len(rows))
	for _, p := range rows {
		out = append(out, clonePayment(p))
	}
	return out
}
