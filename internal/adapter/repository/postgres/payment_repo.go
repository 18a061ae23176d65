package postgres

import (
	"context"
	"time"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/infrastructure/postgres/generated"
	"github.com/iho/caisse/internal/usecase"
)

// PaymentRepository implements usecase.PaymentRepository.
type PaymentRepository struct {
	queries *generated.Queries
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(db DB) *PaymentRepository {
	return &PaymentRepository{queries: generated.New(db)}
}

// Create creates a new payment.
func (r *PaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	err := txQueries(tx).CreatePayment(ctx, generated.CreatePaymentParams{
		ID:        payment.ID,
		OrderID:   payment.OrderID,
		Amount:    decimalToNumeric(payment.Amount),
		Method:    string(payment.Method),
		SessionID: stringPtrToText(payment.SessionID),
		CreatedAt: timeToPgTimestamptz(payment.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(payment.UpdatedAt),
	})
	if code, _ := pgErrorCode(err); code == pgErrForeignKeyViolation {
		return domain.ErrOrderNotFound
	}
	return err
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	row, err := r.queries.GetPaymentByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrPaymentNotFound)
	}
	return rowToPayment(row), nil
}

// Update rewrites amount, method and session of a payment.
func (r *PaymentRepository) Update(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	n, err := txQueries(tx).UpdatePayment(ctx, generated.UpdatePaymentParams{
		ID:        payment.ID,
		Amount:    decimalToNumeric(payment.Amount),
		Method:    string(payment.Method),
		SessionID: stringPtrToText(payment.SessionID),
		UpdatedAt: timeToPgTimestamptz(payment.UpdatedAt),
	})
	return affected(n, err, domain.ErrPaymentNotFound)
}

// Delete removes a payment.
func (r *PaymentRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	n, err := txQueries(tx).DeletePayment(ctx, id)
	return affected(n, err, domain.ErrPaymentNotFound)
}

// ListByOrder lists an order's payments, oldest first.
func (r *PaymentRepository) ListByOrder(ctx context.Context, orderID string) ([]*domain.Payment, error) {
	rows, err := r.queries.ListPaymentsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return rowsToPayments(rows), nil
}

// ListBySession lists payments attributed to a register session.
func (r *PaymentRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.Payment, error) {
	rows, err := r.queries.ListPaymentsBySession(ctx, stringPtrToText(&sessionID))
	if err != nil {
		return nil, err
	}
	return rowsToPayments(rows), nil
}

// ListBetween lists payments created between from and to, inclusive.
func (r *PaymentRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Payment, error) {
	rows, err := r.queries.ListPaymentsBetween(ctx, generated.ListPaymentsBetweenParams{
		FromTime: timeToPgTimestamptz(from),
		ToTime:   timeToPgTimestamptz(to),
	})
	if err != nil {
		return nil, err
	}
	return rowsToPayments(rows), nil
}

func rowsToPayments(rows []generated.Payment) []*domain.Payment {
	payments := make([]*domain.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, rowToPayment(row))
	}
	return payments
}

func rowToPayment(row generated.Payment) *domain.Payment {
	return &domain.Payment{
		ID:        row.ID,
		OrderID:   row.OrderID,
		Amount:    numericToDecimal(row.Amount),
		Method:    domain.PaymentMethod(row.Method),
		SessionID: textToStringPtr(row.SessionID),
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
