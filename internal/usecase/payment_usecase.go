package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/caisse/internal/domain"
)

// PaymentUseCase records payments against orders. Cash payments move
// money through the register and are mirrored by ledger entries.
type PaymentUseCase struct {
	txManager   TransactionManager
	paymentRepo PaymentRepository
	orderRepo   OrderRepository
	sessionRepo SessionRepository
	entryRepo   EntryRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	retrier     Retrier
	metrics     MetricsRecorder
	logger      zerolog.Logger
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	paymentRepo PaymentRepository,
	orderRepo OrderRepository,
	sessionRepo SessionRepository,
	entryRepo EntryRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	logger zerolog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:   txManager,
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
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
func (uc *PaymentUseCase) SetMetrics(m MetricsRecorder) {
	if m != nil {
		uc.metrics = m
	}
}

func (uc *PaymentUseCase) drawer() cashDrawer {
	return cashDrawer{
		sessionRepo: uc.sessionRepo,
		entryRepo:   uc.entryRepo,
		outboxRepo:  uc.outboxRepo,
		idGen:       uc.idGen,
	}
}

// RecordPaymentInput represents input for recording a payment.
type RecordPaymentInput struct {
	OrderID string
	Method  domain.PaymentMethod
	Amount  decimal.Decimal
}

// RecordPayment records a payment and recomputes the order status. The
// amount is not capped at the remaining due: overpayment shows up as a
// negative remaining due.
func (uc *PaymentUseCase) RecordPayment(ctx context.Context, input RecordPaymentInput) (*domain.Payment, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if !input.Method.IsValid() {
		return nil, domain.ErrInvalidPaymentMethod
	}

	var (
		payment *domain.Payment
		balance *decimal.Decimal
	)

	err := runInTx(ctx, uc.txManager, uc.retrier, func(txCtx context.Context, tx Transaction) error {
		now := time.Now().UTC()
		balance = nil

		order, err := uc.orderRepo.GetByIDForUpdate(txCtx, tx, input.OrderID)
		if err != nil {
			return err
		}

		session, err := uc.activeSession(txCtx, tx, input.Method.IsCash())
		if err != nil {
			return err
		}

		existing, err := uc.paymentRepo.ListByOrder(txCtx, order.ID)
		if err != nil {
			return err
		}

		payment = &domain.Payment{
			ID:        uc.idGen.Generate(),
			OrderID:   order.ID,
			Amount:    input.Amount,
			Method:    input.Method,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if session != nil {
			payment.SessionID = &session.ID
		}

		if err := uc.paymentRepo.Create(txCtx, tx, payment); err != nil {
			return err
		}

		if payment.Method.IsCash() {
			if _, err := uc.drawer().post(txCtx, tx, session, domain.EntryTypeDeposit, payment.Amount, domain.ReasonOrderPayment, &payment.ID, now); err != nil {
				return err
			}
			balance = &session.ClosingBalance
		}

		if err := uc.outboxRepo.Create(txCtx, tx, uc.paymentEvent(payment, domain.EventTypePaymentRecorded, now)); err != nil {
			return err
		}

		return uc.recomputeStatus(txCtx, tx, order, append(existing, payment), now)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.PaymentRecorded(payment.Method, payment.Amount)
	if balance != nil {
		uc.metrics.EntryRecorded(domain.EntryTypeDeposit)
		uc.metrics.RegisterBalance(*balance)
	}
	uc.logger.Info().
		Str("payment_id", payment.ID).
		Str("order_id", payment.OrderID).
		Str("method", string(payment.Method)).
		Str("amount", payment.Amount.String()).
		Msg("payment recorded")

	return payment, nil
}

// DeletePayment removes a payment. Cash payments are reversed by a
// withdrawal on the open session.
func (uc *PaymentUseCase) DeletePayment(ctx context.Context, id string) error {
	found, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	var payment *domain.Payment

	err = runInTx(ctx, uc.txManager, uc.retrier, func(txCtx context.Context, tx Transaction) error {
		now := time.Now().UTC()

		order, err := uc.orderRepo.GetByIDForUpdate(txCtx, tx, found.OrderID)
		if err != nil {
			return err
		}

		// Payments only change under the order lock, so this read is current.
		existing, err := uc.paymentRepo.ListByOrder(txCtx, order.ID)
		if err != nil {
			return err
		}
		payment, err = paymentIn(existing, id)
		if err != nil {
			return err
		}

		if payment.Method.IsCash() {
			session, err := uc.sessionRepo.GetActiveForUpdate(txCtx, tx)
			if err != nil {
				return err
			}
			if _, err := uc.drawer().post(txCtx, tx, session, domain.EntryTypeWithdrawal, payment.Amount, domain.ReasonPaymentReversal, &payment.ID, now); err != nil {
				return err
			}
		}

		if err := uc.paymentRepo.Delete(txCtx, tx, payment.ID); err != nil {
			return err
		}

		if err := uc.outboxRepo.Create(txCtx, tx, uc.paymentEvent(payment, domain.EventTypePaymentDeleted, now)); err != nil {
			return err
		}

		return uc.recomputeStatus(txCtx, tx, order, withoutPayment(existing, payment.ID), now)
	})
	if err != nil {
		return err
	}

	uc.logger.Info().
		Str("payment_id", payment.ID).
		Str("order_id", payment.OrderID).
		Str("amount", payment.Amount.String()).
		Msg("payment deleted")

	return nil
}

// UpdatePaymentInput represents input for changing a payment.
type UpdatePaymentInput struct {
	ID     string
	Method domain.PaymentMethod
	Amount decimal.Decimal
}

// UpdatePayment changes the amount or method of a payment. The new amount
// may not exceed what is still due on the order plus the current amount.
// Cash movements are adjusted through a single delta entry.
func (uc *PaymentUseCase) UpdatePayment(ctx context.Context, input UpdatePaymentInput) (*domain.Payment, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if !input.Method.IsValid() {
		return nil, domain.ErrInvalidPaymentMethod
	}

	found, err := uc.paymentRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	var payment *domain.Payment

	err = runInTx(ctx, uc.txManager, uc.retrier, func(txCtx context.Context, tx Transaction) error {
		now := time.Now().UTC()

		order, err := uc.orderRepo.GetByIDForUpdate(txCtx, tx, found.OrderID)
		if err != nil {
			return err
		}

		existing, err := uc.paymentRepo.ListByOrder(txCtx, order.ID)
		if err != nil {
			return err
		}
		current, err := paymentIn(existing, input.ID)
		if err != nil {
			return err
		}
		updated := *current
		payment = &updated

		remaining := order.RemainingDue(existing)
		ceiling := remaining.Add(current.Amount).Add(domain.SettlementEpsilon)
		if input.Amount.GreaterThan(ceiling) {
			return domain.ErrAmountExceedsDue
		}

		delta := cashPortion(input.Method, input.Amount).Sub(cashPortion(current.Method, current.Amount))
		if !delta.IsZero() {
			session, err := uc.sessionRepo.GetActiveForUpdate(txCtx, tx)
			if err != nil {
				return err
			}

			entryType := domain.EntryTypeDeposit
			if delta.IsNegative() {
				entryType = domain.EntryTypeWithdrawal
			}
			if _, err := uc.drawer().post(txCtx, tx, session, entryType, delta.Abs(), domain.ReasonPaymentAdjustment, &payment.ID, now); err != nil {
				return err
			}
			if input.Method.IsCash() {
				payment.SessionID = &session.ID
			}
		}

		payment.Amount = input.Amount
		payment.Method = input.Method
		payment.UpdatedAt = now

		if err := uc.paymentRepo.Update(txCtx, tx, payment); err != nil {
			return err
		}

		if err := uc.outboxRepo.Create(txCtx, tx, uc.paymentEvent(payment, domain.EventTypePaymentUpdated, now)); err != nil {
			return err
		}

		return uc.recomputeStatus(txCtx, tx, order, append(withoutPayment(existing, payment.ID), payment), now)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("payment_id", payment.ID).
		Str("order_id", payment.OrderID).
		Str("method", string(payment.Method)).
		Str("amount", payment.Amount.String()).
		Msg("payment updated")

	return payment, nil
}

// GetPayment retrieves a payment by ID.
func (uc *PaymentUseCase) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return uc.paymentRepo.GetByID(ctx, id)
}

// ListByOrder lists the payments of an order.
func (uc *PaymentUseCase) ListByOrder(ctx context.Context, orderID string) ([]*domain.Payment, error) {
	if _, err := uc.orderRepo.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return uc.paymentRepo.ListByOrder(ctx, orderID)
}

// ListForActiveSession lists payments taken while the open session is active.
func (uc *PaymentUseCase) ListForActiveSession(ctx context.Context) ([]*domain.Payment, error) {
	session, err := uc.sessionRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	return uc.paymentRepo.ListBySession(ctx, session.ID)
}

// activeSession locks the open session. Cash requires one, other methods
// only attach it when present.
func (uc *PaymentUseCase) activeSession(ctx context.Context, tx Transaction, required bool) (*domain.RegisterSession, error) {
	session, err := uc.sessionRepo.GetActiveForUpdate(ctx, tx)
	if err == nil {
		return session, nil
	}
	if errors.Is(err, domain.ErrNoOpenSession) && !required {
		return nil, nil
	}
	return nil, err
}

func (uc *PaymentUseCase) recomputeStatus(ctx context.Context, tx Transaction, order *domain.Order, payments []*domain.Payment, now time.Time) error {
	if !order.RecomputeStatus(payments) {
		return nil
	}

	if err := uc.orderRepo.UpdateStatus(ctx, tx, order.ID, order.IsPaid, now); err != nil {
		return err
	}

	return uc.outboxRepo.Create(ctx, tx, orderStatusEvent(uc.idGen, order, order.RemainingDue(payments), now))
}

func (uc *PaymentUseCase) paymentEvent(p *domain.Payment, eventType string, at time.Time) *domain.OutboxEvent {
	return newOutboxEvent(uc.idGen, domain.AggregateTypePayment, p.ID, eventType, at, map[string]any{
		"payment_id": p.ID,
		"order_id":   p.OrderID,
		"method":     string(p.Method),
		"amount":     p.Amount.String(),
	})
}

func orderStatusEvent(idGen IDGenerator, order *domain.Order, remaining decimal.Decimal, at time.Time) *domain.OutboxEvent {
	return newOutboxEvent(idGen, domain.AggregateTypeOrder, order.ID, domain.EventTypeOrderStatusChanged, at, map[string]any{
		"order_id":      order.ID,
		"is_paid":       order.IsPaid,
		"remaining_due": remaining.String(),
	})
}

func cashPortion(method domain.PaymentMethod, amount decimal.Decimal) decimal.Decimal {
	if method.IsCash() {
		return amount
	}
	return decimal.Zero
}

// paymentIn picks id out of an order's payments.
func paymentIn(payments []*domain.Payment, id string) (*domain.Payment, error) {
	for _, p := range payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

func withoutPayment(payments []*domain.Payment, id string) []*domain.Payment {
	out := make([]*domain.Payment, 0, len(payments))
	for _, p := range payments {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
