package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/caisse/internal/domain"
)

// OrderUseCase handles orders ("commandes") and their invoice figures.
type OrderUseCase struct {
	txManager   TransactionManager
	orderRepo   OrderRepository
	paymentRepo PaymentRepository
	clientRepo  ClientRepository
	productRepo ProductRepository
	serviceRepo ServiceRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	retrier     Retrier
	logger      zerolog.Logger
}

// NewOrderUseCase creates a new OrderUseCase.
func NewOrderUseCase(
	txManager TransactionManager,
	orderRepo OrderRepository,
	paymentRepo PaymentRepository,
	clientRepo ClientRepository,
	productRepo ProductRepository,
	serviceRepo ServiceRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	logger zerolog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		txManager:   txManager,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		serviceRepo: serviceRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		retrier:     retrier,
		logger:      logger,
	}
}

// LineItemInput is a product line. UnitPrice defaults to the catalog price.
type LineItemInput struct {
	UnitPrice       *decimal.Decimal
	ProductID       string
	DiscountPercent decimal.Decimal
	Quantity        int64
}

// ServiceItemInput is a service line. Price defaults to the catalog price.
type ServiceItemInput struct {
	Price           *decimal.Decimal
	ServiceID       string
	DiscountPercent decimal.Decimal
}

// OrderInput represents input for creating or replacing an order.
type OrderInput struct {
	ClientID              string
	LineItems             []LineItemInput
	ServiceItems          []ServiceItemInput
	GlobalDiscountPercent decimal.Decimal
}

// OrderView is an order with its payments and computed totals.
type OrderView struct {
	Order    *domain.Order
	Payments []*domain.Payment
	Totals   domain.OrderTotals
}

// Invoice is everything needed to render an invoice for an order.
type Invoice struct {
	IssuedAt time.Time
	Client   *domain.Client
	OrderView
}

// CreateOrder creates an order after resolving its catalog references.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, input OrderInput) (*OrderView, error) {
	now := time.Now().UTC()
	order := &domain.Order{
		ID:        uc.idGen.Generate(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.applyInput(ctx, order, input); err != nil {
		return nil, err
	}

	// An order whose total is zero is settled from the start.
	order.RecomputeStatus(nil)

	err := runInTx(ctx, uc.txManager, uc.retrier, func(txCtx context.Context, tx Transaction) error {
		return uc.orderRepo.Create(txCtx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("order_id", order.ID).
		Str("client_id", order.ClientID).
		Str("total", order.Total().String()).
		Msg("order created")

	return &OrderView{Order: order, Payments: []*domain.Payment{}, Totals: domain.ComputeTotals(order, nil)}, nil
}

// GetOrder returns an order with its payments and totals.
func (uc *OrderUseCase) GetOrder(ctx context.Context, id string) (*OrderView, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	return &OrderView{Order: order, Payments: payments, Totals: domain.ComputeTotals(order, payments)}, nil
}

// ListOrders lists orders matching filter.
func (uc *OrderUseCase) ListOrders(ctx context.Context, filter OrderFilter) ([]*domain.Order, error) {
	filter.Limit, filter.Offset = clampLimit(filter.Limit, filter.Offset)
	return uc.orderRepo.List(ctx, filter)
}

// UpdateOrder replaces the client, items and global discount of an order
// and recomputes its paid flag against existing payments.
func (uc *OrderUseCase) UpdateOrder(ctx context.Context, id string, input OrderInput) (*OrderView, error) {
	var view *OrderView

	err := runInTx(ctx, uc.txManager, uc.retrier, func(txCtx context.Context, tx Transaction) error {
		now := time.Now().UTC()

		order, err := uc.orderRepo.GetByIDForUpdate(txCtx, tx, id)
		if err != nil {
			return err
		}

		if err := uc.applyInput(txCtx, order, input); err != nil {
			return err
		}
		order.UpdatedAt = now

		payments, err := uc.paymentRepo.ListByOrder(txCtx, id)
		if err != nil {
			return err
		}

		changed := order.RecomputeStatus(payments)
		if err := uc.orderRepo.Update(txCtx, tx, order); err != nil {
			return err
		}

		if changed {
			if err := uc.outboxRepo.Create(txCtx, tx, orderStatusEvent(uc.idGen, order, order.RemainingDue(payments), now)); err != nil {
				return err
			}
		}

		view = &OrderView{Order: order, Payments: payments, Totals: domain.ComputeTotals(order, payments)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("order_id", id).
		Bool("is_paid", view.Order.IsPaid).
		Msg("order updated")

	return view, nil
}

// DeleteOrder deletes an order that has no payments.
func (uc *OrderUseCase) DeleteOrder(ctx context.Context, id string) error {
	err := runInTx(ctx, uc.txManager, uc.retrier, func(txCtx context.Context, tx Transaction) error {
		if _, err := uc.orderRepo.GetByIDForUpdate(txCtx, tx, id); err != nil {
			return err
		}

		payments, err := uc.paymentRepo.ListByOrder(txCtx, id)
		if err != nil {
			return err
		}
		if len(payments) > 0 {
			return domain.ErrOrderHasPayments
		}

		return uc.orderRepo.Delete(txCtx, tx, id)
	})
	if err != nil {
		return err
	}

	uc.logger.Info().Str("order_id", id).Msg("order deleted")
	return nil
}

// MarkPaid flags an order as paid regardless of its payments.
func (uc *OrderUseCase) MarkPaid(ctx context.Context, id string) (*domain.Order, error) {
	return uc.setPaid(ctx, id, true)
}

// MarkUnpaid clears the paid flag of an order.
func (uc *OrderUseCase) MarkUnpaid(ctx context.Context, id string) (*domain.Order, error) {
	return uc.setPaid(ctx, id, false)
}

func (uc *OrderUseCase) setPaid(ctx context.Context, id string, paid bool) (*domain.Order, error) {
	var order *domain.Order

	err := runInTx(ctx, uc.txManager, uc.retrier, func(txCtx context.Context, tx Transaction) error {
		var err error
		order, err = uc.orderRepo.GetByIDForUpdate(txCtx, tx, id)
		if err != nil {
			return err
		}
		if order.IsPaid == paid {
			return nil
		}

		now := time.Now().UTC()
		order.IsPaid = paid
		order.UpdatedAt = now
		if err := uc.orderRepo.UpdateStatus(txCtx, tx, id, paid, now); err != nil {
			return err
		}

		payments, err := uc.paymentRepo.ListByOrder(txCtx, id)
		if err != nil {
			return err
		}

		return uc.outboxRepo.Create(txCtx, tx, orderStatusEvent(uc.idGen, order, order.RemainingDue(payments), now))
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info().Str("order_id", id).Bool("is_paid", paid).Msg("order status set manually")
	return order, nil
}

// GetInvoice assembles the invoice for an order.
func (uc *OrderUseCase) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	view, err := uc.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	client, err := uc.clientRepo.GetByID(ctx, view.Order.ClientID)
	if err != nil {
		return nil, err
	}

	return &Invoice{
		IssuedAt:  time.Now().UTC(),
		Client:    client,
		OrderView: *view,
	}, nil
}

// applyInput resolves catalog references and copies input onto order.
func (uc *OrderUseCase) applyInput(ctx context.Context, order *domain.Order, input OrderInput) error {
	if input.ClientID == "" {
		return domain.ErrRequiredField
	}
	if _, err := uc.clientRepo.GetByID(ctx, input.ClientID); err != nil {
		return err
	}

	lines := make([]domain.LineItem, 0, len(input.LineItems))
	for _, li := range input.LineItems {
		if li.ProductID == "" {
			return domain.ErrRequiredField
		}
		product, err := uc.productRepo.GetByID(ctx, li.ProductID)
		if err != nil {
			return err
		}

		price := product.Price
		if li.UnitPrice != nil {
			price = *li.UnitPrice
		}

		lines = append(lines, domain.LineItem{
			ProductID:       li.ProductID,
			UnitPrice:       price,
			Quantity:        li.Quantity,
			DiscountPercent: li.DiscountPercent,
		})
	}

	services := make([]domain.ServiceItem, 0, len(input.ServiceItems))
	for _, si := range input.ServiceItems {
		if si.ServiceID == "" {
			return domain.ErrRequiredField
		}
		service, err := uc.serviceRepo.GetByID(ctx, si.ServiceID)
		if err != nil {
			return err
		}

		price := service.Price
		if si.Price != nil {
			price = *si.Price
		}

		services = append(services, domain.ServiceItem{
			ServiceID:       si.ServiceID,
			Price:           price,
			DiscountPercent: si.DiscountPercent,
		})
	}

	order.ClientID = input.ClientID
	order.LineItems = lines
	order.ServiceItems = services
	order.GlobalDiscountPercent = input.GlobalDiscountPercent

	return order.Validate()
}
