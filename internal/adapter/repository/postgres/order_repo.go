package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/infrastructure/postgres/generated"
	"github.com/iho/caisse/internal/usecase"
)

// Foreign keys whose violation names the missing reference.
var orderConstraintErrors = map[string]error{
	"orders_client_id_fkey":               domain.ErrClientNotFound,
	"order_line_items_product_id_fkey":    domain.ErrProductNotFound,
	"order_service_items_service_id_fkey": domain.ErrServiceNotFound,
	"order_line_items_order_id_fkey":      domain.ErrOrderNotFound,
	"order_service_items_order_id_fkey":   domain.ErrOrderNotFound,
	"payments_order_id_fkey":              domain.ErrOrderHasPayments,
}

// OrderRepository implements usecase.OrderRepository.
type OrderRepository struct {
	queries *generated.Queries
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db DB) *OrderRepository {
	return &OrderRepository{queries: generated.New(db)}
}

// Create inserts an order and its items.
func (r *OrderRepository) Create(ctx context.Context, tx usecase.Transaction, order *domain.Order) error {
	q := txQueries(tx)

	err := q.CreateOrder(ctx, generated.CreateOrderParams{
		ID:                    order.ID,
		ClientID:              order.ClientID,
		GlobalDiscountPercent: decimalToNumeric(order.GlobalDiscountPercent),
		IsPaid:                order.IsPaid,
		CreatedAt:             timeToPgTimestamptz(order.CreatedAt),
		UpdatedAt:             timeToPgTimestamptz(order.UpdatedAt),
	})
	if err != nil {
		return mapOrderError(err)
	}

	return mapOrderError(insertItems(ctx, q, order))
}

// GetByID retrieves an order with its items.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row, err := r.queries.GetOrderByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrOrderNotFound)
	}
	return r.withItems(ctx, r.queries, row)
}

// GetByIDForUpdate locks the order row and loads its items.
func (r *OrderRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Order, error) {
	q := txQueries(tx)

	row, err := q.GetOrderByIDForUpdate(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrOrderNotFound)
	}
	return r.withItems(ctx, q, row)
}

// Update rewrites the order header and replaces all of its items.
func (r *OrderRepository) Update(ctx context.Context, tx usecase.Transaction, order *domain.Order) error {
	q := txQueries(tx)

	n, err := q.UpdateOrder(ctx, generated.UpdateOrderParams{
		ID:                    order.ID,
		ClientID:              order.ClientID,
		GlobalDiscountPercent: decimalToNumeric(order.GlobalDiscountPercent),
		IsPaid:                order.IsPaid,
		UpdatedAt:             timeToPgTimestamptz(order.UpdatedAt),
	})
	if err := affected(n, mapOrderError(err), domain.ErrOrderNotFound); err != nil {
		return err
	}

	if err := q.DeleteOrderLineItems(ctx, order.ID); err != nil {
		return err
	}
	if err := q.DeleteOrderServiceItems(ctx, order.ID); err != nil {
		return err
	}

	return mapOrderError(insertItems(ctx, q, order))
}

// UpdateStatus sets the paid flag.
func (r *OrderRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, isPaid bool, updatedAt time.Time) error {
	n, err := txQueries(tx).UpdateOrderStatus(ctx, generated.UpdateOrderStatusParams{
		ID:        id,
		IsPaid:    isPaid,
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
	return affected(n, err, domain.ErrOrderNotFound)
}

// Delete removes an order. Items go with it through ON DELETE CASCADE.
func (r *OrderRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	n, err := txQueries(tx).DeleteOrder(ctx, id)
	return affected(n, mapOrderError(err), domain.ErrOrderNotFound)
}

// List lists orders, most recent first, with their items batch-loaded.
func (r *OrderRepository) List(ctx context.Context, filter usecase.OrderFilter) ([]*domain.Order, error) {
	params := generated.ListOrdersParams{
		Limit:  int32(filter.Limit),
		Offset: int32(filter.Offset),
	}
	if filter.IsPaid != nil {
		params.IsPaid = pgtype.Bool{Bool: *filter.IsPaid, Valid: true}
	}
	if filter.ClientID != "" {
		params.ClientID = pgtype.Text{String: filter.ClientID, Valid: true}
	}

	rows, err := r.queries.ListOrders(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []*domain.Order{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	lines, services, err := loadItems(ctx, r.queries, ids)
	if err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, rowToOrder(row, lines[row.ID], services[row.ID]))
	}

	return orders, nil
}

// CountByStatus counts paid and unpaid orders.
func (r *OrderRepository) CountByStatus(ctx context.Context) (paid, unpaid int64, err error) {
	row, err := r.queries.CountOrdersByStatus(ctx)
	if err != nil {
		return 0, 0, err
	}
	return row.Paid, row.Unpaid, nil
}

func (r *OrderRepository) withItems(ctx context.Context, q *generated.Queries, row generated.Order) (*domain.Order, error) {
	lines, services, err := loadItems(ctx, q, []string{row.ID})
	if err != nil {
		return nil, err
	}
	return rowToOrder(row, lines[row.ID], services[row.ID]), nil
}

func loadItems(ctx context.Context, q *generated.Queries, ids []string) (map[string][]domain.LineItem, map[string][]domain.ServiceItem, error) {
	lineRows, err := q.ListOrderLineItems(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	serviceRows, err := q.ListOrderServiceItems(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	lines := make(map[string][]domain.LineItem, len(ids))
	for _, l := range lineRows {
		lines[l.OrderID] = append(lines[l.OrderID], domain.LineItem{
			ProductID:       l.ProductID,
			UnitPrice:       numericToDecimal(l.UnitPrice),
			Quantity:        l.Quantity,
			DiscountPercent: numericToDecimal(l.DiscountPercent),
		})
	}

	services := make(map[string][]domain.ServiceItem, len(ids))
	for _, s := range serviceRows {
		services[s.OrderID] = append(services[s.OrderID], domain.ServiceItem{
			ServiceID:       s.ServiceID,
			Price:           numericToDecimal(s.Price),
			DiscountPercent: numericToDecimal(s.DiscountPercent),
		})
	}

	return lines, services, nil
}

func insertItems(ctx context.Context, q *generated.Queries, order *domain.Order) error {
	for i, l := range order.LineItems {
		err := q.CreateOrderLineItem(ctx, generated.CreateOrderLineItemParams{
			OrderID:         order.ID,
			Position:        int32(i),
			ProductID:       l.ProductID,
			UnitPrice:       decimalToNumeric(l.UnitPrice),
			Quantity:        l.Quantity,
			DiscountPercent: decimalToNumeric(l.DiscountPercent),
		})
		if err != nil {
			return err
		}
	}

	for i, s := range order.ServiceItems {
		err := q.CreateOrderServiceItem(ctx, generated.CreateOrderServiceItemParams{
			OrderID:         order.ID,
			Position:        int32(i),
			ServiceID:       s.ServiceID,
			Price:           decimalToNumeric(s.Price),
			DiscountPercent: decimalToNumeric(s.DiscountPercent),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func mapOrderError(err error) error {
	code, constraint := pgErrorCode(err)
	if code != pgErrForeignKeyViolation {
		return err
	}
	if mapped, ok := orderConstraintErrors[constraint]; ok {
		return mapped
	}
	return err
}

func rowToOrder(row generated.Order, lines []domain.LineItem, services []domain.ServiceItem) *domain.Order {
	return &domain.Order{
		ID:                    row.ID,
		ClientID:              row.ClientID,
		LineItems:             lines,
		ServiceItems:          services,
		GlobalDiscountPercent: numericToDecimal(row.GlobalDiscountPercent),
		IsPaid:                row.IsPaid,
		CreatedAt:             row.CreatedAt.Time,
		UpdatedAt:             row.UpdatedAt.Time,
	}
}
