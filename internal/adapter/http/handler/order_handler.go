package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/caisse/internal/adapter/http/dto"
	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

// OrderService defines the behavior needed by OrderHandler.
type OrderService interface {
	CreateOrder(ctx context.Context, input usecase.OrderInput) (*usecase.OrderView, error)
	GetOrder(ctx context.Context, id string) (*usecase.OrderView, error)
	ListOrders(ctx context.Context, filter usecase.OrderFilter) ([]*domain.Order, error)
	UpdateOrder(ctx context.Context, id string, input usecase.OrderInput) (*usecase.OrderView, error)
	DeleteOrder(ctx context.Context, id string) error
	MarkPaid(ctx context.Context, id string) (*domain.Order, error)
	MarkUnpaid(ctx context.Context, id string) (*domain.Order, error)
	GetInvoice(ctx context.Context, id string) (*usecase.Invoice, error)
}

// OrderHandler handles order ("commande") endpoints.
type OrderHandler struct {
	orderUC  OrderService
	currency string
}

// NewOrderHandler creates a new OrderHandler. currency is printed on invoices.
func NewOrderHandler(orderUC OrderService, currency string) *OrderHandler {
	return &OrderHandler{orderUC: orderUC, currency: currency}
}

// Create creates an order.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, err, "invalid order")
		return
	}

	view, err := h.orderUC.CreateOrder(r.Context(), input)
	if err != nil {
		writeDomainError(w, err, "failed to create order")
		return
	}

	writeJSON(w, http.StatusCreated, dto.OrderViewFromUseCase(view))
}

// Get returns an order with its payments and totals.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing order ID", "")
		return
	}

	view, err := h.orderUC.GetOrder(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get order")
		return
	}

	writeJSON(w, http.StatusOK, dto.OrderViewFromUseCase(view))
}

// List lists orders, optionally filtered by ?paid= and ?client_id=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	orders, err := h.orderUC.ListOrders(r.Context(), usecase.OrderFilter{
		IsPaid:   parseBoolQuery(r, "paid"),
		ClientID: r.URL.Query().Get("client_id"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeDomainError(w, err, "failed to list orders")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.OrdersFromDomain(orders), limit, offset))
}

// Update replaces the items and discount of an order.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing order ID", "")
		return
	}

	var req dto.OrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, err, "invalid order")
		return
	}

	view, err := h.orderUC.UpdateOrder(r.Context(), id, input)
	if err != nil {
		writeDomainError(w, err, "failed to update order")
		return
	}

	writeJSON(w, http.StatusOK, dto.OrderViewFromUseCase(view))
}

// Delete removes an order without payments.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing order ID", "")
		return
	}

	if err := h.orderUC.DeleteOrder(r.Context(), id); err != nil {
		writeDomainError(w, err, "failed to delete order")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkPaid forces the paid flag on.
func (h *OrderHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	h.setPaid(w, r, h.orderUC.MarkPaid)
}

// MarkUnpaid forces the paid flag off.
func (h *OrderHandler) MarkUnpaid(w http.ResponseWriter, r *http.Request) {
	h.setPaid(w, r, h.orderUC.MarkUnpaid)
}

func (h *OrderHandler) setPaid(w http.ResponseWriter, r *http.Request, set func(context.Context, string) (*domain.Order, error)) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing order ID", "")
		return
	}

	order, err := set(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to update order status")
		return
	}

	writeJSON(w, http.StatusOK, dto.OrderFromDomain(order))
}

// Invoice returns the data of the order's invoice ("facture").
func (h *OrderHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing order ID", "")
		return
	}

	invoice, err := h.orderUC.GetInvoice(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to build invoice")
		return
	}

	writeJSON(w, http.StatusOK, dto.InvoiceFromUseCase(invoice, h.currency))
}
