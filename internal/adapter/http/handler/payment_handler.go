package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/caisse/internal/adapter/http/dto"
	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	RecordPayment(ctx context.Context, input usecase.RecordPaymentInput) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, input usecase.UpdatePaymentInput) (*domain.Payment, error)
	DeletePayment(ctx context.Context, id string) error
	ListByOrder(ctx context.Context, orderID string) ([]*domain.Payment, error)
	ListForActiveSession(ctx context.Context) ([]*domain.Payment, error)
}

// PaymentHandler handles payment ("paiement") endpoints.
type PaymentHandler struct {
	paymentUC PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// Create records a payment against an order.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, err, "invalid payment")
		return
	}

	payment, err := h.paymentUC.RecordPayment(r.Context(), input)
	if err != nil {
		writeDomainError(w, err, "failed to record payment")
		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentFromDomain(payment))
}

// Update changes the amount or method of a payment.
func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	var req dto.UpdatePaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput(id)
	if err != nil {
		writeDomainError(w, err, "invalid payment")
		return
	}

	payment, err := h.paymentUC.UpdatePayment(r.Context(), input)
	if err != nil {
		writeDomainError(w, err, "failed to update payment")
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(payment))
}

// Delete removes a payment, reversing any cash movement.
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	if err := h.paymentUC.DeletePayment(r.Context(), id); err != nil {
		writeDomainError(w, err, "failed to delete payment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListByOrder lists the payments of an order.
func (h *PaymentHandler) ListByOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "missing order ID", "")
		return
	}

	payments, err := h.paymentUC.ListByOrder(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, "failed to list payments")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.PaymentsFromDomain(payments), 0, 0))
}

// ListActive lists the payments taken during the open session.
func (h *PaymentHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentUC.ListForActiveSession(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to list payments")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.PaymentsFromDomain(payments), 0, 0))
}
