package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/caisse/internal/adapter/http/dto"
	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

func TestPaymentHandler_Create(t *testing.T) {
	sessionID := "s1"
	var captured usecase.RecordPaymentInput
	h := NewPaymentHandler(&paymentServiceStub{
		recordFn: func(ctx context.Context, input usecase.RecordPaymentInput) (*domain.Payment, error) {
			captured = input
			return &domain.Payment{
				ID:        "p1",
				OrderID:   input.OrderID,
				Amount:    input.Amount,
				Method:    input.Method,
				SessionID: &sessionID,
			}, nil
		},
	})

	rr := serve(t, http.MethodPost, "/paiements", "/paiements",
		`{"commande":"o1","montant":"40","methode":"especes"}`, h.Create)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, domain.PaymentMethodCash, captured.Method)
	assert.Equal(t, "o1", captured.OrderID)

	resp := decode[dto.PaymentResponse](t, rr)
	assert.Equal(t, "o1", resp.OrderID)
	require.NotNil(t, resp.SessionID)
	assert.Equal(t, "s1", *resp.SessionID)
}

func TestPaymentHandler_CreateErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"missing order", `{"montant":"10","methode":"card"}`, nil, http.StatusBadRequest},
		{"bad method", `{"commande":"o1","montant":"10","methode":"bitcoin"}`, nil, http.StatusBadRequest},
		{"sub-cent amount", `{"commande":"o1","montant":"10.005","methode":"card"}`, nil, http.StatusBadRequest},
		{"order not found", `{"commande":"o1","montant":"10","methode":"card"}`, domain.ErrOrderNotFound, http.StatusNotFound},
		{"cash without session", `{"commande":"o1","montant":"10","methode":"cash"}`, domain.ErrNoOpenSession, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPaymentHandler(&paymentServiceStub{
				recordFn: func(ctx context.Context, input usecase.RecordPaymentInput) (*domain.Payment, error) {
					return nil, tt.err
				},
			})

			rr := serve(t, http.MethodPost, "/paiements", "/paiements", tt.body, h.Create)
			assert.Equal(t, tt.status, rr.Code)
		})
	}
}

func TestPaymentHandler_Update(t *testing.T) {
	h := NewPaymentHandler(&paymentServiceStub{
		updateFn: func(ctx context.Context, input usecase.UpdatePaymentInput) (*domain.Payment, error) {
			assert.Equal(t, "p1", input.ID)
			if input.Amount.GreaterThan(decimal.NewFromInt(100)) {
				return nil, domain.ErrAmountExceedsDue
			}
			return &domain.Payment{ID: input.ID, Amount: input.Amount, Method: input.Method}, nil
		},
	})

	rr := serve(t, http.MethodPut, "/paiements/{id}", "/paiements/p1", `{"montant":"60","methode":"carte"}`, h.Update)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.PaymentMethodCard, decode[dto.PaymentResponse](t, rr).Methode)

	rr = serve(t, http.MethodPut, "/paiements/{id}", "/paiements/p1", `{"montant":"160","methode":"card"}`, h.Update)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPaymentHandler_DeleteAndList(t *testing.T) {
	h := NewPaymentHandler(&paymentServiceStub{
		deleteFn: func(ctx context.Context, id string) error { return nil },
		byOrderFn: func(ctx context.Context, orderID string) ([]*domain.Payment, error) {
			return []*domain.Payment{{ID: "p1", OrderID: orderID}}, nil
		},
		forActiveF: func(ctx context.Context) ([]*domain.Payment, error) {
			return nil, domain.ErrNoOpenSession
		},
	})

	rr := serve(t, http.MethodDelete, "/paiements/{id}", "/paiements/p1", nil, h.Delete)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(t, http.MethodGet, "/paiements/commande/{id}", "/paiements/commande/o7", nil, h.ListByOrder)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[dto.ListResponse[dto.PaymentResponse]](t, rr)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "o7", resp.Items[0].OrderID)

	rr = serve(t, http.MethodGet, "/paiements", "/paiements", nil, h.ListActive)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
