package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

// CreatePaymentRequest is the body of POST /paiements.
type CreatePaymentRequest struct {
	Commande string          `json:"commande"`
	Methode  string          `json:"methode"`
	Montant  decimal.Decimal `json:"montant"`
}

// ToUseCaseInput validates the request and converts it to use case input.
func (r *CreatePaymentRequest) ToUseCaseInput() (usecase.RecordPaymentInput, error) {
	orderID := strings.TrimSpace(r.Commande)
	if orderID == "" {
		return usecase.RecordPaymentInput{}, domain.ErrRequiredField
	}
	method, err := domain.ParsePaymentMethod(r.Methode)
	if err != nil {
		return usecase.RecordPaymentInput{}, err
	}
	if err := domain.ValidateAmount(r.Montant); err != nil {
		return usecase.RecordPaymentInput{}, err
	}

	return usecase.RecordPaymentInput{
		OrderID: orderID,
		Method:  method,
		Amount:  r.Montant,
	}, nil
}

// UpdatePaymentRequest is the body of PUT /paiements/{id}.
type UpdatePaymentRequest struct {
	Methode string          `json:"methode"`
	Montant decimal.Decimal `json:"montant"`
}

// ToUseCaseInput validates the request and converts it to use case input.
func (r *UpdatePaymentRequest) ToUseCaseInput(id string) (usecase.UpdatePaymentInput, error) {
	method, err := domain.ParsePaymentMethod(r.Methode)
	if err != nil {
		return usecase.UpdatePaymentInput{}, err
	}
	if err := domain.ValidateAmount(r.Montant); err != nil {
		return usecase.UpdatePaymentInput{}, err
	}

	return usecase.UpdatePaymentInput{
		ID:     id,
		Method: method,
		Amount: r.Montant,
	}, nil
}

// PaymentResponse represents a payment.
type PaymentResponse struct {
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	SessionID *string              `json:"caisse_id,omitempty"`
	ID        string               `json:"id"`
	OrderID   string               `json:"commande"`
	Methode   domain.PaymentMethod `json:"methode"`
	Montant   decimal.Decimal      `json:"montant"`
}

// PaymentFromDomain converts a domain payment to a response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Montant:   p.Amount,
		Methode:   p.Method,
		SessionID: p.SessionID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// PaymentsFromDomain converts domain payments to responses.
func PaymentsFromDomain(payments []*domain.Payment) []*PaymentResponse {
	return mapSlice(payments, PaymentFromDomain)
}
