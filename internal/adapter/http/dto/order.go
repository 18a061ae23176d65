package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

// LineItemRequest is a product line. A missing unit_price takes the
// catalog price.
type LineItemRequest struct {
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	ProductID       string           `json:"product_id"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	Quantity        int64            `json:"quantity"`
}

// ServiceItemRequest is a service line. A missing price takes the catalog price.
type ServiceItemRequest struct {
	Price           *decimal.Decimal `json:"price,omitempty"`
	ServiceID       string           `json:"service_id"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
}

// OrderRequest is the body of POST /commandes and PUT /commandes/{id}.
type OrderRequest struct {
	ClientID              string               `json:"client_id"`
	LineItems             []LineItemRequest    `json:"line_items"`
	ServiceItems          []ServiceItemRequest `json:"service_items"`
	GlobalDiscountPercent decimal.Decimal      `json:"global_discount_percent"`
}

// ToUseCaseInput checks the shape of the request and converts it.
// Catalog references are resolved by the use case.
func (r *OrderRequest) ToUseCaseInput() (usecase.OrderInput, error) {
	input := usecase.OrderInput{
		ClientID:              strings.TrimSpace(r.ClientID),
		GlobalDiscountPercent: r.GlobalDiscountPercent,
	}
	if input.ClientID == "" {
		return usecase.OrderInput{}, domain.ErrRequiredField
	}
	if len(r.LineItems) == 0 && len(r.ServiceItems) == 0 {
		return usecase.OrderInput{}, domain.ErrEmptyOrder
	}
	if err := domain.ValidateDiscountPercent(r.GlobalDiscountPercent); err != nil {
		return usecase.OrderInput{}, err
	}

	for _, l := range r.LineItems {
		if l.ProductID == "" {
			return usecase.OrderInput{}, domain.ErrRequiredField
		}
		if l.Quantity <= 0 {
			return usecase.OrderInput{}, domain.ErrInvalidQuantity
		}
		input.LineItems = append(input.LineItems, usecase.LineItemInput{
			ProductID:       l.ProductID,
			UnitPrice:       l.UnitPrice,
			Quantity:        l.Quantity,
			DiscountPercent: l.DiscountPercent,
		})
	}

	for _, s := range r.ServiceItems {
		if s.ServiceID == "" {
			return usecase.OrderInput{}, domain.ErrRequiredField
		}
		input.ServiceItems = append(input.ServiceItems, usecase.ServiceItemInput{
			ServiceID:       s.ServiceID,
			Price:           s.Price,
			DiscountPercent: s.DiscountPercent,
		})
	}

	return input, nil
}

// LineItemResponse is a product line with its computed total.
type LineItemResponse struct {
	ProductID       string          `json:"product_id"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Total           decimal.Decimal `json:"total"`
	Quantity        int64           `json:"quantity"`
}

// ServiceItemResponse is a service line with its computed total.
type ServiceItemResponse struct {
	ServiceID       string          `json:"service_id"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Total           decimal.Decimal `json:"total"`
}

// TotalsResponse holds the computed amounts of an order.
type TotalsResponse struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	GlobalDiscount decimal.Decimal `json:"global_discount"`
	Total          decimal.Decimal `json:"total"`
	Paid           decimal.Decimal `json:"paid"`
	RemainingDue   decimal.Decimal `json:"remaining_due"`
}

// OrderResponse represents an order ("commande").
type OrderResponse struct {
	CreatedAt             time.Time             `json:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at"`
	Totals                *TotalsResponse       `json:"totals,omitempty"`
	ID                    string                `json:"id"`
	ClientID              string                `json:"client_id"`
	LineItems             []LineItemResponse    `json:"line_items"`
	ServiceItems          []ServiceItemResponse `json:"service_items"`
	Payments              []*PaymentResponse    `json:"payments,omitempty"`
	GlobalDiscountPercent decimal.Decimal       `json:"global_discount_percent"`
	IsPaid                bool                  `json:"is_paid"`
}

// OrderFromDomain converts a bare order. Totals are filled from the items;
// payments are not known here.
func OrderFromDomain(o *domain.Order) *OrderResponse {
	lines := make([]LineItemResponse, len(o.LineItems))
	for i, l := range o.LineItems {
		lines[i] = LineItemResponse{
			ProductID:       l.ProductID,
			UnitPrice:       l.UnitPrice,
			Quantity:        l.Quantity,
			DiscountPercent: l.DiscountPercent,
			Total:           l.Total(),
		}
	}

	services := make([]ServiceItemResponse, len(o.ServiceItems))
	for i, s := range o.ServiceItems {
		services[i] = ServiceItemResponse{
			ServiceID:       s.ServiceID,
			Price:           s.Price,
			DiscountPercent: s.DiscountPercent,
			Total:           s.Total(),
		}
	}

	return &OrderResponse{
		ID:                    o.ID,
		ClientID:              o.ClientID,
		LineItems:             lines,
		ServiceItems:          services,
		GlobalDiscountPercent: o.GlobalDiscountPercent,
		IsPaid:                o.IsPaid,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
}

// OrdersFromDomain converts domain orders to responses.
func OrdersFromDomain(orders []*domain.Order) []*OrderResponse {
	return mapSlice(orders, OrderFromDomain)
}

// OrderViewFromUseCase converts an order with its payments and totals.
func OrderViewFromUseCase(v *usecase.OrderView) *OrderResponse {
	resp := OrderFromDomain(v.Order)
	resp.Payments = PaymentsFromDomain(v.Payments)
	resp.Totals = &TotalsResponse{
		Subtotal:       v.Totals.Subtotal,
		GlobalDiscount: v.Totals.GlobalDiscount,
		Total:          v.Totals.Total,
		Paid:           v.Totals.Paid,
		RemainingDue:   v.Totals.RemainingDue,
	}
	return resp
}

// InvoiceResponse carries the data an invoice ("facture") is rendered from.
type InvoiceResponse struct {
	IssuedAt time.Time       `json:"issued_at"`
	Client   *ClientResponse `json:"client"`
	Order    *OrderResponse  `json:"commande"`
	Currency string          `json:"currency"`
}

// InvoiceFromUseCase converts an invoice.
func InvoiceFromUseCase(inv *usecase.Invoice, currency string) *InvoiceResponse {
	return &InvoiceResponse{
		IssuedAt: inv.IssuedAt,
		Client:   ClientFromDomain(inv.Client),
		Order:    OrderViewFromUseCase(&inv.OrderView),
		Currency: currency,
	}
}
