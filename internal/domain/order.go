package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementEpsilon is the remaining due under which an order counts as paid.
var SettlementEpsilon = decimal.RequireFromString("0.001")

var hundred = decimal.NewFromInt(100)

// LineItem is a product sold on an order. DiscountPercent applies to
// UnitPrice x Quantity.
type LineItem struct {
	ProductID       string
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	Quantity        int64
}

// Total is the discounted line amount.
func (l LineItem) Total() decimal.Decimal {
	gross := l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
	return applyPercent(gross, l.DiscountPercent)
}

// ServiceItem is a service sold on an order.
type ServiceItem struct {
	ServiceID       string
	Price           decimal.Decimal
	DiscountPercent decimal.Decimal
}

// Total is the discounted service amount.
func (s ServiceItem) Total() decimal.Decimal {
	return applyPercent(s.Price, s.DiscountPercent)
}

// Order ("commande") is a sale made of product and service lines.
// Every discount on an order is a percentage in [0, 100].
type Order struct {
	CreatedAt             time.Time
	UpdatedAt             time.Time
	ID                    string
	ClientID              string
	LineItems             []LineItem
	ServiceItems          []ServiceItem
	GlobalDiscountPercent decimal.Decimal
	IsPaid                bool
}

// Validate checks client, lines and discounts.
func (o *Order) Validate() error {
	if o.ClientID == "" {
		return ErrRequiredField
	}
	if len(o.LineItems) == 0 && len(o.ServiceItems) == 0 {
		return ErrEmptyOrder
	}
	if err := ValidateDiscountPercent(o.GlobalDiscountPercent); err != nil {
		return err
	}

	for _, l := range o.LineItems {
		if l.ProductID == "" {
			return ErrRequiredField
		}
		if l.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if l.UnitPrice.IsNegative() {
			return ErrInvalidPrice
		}
		if err := ValidateDiscountPercent(l.DiscountPercent); err != nil {
			return err
		}
	}

	for _, s := range o.ServiceItems {
		if s.ServiceID == "" {
			return ErrRequiredField
		}
		if s.Price.IsNegative() {
			return ErrInvalidPrice
		}
		if err := ValidateDiscountPercent(s.DiscountPercent); err != nil {
			return err
		}
	}

	return nil
}

// Subtotal sums discounted product and service lines.
func (o *Order) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range o.LineItems {
		subtotal = subtotal.Add(l.Total())
	}
	for _, s := range o.ServiceItems {
		subtotal = subtotal.Add(s.Total())
	}
	return subtotal
}

// Total is the subtotal after the global discount.
func (o *Order) Total() decimal.Decimal {
	return applyPercent(o.Subtotal(), o.GlobalDiscountPercent)
}

// RemainingDue is Total minus payments. Negative means overpaid.
func (o *Order) RemainingDue(payments []*Payment) decimal.Decimal {
	return o.Total().Sub(TotalPaid(payments))
}

// RecomputeStatus sets IsPaid from the payments and reports whether it changed.
func (o *Order) RecomputeStatus(payments []*Payment) bool {
	paid := IsSettled(o.RemainingDue(payments))
	changed := paid != o.IsPaid
	o.IsPaid = paid
	return changed
}

// IsSettled reports whether a remaining due counts as fully paid.
func IsSettled(remainingDue decimal.Decimal) bool {
	return remainingDue.LessThanOrEqual(SettlementEpsilon)
}

// OrderTotals is the invoice view of an order.
type OrderTotals struct {
	Subtotal       decimal.Decimal
	GlobalDiscount decimal.Decimal
	Total          decimal.Decimal
	Paid           decimal.Decimal
	RemainingDue   decimal.Decimal
}

// ComputeTotals derives every invoice figure from the order and its payments.
func ComputeTotals(o *Order, payments []*Payment) OrderTotals {
	subtotal := o.Subtotal()
	total := o.Total()
	paid := TotalPaid(payments)

	return OrderTotals{
		Subtotal:       subtotal,
		GlobalDiscount: subtotal.Sub(total),
		Total:          total,
		Paid:           paid,
		RemainingDue:   total.Sub(paid),
	}
}

func applyPercent(amount, percent decimal.Decimal) decimal.Decimal {
	if percent.IsZero() {
		return amount
	}
	return amount.Mul(hundred.Sub(percent)).Div(hundred)
}
