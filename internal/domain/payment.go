package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment was tendered.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodCheck    PaymentMethod = "check"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

var paymentMethodAliases = map[string]PaymentMethod{
	"cash":     PaymentMethodCash,
	"especes":  PaymentMethodCash,
	"espèces":  PaymentMethodCash,
	"card":     PaymentMethodCard,
	"carte":    PaymentMethodCard,
	"check":    PaymentMethodCheck,
	"cheque":   PaymentMethodCheck,
	"chèque":   PaymentMethodCheck,
	"transfer": PaymentMethodTransfer,
	"virement": PaymentMethodTransfer,
}

// ParsePaymentMethod is case-insensitive and accepts the French labels.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m, ok := paymentMethodAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", ErrInvalidPaymentMethod
	}
	return m, nil
}

// IsValid reports whether m is a known method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodCheck, PaymentMethodTransfer:
		return true
	}
	return false
}

// IsCash reports whether the payment moves money through the register.
func (m PaymentMethod) IsCash() bool {
	return m == PaymentMethodCash
}

// Payment is an amount applied against an order's due balance.
type Payment struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	SessionID *string
	ID        string
	OrderID   string
	Method    PaymentMethod
	Amount    decimal.Decimal
}

// Validate checks amount and method.
func (p *Payment) Validate() error {
	if err := ValidateAmount(p.Amount); err != nil {
		return err
	}
	if !p.Method.IsValid() {
		return ErrInvalidPaymentMethod
	}
	return nil
}

// TotalPaid sums payment amounts.
func TotalPaid(payments []*Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}
