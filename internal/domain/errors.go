package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Concrete errors below wrap one of them so callers can
// branch on the kind with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

var (
	// Register errors
	ErrNoOpenSession   = errors.New("no open register session")
	ErrSessionNotFound = fmt.Errorf("register session %w", ErrNotFound)
	ErrSessionConflict = errors.New("another register session was opened concurrently")

	// Ledger entry errors
	ErrEntryNotFound        = fmt.Errorf("ledger entry %w", ErrNotFound)
	ErrInvalidEntryType     = fmt.Errorf("%w: entry type must be deposit or withdrawal", ErrValidation)
	ErrEntryLinkedToPayment = fmt.Errorf("%w: entry was generated by a payment, delete the payment instead", ErrValidation)

	// Payment errors
	ErrPaymentNotFound      = fmt.Errorf("payment %w", ErrNotFound)
	ErrInvalidAmount        = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrInvalidPaymentMethod = fmt.Errorf("%w: payment method must be cash, card, check or transfer", ErrValidation)
	ErrAmountExceedsDue     = fmt.Errorf("%w: amount exceeds remaining due", ErrValidation)

	// Order errors
	ErrOrderNotFound    = fmt.Errorf("order %w", ErrNotFound)
	ErrInvalidDiscount  = fmt.Errorf("%w: discount must be a percentage between 0 and 100", ErrValidation)
	ErrInvalidQuantity  = fmt.Errorf("%w: quantity must be positive", ErrValidation)
	ErrInvalidPrice     = fmt.Errorf("%w: price cannot be negative", ErrValidation)
	ErrEmptyOrder       = fmt.Errorf("%w: order needs at least one product or service", ErrValidation)
	ErrOrderHasPayments = fmt.Errorf("%w: order has payments, delete them first", ErrValidation)

	// Catalog errors
	ErrClientNotFound  = fmt.Errorf("client %w", ErrNotFound)
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	ErrServiceNotFound = fmt.Errorf("service %w", ErrNotFound)
	ErrInvalidStock    = fmt.Errorf("%w: stock cannot be negative", ErrValidation)

	ErrRequiredField = fmt.Errorf("%w: required field missing", ErrValidation)
	ErrInUse         = fmt.Errorf("%w: resource is referenced by other records", ErrValidation)
)

// IsNotFound reports whether err is any of the not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is any of the validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
