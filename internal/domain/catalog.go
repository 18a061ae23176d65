package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is a customer of the shop.
type Client struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
}

// Validate checks required fields.
func (c *Client) Validate() error {
	if err := ValidateName(c.Name); err != nil {
		return err
	}
	if c.Email != "" {
		return ValidateEmail(c.Email)
	}
	return nil
}

// Product is a stocked item.
type Product struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	ID        string
	Name      string
	Reference string
	Price     decimal.Decimal
	Stock     int64
}

// Validate checks required fields.
func (p *Product) Validate() error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

// Service is a non-stocked item sold by the shop.
type Service struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	ID        string
	Name      string
	Price     decimal.Decimal
}

// Validate checks required fields.
func (s *Service) Validate() error {
	if err := ValidateName(s.Name); err != nil {
		return err
	}
	if s.Price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}
