package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

// ClientRequest is the body of POST/PUT /clients.
type ClientRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// ToUseCaseInput converts to use case input.
func (r *ClientRequest) ToUseCaseInput() (usecase.ClientInput, error) {
	if strings.TrimSpace(r.Name) == "" {
		return usecase.ClientInput{}, domain.ErrRequiredField
	}
	return usecase.ClientInput{
		Name:    strings.TrimSpace(r.Name),
		Phone:   strings.TrimSpace(r.Phone),
		Email:   strings.TrimSpace(r.Email),
		Address: strings.TrimSpace(r.Address),
	}, nil
}

// ClientResponse represents a client.
type ClientResponse struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
}

// ClientFromDomain converts a domain client to a response.
func ClientFromDomain(c *domain.Client) *ClientResponse {
	if c == nil {
		return nil
	}
	return &ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ClientsFromDomain converts domain clients to responses.
func ClientsFromDomain(clients []*domain.Client) []*ClientResponse {
	return mapSlice(clients, ClientFromDomain)
}

// ProductRequest is the body of POST/PUT /produits.
type ProductRequest struct {
	Name      string          `json:"name"`
	Reference string          `json:"reference"`
	Price     decimal.Decimal `json:"price"`
	Stock     int64           `json:"stock"`
}

// ToUseCaseInput converts to use case input.
func (r *ProductRequest) ToUseCaseInput() (usecase.ProductInput, error) {
	if strings.TrimSpace(r.Name) == "" {
		return usecase.ProductInput{}, domain.ErrRequiredField
	}
	return usecase.ProductInput{
		Name:      strings.TrimSpace(r.Name),
		Reference: strings.TrimSpace(r.Reference),
		Price:     r.Price,
		Stock:     r.Stock,
	}, nil
}

// ProductResponse represents a product.
type ProductResponse struct {
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Reference string          `json:"reference,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Stock     int64           `json:"stock"`
}

// ProductFromDomain converts a domain product to a response.
func ProductFromDomain(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Reference: p.Reference,
		Price:     p.Price,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ProductsFromDomain converts domain products to responses.
func ProductsFromDomain(products []*domain.Product) []*ProductResponse {
	return mapSlice(products, ProductFromDomain)
}

// ServiceRequest is the body of POST/PUT /services.
type ServiceRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ToUseCaseInput converts to use case input.
func (r *ServiceRequest) ToUseCaseInput() (usecase.ServiceInput, error) {
	if strings.TrimSpace(r.Name) == "" {
		return usecase.ServiceInput{}, domain.ErrRequiredField
	}
	return usecase.ServiceInput{Name: strings.TrimSpace(r.Name), Price: r.Price}, nil
}

// ServiceResponse represents a service.
type ServiceResponse struct {
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// ServiceFromDomain converts a domain service to a response.
func ServiceFromDomain(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:        s.ID,
		Name:      s.Name,
		Price:     s.Price,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ServicesFromDomain converts domain services to responses.
func ServicesFromDomain(services []*domain.Service) []*ServiceResponse {
	return mapSlice(services, ServiceFromDomain)
}
