package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/caisse/internal/domain"
)

// CatalogUseCase handles clients, products and services.
type CatalogUseCase struct {
	clientRepo  ClientRepository
	productRepo ProductRepository
	serviceRepo ServiceRepository
	idGen       IDGenerator
}

// NewCatalogUseCase creates a new CatalogUseCase.
func NewCatalogUseCase(
	clientRepo ClientRepository,
	productRepo ProductRepository,
	serviceRepo ServiceRepository,
	idGen IDGenerator,
) *CatalogUseCase {
	return &CatalogUseCase{
		clientRepo:  clientRepo,
		productRepo: productRepo,
		serviceRepo: serviceRepo,
		idGen:       idGen,
	}
}

// ClientInput represents input for creating or updating a client.
type ClientInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// CreateClient creates a client.
func (uc *CatalogUseCase) CreateClient(ctx context.Context, input ClientInput) (*domain.Client, error) {
	now := time.Now().UTC()
	client := &domain.Client{ID: uc.idGen.Generate(), CreatedAt: now}
	input.applyTo(client, now)

	if err := client.Validate(); err != nil {
		return nil, err
	}
	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// UpdateClient replaces a client's fields.
func (uc *CatalogUseCase) UpdateClient(ctx context.Context, id string, input ClientInput) (*domain.Client, error) {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	input.applyTo(client, time.Now().UTC())

	if err := client.Validate(); err != nil {
		return nil, err
	}
	if err := uc.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (in ClientInput) applyTo(c *domain.Client, now time.Time) {
	c.Name = strings.TrimSpace(in.Name)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Email = strings.TrimSpace(in.Email)
	c.Address = strings.TrimSpace(in.Address)
	c.UpdatedAt = now
}

// GetClient retrieves a client by ID.
func (uc *CatalogUseCase) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return uc.clientRepo.GetByID(ctx, id)
}

// DeleteClient deletes a client.
func (uc *CatalogUseCase) DeleteClient(ctx context.Context, id string) error {
	return uc.clientRepo.Delete(ctx, id)
}

// ListClients lists clients by name.
func (uc *CatalogUseCase) ListClients(ctx context.Context, limit, offset int) ([]*domain.Client, error) {
	limit, offset = clampLimit(limit, offset)
	return uc.clientRepo.List(ctx, limit, offset)
}

// ProductInput represents input for creating or updating a product.
type ProductInput struct {
	Name      string
	Reference string
	Price     decimal.Decimal
	Stock     int64
}

// CreateProduct creates a product.
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{ID: uc.idGen.Generate(), CreatedAt: now}
	input.applyTo(product, now)

	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct replaces a product's fields.
func (uc *CatalogUseCase) UpdateProduct(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	input.applyTo(product, time.Now().UTC())

	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (in ProductInput) applyTo(p *domain.Product, now time.Time) {
	p.Name = strings.TrimSpace(in.Name)
	p.Reference = strings.TrimSpace(in.Reference)
	p.Price = in.Price
	p.Stock = in.Stock
	p.UpdatedAt = now
}

// GetProduct retrieves a product by ID.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

// DeleteProduct deletes a product.
func (uc *CatalogUseCase) DeleteProduct(ctx context.Context, id string) error {
	return uc.productRepo.Delete(ctx, id)
}

// ListProducts lists products by name.
func (uc *CatalogUseCase) ListProducts(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	limit, offset = clampLimit(limit, offset)
	return uc.productRepo.List(ctx, limit, offset)
}

// ServiceInput represents input for creating or updating a service.
type ServiceInput struct {
	Name  string
	Price decimal.Decimal
}

// CreateService creates a service.
func (uc *CatalogUseCase) CreateService(ctx context.Context, input ServiceInput) (*domain.Service, error) {
	now := time.Now().UTC()
	service := &domain.Service{
		ID:        uc.idGen.Generate(),
		Name:      strings.TrimSpace(input.Name),
		Price:     input.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.Validate(); err != nil {
		return nil, err
	}
	if err := uc.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// UpdateService replaces a service's fields.
func (uc *CatalogUseCase) UpdateService(ctx context.Context, id string, input ServiceInput) (*domain.Service, error) {
	service, err := uc.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	service.Name = strings.TrimSpace(input.Name)
	service.Price = input.Price
	service.UpdatedAt = time.Now().UTC()

	if err := service.Validate(); err != nil {
		return nil, err
	}
	if err := uc.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// GetService retrieves a service by ID.
func (uc *CatalogUseCase) GetService(ctx context.Context, id string) (*domain.Service, error) {
	return uc.serviceRepo.GetByID(ctx, id)
}

// DeleteService deletes a service.
func (uc *CatalogUseCase) DeleteService(ctx context.Context, id string) error {
	return uc.serviceRepo.Delete(ctx, id)
}

// ListServices lists services by name.
func (uc *CatalogUseCase) ListServices(ctx context.Context, limit, offset int) ([]*domain.Service, error) {
	limit, offset = clampLimit(limit, offset)
	return uc.serviceRepo.List(ctx, limit, offset)
}
