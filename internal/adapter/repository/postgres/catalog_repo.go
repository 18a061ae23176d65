package postgres

import (
	"context"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/infrastructure/postgres/generated"
)

// inUse maps a RESTRICT violation on delete to domain.ErrInUse.
func inUse(n int64, err, target error) error {
	if code, _ := pgErrorCode(err); code == pgErrForeignKeyViolation {
		return domain.ErrInUse
	}
	return affected(n, err, target)
}

// ClientRepository implements usecase.ClientRepository.
type ClientRepository struct {
	queries *generated.Queries
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(db DB) *ClientRepository {
	return &ClientRepository{queries: generated.New(db)}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	return r.queries.CreateClient(ctx, generated.CreateClientParams{
		ID:        client.ID,
		Name:      client.Name,
		Phone:     client.Phone,
		Email:     client.Email,
		Address:   client.Address,
		CreatedAt: timeToPgTimestamptz(client.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(client.UpdatedAt),
	})
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	row, err := r.queries.GetClientByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrClientNotFound)
	}
	return rowToClient(row), nil
}

func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	n, err := r.queries.UpdateClient(ctx, generated.UpdateClientParams{
		ID:        client.ID,
		Name:      client.Name,
		Phone:     client.Phone,
		Email:     client.Email,
		Address:   client.Address,
		UpdatedAt: timeToPgTimestamptz(client.UpdatedAt),
	})
	return affected(n, err, domain.ErrClientNotFound)
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	n, err := r.queries.DeleteClient(ctx, id)
	return inUse(n, err, domain.ErrClientNotFound)
}

func (r *ClientRepository) List(ctx context.Context, limit, offset int) ([]*domain.Client, error) {
	rows, err := r.queries.ListClients(ctx, generated.ListClientsParams{Limit: int32(limit), Offset: int32(offset)})
	if err != nil {
		return nil, err
	}

	clients := make([]*domain.Client, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, rowToClient(row))
	}
	return clients, nil
}

func rowToClient(row generated.Client) *domain.Client {
	return &domain.Client{
		ID:        row.ID,
		Name:      row.Name,
		Phone:     row.Phone,
		Email:     row.Email,
		Address:   row.Address,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

// ProductRepository implements usecase.ProductRepository.
type ProductRepository struct {
	queries *generated.Queries
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{queries: generated.New(db)}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.queries.CreateProduct(ctx, generated.CreateProductParams{
		ID:        product.ID,
		Name:      product.Name,
		Reference: product.Reference,
		Price:     decimalToNumeric(product.Price),
		Stock:     product.Stock,
		CreatedAt: timeToPgTimestamptz(product.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(product.UpdatedAt),
	})
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row, err := r.queries.GetProductByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrProductNotFound)
	}
	return rowToProduct(row), nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	n, err := r.queries.UpdateProduct(ctx, generated.UpdateProductParams{
		ID:        product.ID,
		Name:      product.Name,
		Reference: product.Reference,
		Price:     decimalToNumeric(product.Price),
		Stock:     product.Stock,
		UpdatedAt: timeToPgTimestamptz(product.UpdatedAt),
	})
	return affected(n, err, domain.ErrProductNotFound)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	n, err := r.queries.DeleteProduct(ctx, id)
	return inUse(n, err, domain.ErrProductNotFound)
}

func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	rows, err := r.queries.ListProducts(ctx, generated.ListProductsParams{Limit: int32(limit), Offset: int32(offset)})
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, rowToProduct(row))
	}
	return products, nil
}

func rowToProduct(row generated.Product) *domain.Product {
	return &domain.Product{
		ID:        row.ID,
		Name:      row.Name,
		Reference: row.Reference,
		Price:     numericToDecimal(row.Price),
		Stock:     row.Stock,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

// ServiceRepository implements usecase.ServiceRepository.
type ServiceRepository struct {
	queries *generated.Queries
}

// NewServiceRepository creates a new ServiceRepository.
func NewServiceRepository(db DB) *ServiceRepository {
	return &ServiceRepository{queries: generated.New(db)}
}

func (r *ServiceRepository) Create(ctx context.Context, service *domain.Service) error {
	return r.queries.CreateService(ctx, generated.CreateServiceParams{
		ID:        service.ID,
		Name:      service.Name,
		Price:     decimalToNumeric(service.Price),
		CreatedAt: timeToPgTimestamptz(service.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(service.UpdatedAt),
	})
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	row, err := r.queries.GetServiceByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrServiceNotFound)
	}
	return rowToService(row), nil
}

func (r *ServiceRepository) Update(ctx context.Context, service *domain.Service) error {
	n, err := r.queries.UpdateService(ctx, generated.UpdateServiceParams{
		ID:        service.ID,
		Name:      service.Name,
		Price:     decimalToNumeric(service.Price),
		UpdatedAt: timeToPgTimestamptz(service.UpdatedAt),
	})
	return affected(n, err, domain.ErrServiceNotFound)
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	n, err := r.queries.DeleteService(ctx, id)
	return inUse(n, err, domain.ErrServiceNotFound)
}

func (r *ServiceRepository) List(ctx context.Context, limit, offset int) ([]*domain.Service, error) {
	rows, err := r.queries.ListServices(ctx, generated.ListServicesParams{Limit: int32(limit), Offset: int32(offset)})
	if err != nil {
		return nil, err
	}

	services := make([]*domain.Service, 0, len(rows))
	for _, row := range rows {
		services = append(services, rowToService(row))
	}
	return services, nil
}

func rowToService(row generated.Service) *domain.Service {
	return &domain.Service{
		ID:        row.ID,
		Name:      row.Name,
		Price:     numericToDecimal(row.Price),
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
