package memory

import (
	"context"
	"slices"

	"github.com/iho/caisse/internal/domain"
)

// ClientRepository implements usecase.ClientRepository.
type ClientRepository struct {
	store *Store
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(store *Store) *ClientRepository {
	return &ClientRepository{store: store}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	return r.store.write(nil, func() (func(), error) {
		return r.store.clients.put(client.ID, *client), nil
	})
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.clients.get(id)
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return &c, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	return r.store.write(nil, func() (func(), error) {
		if _, ok := r.store.clients.get(client.ID); !ok {
			return nil, domain.ErrClientNotFound
		}
		return r.store.clients.put(client.ID, *client), nil
	})
}

// Delete refuses to remove a client that still has orders.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	return r.store.write(nil, func() (func(), error) {
		if _, ok := r.store.clients.get(id); !ok {
			return nil, domain.ErrClientNotFound
		}
		if len(r.store.orders.scan(func(o orderRow) bool { return o.ClientID == id })) > 0 {
			return nil, domain.ErrInUse
		}
		return r.store.clients.remove(id), nil
	})
}

func (r *ClientRepository) List(ctx context.Context, limit, offset int) ([]*domain.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows := r.store.clients.scan(nil)
	sortByName(rows, func(c clientRow) string { return c.Name })

	out := make([]*domain.Client, 0, len(rows))
	for _, c := range page(rows, limit, offset) {
		out = append(out, &c)
	}
	return out, nil
}

// ProductRepository implements usecase.ProductRepository.
type ProductRepository struct {
	store *Store
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.store.write(nil, func() (func(), error) {
		return r.store.products.put(product.ID, *product), nil
	})
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.products.get(id)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	return r.store.write(nil, func() (func(), error) {
		if _, ok := r.store.products.get(product.ID); !ok {
			return nil, domain.ErrProductNotFound
		}
		return r.store.products.put(product.ID, *product), nil
	})
}

// Delete refuses to remove a product sold on an order.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.store.write(nil, func() (func(), error) {
		if _, ok := r.store.products.get(id); !ok {
			return nil, domain.ErrProductNotFound
		}
		used := r.store.orders.scan(func(o orderRow) bool {
			return slices.ContainsFunc(o.LineItems, func(li domain.LineItem) bool { return li.ProductID == id })
		})
		if len(used) > 0 {
			return nil, domain.ErrInUse
		}
		return r.store.products.remove(id), nil
	})
}

func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows := r.store.products.scan(nil)
	sortByName(rows, func(p productRow) string { return p.Name })

	out := make([]*domain.Product, 0, len(rows))
	for _, p := range page(rows, limit, offset) {
		out = append(out, &p)
	}
	return out, nil
}

// ServiceRepository implements usecase.ServiceRepository.
type ServiceRepository struct {
	store *Store
}

// NewServiceRepository creates a new ServiceRepository.
func NewServiceRepository(store *Store) *ServiceRepository {
	return &ServiceRepository{store: store}
}

func (r *ServiceRepository) Create(ctx context.Context, service *domain.Service) error {
	return r.store.write(nil, func() (func(), error) {
		return r.store.services.put(service.ID, *service), nil
	})
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.services.get(id)
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return &s, nil
}

func (r *ServiceRepository) Update(ctx context.Context, service *domain.Service) error {
	return r.store.write(nil, func() (func(), error) {
		if _, ok := r.store.services.get(service.ID); !ok {
			return nil, domain.ErrServiceNotFound
		}
		return r.store.services.put(service.ID, *service), nil
	})
}

// Delete refuses to remove a service sold on an order.
func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	return r.store.write(nil, func() (func(), error) {
		if _, ok := r.store.services.get(id); !ok {
			return nil, domain.ErrServiceNotFound
		}
		used := r.store.orders.scan(func(o orderRow) bool {
			return slices.ContainsFunc(o.ServiceItems, func(si domain.ServiceItem) bool { return si.ServiceID == id })
		})
		if len(used) > 0 {
			return nil, domain.ErrInUse
		}
		return r.store.services.remove(id), nil
	})
}

func (r *ServiceRepository) List(ctx context.Context, limit, offset int) ([]*domain.Service, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows := r.store.services.scan(nil)
	sortByName(rows, func(s serviceRow) string { return s.Name })

	out := make([]*domain.Service, 0, len(rows))
	for _, s := range page(rows, limit, offset) {
		out = append(out, &s)
	}
	return out, nil
}
