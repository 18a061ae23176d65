package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/caisse/internal/adapter/http/dto"
	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

// CatalogService defines the behavior needed by CatalogHandler.
type CatalogService interface {
	CreateClient(ctx context.Context, input usecase.ClientInput) (*domain.Client, error)
	UpdateClient(ctx context.Context, id string, input usecase.ClientInput) (*domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	DeleteClient(ctx context.Context, id string) error
	ListClients(ctx context.Context, limit, offset int) ([]*domain.Client, error)

	CreateProduct(ctx context.Context, input usecase.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, input usecase.ProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context, limit, offset int) ([]*domain.Product, error)

	CreateService(ctx context.Context, input usecase.ServiceInput) (*domain.Service, error)
	UpdateService(ctx context.Context, id string, input usecase.ServiceInput) (*domain.Service, error)
	GetService(ctx context.Context, id string) (*domain.Service, error)
	DeleteService(ctx context.Context, id string) error
	ListServices(ctx context.Context, limit, offset int) ([]*domain.Service, error)
}

// CatalogHandler handles clients, products ("produits") and services.
type CatalogHandler struct {
	catalogUC CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogUC CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogUC: catalogUC}
}

// urlID reads the {id} parameter, answering 400 when it is missing.
func urlID(w http.ResponseWriter, r *http.Request, what string) (string, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing "+what+" ID", "")
		return "", false
	}
	return id, true
}

// CreateClient creates a client.
func (h *CatalogHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req dto.ClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, err, "invalid client")
		return
	}

	item, err := h.catalogUC.CreateClient(r.Context(), input)
	if err != nil {
		writeDomainError(w, err, "failed to create client")
		return
	}

	writeJSON(w, http.StatusCreated, dto.ClientFromDomain(item))
}

// UpdateClient replaces a client.
func (h *CatalogHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "client")
	if !ok {
		return
	}

	var req dto.ClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, err, "invalid client")
		return
	}

	item, err := h.catalogUC.UpdateClient(r.Context(), id, input)
	if err != nil {
		writeDomainError(w, err, "failed to update client")
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientFromDomain(item))
}

// GetClient retrieves a client by ID.
func (h *CatalogHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "client")
	if !ok {
		return
	}

	item, err := h.catalogUC.GetClient(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get client")
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientFromDomain(item))
}

// DeleteClient deletes a client no order refers to.
func (h *CatalogHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "client")
	if !ok {
		return
	}

	if err := h.catalogUC.DeleteClient(r.Context(), id); err != nil {
		writeDomainError(w, err, "failed to delete client")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListClients lists clients by name.
func (h *CatalogHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	items, err := h.catalogUC.ListClients(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err, "failed to list clients")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.ClientsFromDomain(items), limit, offset))
}

// CreateProduct creates a product.
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, err, "invalid product")
		return
	}

	item, err := h.catalogUC.CreateProduct(r.Context(), input)
	if err != nil {
		writeDomainError(w, err, "failed to create product")
		return
	}

	writeJSON(w, http.StatusCreated, dto.ProductFromDomain(item))
}

// UpdateProduct replaces a product.
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "product")
	if !ok {
		return
	}

	var req dto.ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, err, "invalid product")
		return
	}

	item, err := h.catalogUC.UpdateProduct(r.Context(), id, input)
	if err != nil {
		writeDomainError(w, err, "failed to update product")
		return
	}

	writeJSON(w, http.StatusOK, dto.ProductFromDomain(item))
}

// GetProduct retrieves a product by ID.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "product")
	if !ok {
		return
	}

	item, err := h.catalogUC.GetProduct(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get product")
		return
	}

	writeJSON(w, http.StatusOK, dto.ProductFromDomain(item))
}

// DeleteProduct deletes a product no order refers to.
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "product")
	if !ok {
		return
	}

	if err := h.catalogUC.DeleteProduct(r.Context(), id); err != nil {
		writeDomainError(w, err, "failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListProducts lists products by name.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	items, err := h.catalogUC.ListProducts(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err, "failed to list products")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.ProductsFromDomain(items), limit, offset))
}

// CreateService creates a service.
func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req dto.ServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, err, "invalid service")
		return
	}

	item, err := h.catalogUC.CreateService(r.Context(), input)
	if err != nil {
		writeDomainError(w, err, "failed to create service")
		return
	}

	writeJSON(w, http.StatusCreated, dto.ServiceFromDomain(item))
}

// UpdateService replaces a service.
func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "service")
	if !ok {
		return
	}

	var req dto.ServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, err, "invalid service")
		return
	}

	item, err := h.catalogUC.UpdateService(r.Context(), id, input)
	if err != nil {
		writeDomainError(w, err, "failed to update service")
		return
	}

	writeJSON(w, http.StatusOK, dto.ServiceFromDomain(item))
}

// GetService retrieves a service by ID.
func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "service")
	if !ok {
		return
	}

	item, err := h.catalogUC.GetService(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get service")
		return
	}

	writeJSON(w, http.StatusOK, dto.ServiceFromDomain(item))
}

// DeleteService deletes a service no order refers to.
func (h *CatalogHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "service")
	if !ok {
		return
	}

	if err := h.catalogUC.DeleteService(r.Context(), id); err != nil {
		writeDomainError(w, err, "failed to delete service")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListServices lists services by name.
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	items, err := h.catalogUC.ListServices(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err, "failed to list services")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.ServicesFromDomain(items), limit, offset))
}
