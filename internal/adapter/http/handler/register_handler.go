package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/caisse/internal/adapter/http/dto"
	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

// RegisterService defines the behavior needed by RegisterHandler.
type RegisterService interface {
	OpenSession(ctx context.Context) (*domain.RegisterSession, error)
	CloseSession(ctx context.Context) (*domain.RegisterSession, error)
	GetActiveSession(ctx context.Context) (*domain.RegisterSession, error)
	GetLatestSession(ctx context.Context) (*domain.RegisterSession, error)
	ListSessions(ctx context.Context, limit, offset int) ([]*domain.RegisterSession, error)
}

// ReconciliationService defines the checks exposed under /caisse.
type ReconciliationService interface {
	ReconcileSession(ctx context.Context, sessionID string) (*usecase.ReconciliationResult, error)
	GenerateReconciliationReport(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// RegisterHandler handles the cash register ("caisse") endpoints.
type RegisterHandler struct {
	registerUC       RegisterService
	reconciliationUC ReconciliationService
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(registerUC RegisterService, reconciliationUC ReconciliationService) *RegisterHandler {
	return &RegisterHandler{registerUC: registerUC, reconciliationUC: reconciliationUC}
}

// Latest returns the most recently opened session, open or closed.
func (h *RegisterHandler) Latest(w http.ResponseWriter, r *http.Request) {
	session, err := h.registerUC.GetLatestSession(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to get register")
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionFromDomain(session))
}

// Active returns the open session.
func (h *RegisterHandler) Active(w http.ResponseWriter, r *http.Request) {
	session, err := h.registerUC.GetActiveSession(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to get open register")
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionFromDomain(session))
}

// Open opens a new session carrying the previous closing balance forward.
func (h *RegisterHandler) Open(w http.ResponseWriter, r *http.Request) {
	session, err := h.registerUC.OpenSession(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to open register")
		return
	}

	writeJSON(w, http.StatusCreated, dto.SessionFromDomain(session))
}

// Close closes the open session.
func (h *RegisterHandler) Close(w http.ResponseWriter, r *http.Request) {
	session, err := h.registerUC.CloseSession(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to close register")
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionFromDomain(session))
}

// List lists sessions, most recent first.
func (h *RegisterHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	sessions, err := h.registerUC.ListSessions(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err, "failed to list registers")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.SessionsFromDomain(sessions), limit, offset))
}

// Reconcile recomputes one session's balance from its entries.
func (h *RegisterHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing register ID", "")
		return
	}

	result, err := h.reconciliationUC.ReconcileSession(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to reconcile register")
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromUseCase(result))
}

// Consistency reconciles every session and checks the ledger totals.
func (h *RegisterHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.GenerateReconciliationReport(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to check consistency")
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromUseCase(report))
}
