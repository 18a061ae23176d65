package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/caisse/internal/adapter/http/dto"
	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

// EntryService defines the behavior needed by EntryHandler.
type EntryService interface {
	RecordEntry(ctx context.Context, input usecase.RecordEntryInput) (*domain.LedgerEntry, error)
	DeleteEntry(ctx context.Context, id string) error
	GetEntry(ctx context.Context, id string) (*domain.LedgerEntry, error)
	ListEntries(ctx context.Context, limit, offset int) ([]*domain.LedgerEntry, error)
	ListEntriesForSession(ctx context.Context, sessionID string) ([]*domain.LedgerEntry, error)
}

// EntryHandler handles register transactions (deposits and withdrawals).
type EntryHandler struct {
	entryUC EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC EntryService) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// Create records a deposit or withdrawal on the open session.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, err, "invalid transaction")
		return
	}

	entry, err := h.entryUC.RecordEntry(r.Context(), input)
	if err != nil {
		writeDomainError(w, err, "failed to record transaction")
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Get retrieves a transaction by ID.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	entry, err := h.entryUC.GetEntry(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get transaction")
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// List lists transactions across sessions.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	entries, err := h.entryUC.ListEntries(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err, "failed to list transactions")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.EntriesFromDomain(entries), limit, offset))
}

// ListBySession lists the transactions of one session in creation order.
func (h *EntryHandler) ListBySession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "caisseId")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing register ID", "")
		return
	}

	entries, err := h.entryUC.ListEntriesForSession(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err, "failed to list transactions")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.EntriesFromDomain(entries), 0, 0))
}

// Delete removes a transaction and reverses its effect on the balance.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	if err := h.entryUC.DeleteEntry(r.Context(), id); err != nil {
		writeDomainError(w, err, "failed to delete transaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
