package handler

import (
	"context"
	"net/http"

	"github.com/iho/caisse/internal/usecase"
)

// StatsService defines the behavior needed by StatsHandler.
type StatsService interface {
	GetStats(ctx context.Context, days int) (*usecase.Stats, error)
}

// StatsHandler serves the dashboard figures.
type StatsHandler struct {
	statsUC StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsUC StatsService) *StatsHandler {
	return &StatsHandler{statsUC: statsUC}
}

// Get returns revenue, order counts and the register balance for the last
// ?days= days.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	days := parseIntQuery(r, "days", usecase.DefaultStatsDays)

	stats, err := h.statsUC.GetStats(r.Context(), days)
	if err != nil {
		writeDomainError(w, err, "failed to compute stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
