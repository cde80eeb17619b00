package api

import (
	"context"
	"net/http"

	"github.com/okian/pacer/internal/domain/types"
)

// StatsProvider supplies the session snapshot.
type StatsProvider interface {
	Stats() types.SessionStats
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(p StatsProvider) *StatsHandler {
	return &StatsHandler{provider: p}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.provider.Stats())
}

// Resetter starts a new session on demand.
type Resetter interface {
	Reset(ctx context.Context)
}

// ResetHandler handles manual session resets.
type ResetHandler struct {
	resetter Resetter
}

// NewResetHandler creates a new reset handler.
func NewResetHandler(r Resetter) *ResetHandler {
	return &ResetHandler{resetter: r}
}

// HandleReset handles POST /reset requests.
func (h *ResetHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	h.resetter.Reset(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
