package httpadapter

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mesa-strategy/internal/core/domain"
)

// strategyResponse is the JSON shape of a resolved strategy.
type strategyResponse struct {
	ID          string         `json:"strategy_id"`
	Scope       string         `json:"scope,omitempty"`
	Kind        domain.Kind    `json:"kind"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Config      map[string]any `json:"config"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// handleGetStrategy resolves a strategy id, creating a default record
// unless the caller passes ?create=false. Unknown ids with creation
// disabled produce HTTP 404.
func (h *Handler) handleGetStrategy(w http.ResponseWriter, r *http.Request) {
	strategyID := chi.URLParam(r, "strategyID")
	createIfMissing := r.URL.Query().Get("create") != "false"

	sc, err := h.svc.GetOrCreateStrategy(r.Context(), strategyID, createIfMissing)
	if err != nil {
		h.writeError(w, err)
		return
	}
	s := sc.Strategy()
	h.writeJSON(w, strategyResponse{
		ID:          s.ID,
		Scope:       s.Scope,
		Kind:        s.Kind,
		Name:        s.Name,
		Description: s.Description,
		Config:      s.Config,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	})
}
