package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mesa-strategy/internal/core/domain"
)

// registerMediaBuyRequest is the body for registering a tracked media buy.
type registerMediaBuyRequest struct {
	MediaBuyID string               `json:"media_buy_id"`
	State      domain.MediaBuyState `json:"state"`
}

// handleRegisterMediaBuy starts tracking a media buy under a simulation
// strategy. The initial state map is arbitrary; created_at is stamped
// with the simulated time by the engine.
func (h *Handler) handleRegisterMediaBuy(w http.ResponseWriter, r *http.Request) {
	strategyID := chi.URLParam(r, "strategyID")

	var req registerMediaBuyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.MediaBuyID == "" {
		http.Error(w, "missing media_buy_id", http.StatusBadRequest)
		return
	}

	summary, err := h.svc.RegisterMediaBuy(r.Context(), strategyID, req.MediaBuyID, req.State)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, summary)
}

// handleUpdateMediaBuy merges a partial state update into a tracked media
// buy. Updates for untracked ids are accepted and ignored.
func (h *Handler) handleUpdateMediaBuy(w http.ResponseWriter, r *http.Request) {
	strategyID := chi.URLParam(r, "strategyID")
	mediaBuyID := chi.URLParam(r, "mediaBuyID")

	var updates domain.MediaBuyState
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	summary, err := h.svc.UpdateMediaBuyState(r.Context(), strategyID, mediaBuyID, updates)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, summary)
}
