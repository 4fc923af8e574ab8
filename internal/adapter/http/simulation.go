package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mesa-strategy/internal/core/domain"
)

// controlRequest is the body of a simulation control call.
type controlRequest struct {
	Action     string               `json:"action"`
	Parameters domain.ControlParams `json:"parameters"`
}

// handleControlSimulation drives a simulation strategy: jump_to, reset or
// set_scenario. Invalid actions, parameters or non-simulation ids produce
// HTTP 400; internal failures produce HTTP 500.
func (h *Handler) handleControlSimulation(w http.ResponseWriter, r *http.Request) {
	strategyID := chi.URLParam(r, "strategyID")

	var req controlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	result, err := h.svc.ControlSimulation(r.Context(), strategyID, req.Action, req.Parameters)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, result)
}

// handleSimulationState returns the current summary for a simulation
// strategy without mutating anything.
func (h *Handler) handleSimulationState(w http.ResponseWriter, r *http.Request) {
	strategyID := chi.URLParam(r, "strategyID")

	summary, err := h.svc.GetSimulationState(r.Context(), strategyID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, summary)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
