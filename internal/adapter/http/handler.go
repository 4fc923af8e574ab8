package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mesa-strategy/internal/core/domain"
	"mesa-strategy/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP: a thin translation between JSON requests and the StrategyUseCase
// port. Routes are registered on a chi.Router for convenient method
// handling.
type Handler struct {
	svc    port.StrategyUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.StrategyUseCase, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1/strategies/{strategyID}", func(r chi.Router) {
		r.Get("/", h.handleGetStrategy)
		r.Post("/simulation", h.handleControlSimulation)
		r.Get("/simulation", h.handleSimulationState)
		r.Post("/media-buys", h.handleRegisterMediaBuy)
		r.Patch("/media-buys/{mediaBuyID}", h.handleUpdateMediaBuy)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// writeError maps engine errors onto HTTP statuses: simulation errors are
// caller mistakes (400), unknown strategies are 404, everything else is a
// logged 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrStrategyNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrSimulation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
