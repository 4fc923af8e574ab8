package port

import (
	"context"
	"time"

	"mesa-strategy/internal/core/domain"
)

// StrategyUseCase is the primary port into the strategy engine. The HTTP
// layer is a thin translation over this interface.
type StrategyUseCase interface {
	// GetOrCreateStrategy resolves a strategy id, synthesizing a default
	// record from the preset catalog when createIfMissing is true. When
	// createIfMissing is false and no record exists it fails with
	// domain.ErrStrategyNotFound. The result is wrapped in a read-only
	// context.
	GetOrCreateStrategy(ctx context.Context, id string, createIfMissing bool) (*domain.StrategyContext, error)

	// ControlSimulation drives a simulation strategy. The strategy id must
	// carry the simulation prefix and resolve to a simulation record or
	// the call fails with domain.ErrSimulation.
	ControlSimulation(ctx context.Context, strategyID, action string, params domain.ControlParams) (*ControlResult, error)

	// RegisterMediaBuy starts tracking a media buy under a simulation
	// strategy, stamping created_at with the simulated time.
	RegisterMediaBuy(ctx context.Context, strategyID, mediaBuyID string, initial domain.MediaBuyState) (*domain.StateSummary, error)

	// UpdateMediaBuyState merges updates into a tracked media buy. Unknown
	// ids are ignored.
	UpdateMediaBuyState(ctx context.Context, strategyID, mediaBuyID string, updates domain.MediaBuyState) (*domain.StateSummary, error)

	// GetSimulationState returns the current summary without mutating
	// anything.
	GetSimulationState(ctx context.Context, strategyID string) (*domain.StateSummary, error)
}

// ControlResult is the outcome of one control operation. Exactly one of
// CurrentTime or SimulationTime is set depending on the operation, mirrors
// what callers of the control API receive.
type ControlResult struct {
	Status         string               `json:"status"`
	Message        string               `json:"message"`
	CurrentTime    *time.Time           `json:"current_time,omitempty"`
	SimulationTime *time.Time           `json:"simulation_time,omitempty"`
	CurrentState   *domain.StateSummary `json:"current_state,omitempty"`
}
