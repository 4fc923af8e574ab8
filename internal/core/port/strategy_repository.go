package port

import (
	"context"
	"encoding/json"

	"mesa-strategy/internal/core/domain"
)

// StrategyRepository is the persistence contract for strategy records and
// simulation state partitions. It is an outbound port; the engine never
// sees what sits behind it. Partition keys are exactly
// domain.PartitionCurrentTime, domain.PartitionEventsTriggered and
// domain.PartitionMediaBuyStates; partition values are JSON documents.
type StrategyRepository interface {
	// GetStrategy returns the strategy with the given id, or nil when no
	// record exists.
	GetStrategy(ctx context.Context, id string) (*domain.Strategy, error)
	// InsertStrategy persists a newly synthesized strategy record.
	InsertStrategy(ctx context.Context, s *domain.Strategy) error
	// UpdateStrategyConfig replaces the config document of an existing
	// strategy.
	UpdateStrategyConfig(ctx context.Context, id string, config map[string]any) error

	// UpsertState writes one state partition for a strategy.
	UpsertState(ctx context.Context, strategyID, partition string, value json.RawMessage) error
	// GetState reads one state partition, or nil when nothing was
	// persisted for it.
	GetState(ctx context.Context, strategyID, partition string) (json.RawMessage, error)
	// DeleteAllState removes every persisted partition for a strategy.
	DeleteAllState(ctx context.Context, strategyID string) error
}
