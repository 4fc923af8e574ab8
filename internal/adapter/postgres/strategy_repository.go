package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mesa-strategy/internal/core/domain"
	"mesa-strategy/internal/core/port"
)

// StrategyRepository implements port.StrategyRepository using pgxpool.
// Strategy config and state partitions are stored as jsonb.
type StrategyRepository struct {
	pool *pgxpool.Pool
}

var _ port.StrategyRepository = (*StrategyRepository)(nil)

// NewStrategyRepository returns a new repository instance.
func NewStrategyRepository(pool *pgxpool.Pool) *StrategyRepository {
	return &StrategyRepository{pool: pool}
}

// GetStrategy returns the strategy with the given id, or nil when no row
// exists.
func (r *StrategyRepository) GetStrategy(ctx context.Context, id string) (*domain.Strategy, error) {
	var (
		s         domain.Strategy
		configRaw []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, scope, kind, name, description, config, created_at, updated_at FROM strategies WHERE id = $1`, id).
		Scan(&s.ID, &s.Scope, &s.Kind, &s.Name, &s.Description, &configRaw, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(configRaw, &s.Config); err != nil {
		return nil, err
	}
	return &s, nil
}

// InsertStrategy persists a newly synthesized strategy record.
func (r *StrategyRepository) InsertStrategy(ctx context.Context, s *domain.Strategy) error {
	configRaw, err := json.Marshal(s.Config)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO strategies (id, scope, kind, name, description, config, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		s.ID, s.Scope, s.Kind, s.Name, s.Description, configRaw, s.CreatedAt, s.UpdatedAt)
	return err
}

// UpdateStrategyConfig replaces the config document of an existing
// strategy.
func (r *StrategyRepository) UpdateStrategyConfig(ctx context.Context, id string, config map[string]any) error {
	configRaw, err := json.Marshal(config)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE strategies SET config = $1, updated_at = now() WHERE id = $2`, configRaw, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("strategy does not exist")
	}
	return nil
}

// UpsertState writes one state partition for a strategy.
func (r *StrategyRepository) UpsertState(ctx context.Context, strategyID, partition string, value json.RawMessage) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO simulation_state (strategy_id, partition, data, updated_at)
		 VALUES ($1,$2,$3,now())
		 ON CONFLICT (strategy_id, partition) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		strategyID, partition, []byte(value))
	return err
}

// GetState reads one state partition, or nil when nothing was persisted.
func (r *StrategyRepository) GetState(ctx context.Context, strategyID, partition string) (json.RawMessage, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT data FROM simulation_state WHERE strategy_id = $1 AND partition = $2`,
		strategyID, partition).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// DeleteAllState removes every persisted partition for a strategy.
func (r *StrategyRepository) DeleteAllState(ctx context.Context, strategyID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM simulation_state WHERE strategy_id = $1`, strategyID)
	return err
}
