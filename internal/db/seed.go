package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"mesa-strategy/internal/core/domain"
	"mesa-strategy/internal/preset"
)

// Seed inserts the preset strategies plus a demo simulation so a fresh
// database is immediately explorable. Existing rows are left alone.
func Seed(ctx context.Context, pool *pgxpool.Pool, catalog *preset.Catalog) error {
	now := time.Now().UTC()

	insert := func(id string, kind domain.Kind, p preset.Preset) error {
		configRaw, err := json.Marshal(p.Config)
		if err != nil {
			return err
		}
		_, err = pool.Exec(ctx, `INSERT INTO strategies
    (id, scope, kind, name, description, config, created_at, updated_at)
VALUES ($1,'',$2,$3,$4,$5,$6,$6) ON CONFLICT DO NOTHING`,
			id, kind, p.Name, p.Description, configRaw, now)
		return err
	}

	for id, p := range catalog.Production {
		if err := insert(id, domain.KindProduction, p); err != nil {
			return err
		}
	}
	for id, p := range catalog.Simulation {
		if err := insert(id, domain.KindSimulation, p); err != nil {
			return err
		}
	}

	// demo simulation with two pending media buys and a seeded event log
	const demoID = "sim_demo"
	err := insert(demoID, domain.KindSimulation, preset.Preset{
		Name:        "Demo Simulation",
		Description: "Seeded demo simulation with pending media buys.",
		Config: map[string]any{
			"mode":             "simulation",
			"scenario":         "demo",
			"time_progression": "controlled",
		},
	})
	if err != nil {
		return err
	}

	buys := map[string]domain.MediaBuyState{}
	for i := 1; i <= 2; i++ {
		buys[fmt.Sprintf("mb_demo_%d", i)] = domain.MediaBuyState{
			"status":     "pending",
			"created_at": now.Format(time.RFC3339),
		}
	}
	events := []domain.EventRecord{{
		ID:          uuid.NewString(),
		Event:       domain.EventCampaignCreated,
		TriggeredAt: now,
		RealTime:    &now,
	}}

	for partition, value := range map[string]any{
		domain.PartitionCurrentTime:     now,
		domain.PartitionEventsTriggered: events,
		domain.PartitionMediaBuyStates:  buys,
	} {
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		_, err = pool.Exec(ctx, `INSERT INTO simulation_state (strategy_id, partition, data, updated_at)
VALUES ($1,$2,$3,now()) ON CONFLICT DO NOTHING`, demoID, partition, raw)
		if err != nil {
			return err
		}
	}
	return nil
}
