package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mesa-strategy/internal/core/domain"
	"mesa-strategy/internal/core/port"
	"mesa-strategy/internal/preset"
)

// catalogResolver turns a strategy id into a fully-formed strategy record,
// synthesizing defaults from the preset catalog when no record exists.
type catalogResolver struct {
	repo    port.StrategyRepository
	presets *preset.Catalog
	logger  *slog.Logger
	now     func() time.Time
}

// GetOrCreate looks the id up in the store. Missing records are either an
// error (createIfMissing false) or synthesized, persisted and returned.
func (c *catalogResolver) GetOrCreate(ctx context.Context, id string, createIfMissing bool) (*domain.Strategy, error) {
	s, err := c.repo.GetStrategy(ctx, id)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}
	if !createIfMissing {
		return nil, fmt.Errorf("%w: %s", domain.ErrStrategyNotFound, id)
	}
	s = c.synthesize(id)
	if err := c.repo.InsertStrategy(ctx, s); err != nil {
		return nil, err
	}
	c.logger.Info("strategy created",
		slog.String("strategy_id", id),
		slog.String("kind", string(s.Kind)))
	return s, nil
}

// synthesize builds the default record for an unknown id. Known ids come
// from the preset catalog; unknown production ids get a title-cased name
// and empty config, unknown simulation ids derive a scenario from the id.
func (c *catalogResolver) synthesize(id string) *domain.Strategy {
	kind := domain.KindOf(id)
	var (
		p  preset.Preset
		ok bool
	)
	if kind == domain.KindSimulation {
		p, ok = c.presets.Simulation[id]
		if !ok {
			scenario := strings.TrimPrefix(id, domain.SimulationPrefix)
			if scenario == "" {
				scenario = "custom"
			}
			p = preset.Preset{
				Name:        titleCase(scenario),
				Description: fmt.Sprintf("Ad-hoc simulation for scenario %q", scenario),
				Config: map[string]any{
					"mode":             "simulation",
					"scenario":         scenario,
					"time_progression": "controlled",
				},
			}
		}
	} else {
		p, ok = c.presets.Production[id]
		if !ok {
			p = preset.Preset{
				Name:        titleCase(id),
				Description: "Custom delivery strategy",
				Config:      map[string]any{},
			}
		}
	}
	now := c.now().UTC()
	return &domain.Strategy{
		ID:          id,
		Kind:        kind,
		Name:        p.Name,
		Description: p.Description,
		Config:      cloneConfig(p.Config),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// titleCase turns an underscore-separated id into a display name, e.g.
// "conservative_pacing" -> "Conservative Pacing".
func titleCase(id string) string {
	parts := strings.Split(id, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// cloneConfig copies a preset config so strategies never share maps with
// the catalog.
func cloneConfig(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
