package domain

import (
	"strings"
	"time"
)

// SimulationPrefix marks a strategy id as a simulation strategy. The
// classification happens once, when the record is first created, and is
// never revisited afterwards.
const SimulationPrefix = "sim_"

// Kind distinguishes production delivery strategies from test simulations.
type Kind string

const (
	KindProduction Kind = "production"
	KindSimulation Kind = "simulation"
)

// KindOf classifies a strategy id by its prefix.
func KindOf(strategyID string) Kind {
	if strings.HasPrefix(strategyID, SimulationPrefix) {
		return KindSimulation
	}
	return KindProduction
}

// Strategy is a named configuration bundle controlling either production
// delivery behaviour or simulated test behaviour. Config holds arbitrary
// string-keyed settings and is stored as JSON.
type Strategy struct {
	ID          string
	Scope       string // optional tenant/principal association
	Kind        Kind
	Name        string
	Description string
	Config      map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsSimulation reports whether the strategy is controllable via the
// simulation operations.
func (s *Strategy) IsSimulation() bool {
	return s.Kind == KindSimulation
}
