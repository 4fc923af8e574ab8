// Package memory provides an in-memory StrategyRepository used by tests
// and local demos. It mirrors the postgres adapter's semantics: missing
// rows read as nil, partition writes upsert.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"mesa-strategy/internal/core/domain"
	"mesa-strategy/internal/core/port"
)

// Store keeps strategies and state partitions in mutex-guarded maps.
// Reads return copies so callers cannot mutate stored records in place.
type Store struct {
	mu         sync.RWMutex
	strategies map[string]domain.Strategy
	state      map[string]map[string]json.RawMessage
}

var _ port.StrategyRepository = (*Store)(nil)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		strategies: map[string]domain.Strategy{},
		state:      map[string]map[string]json.RawMessage{},
	}
}

// GetStrategy returns a copy of the stored strategy, or nil.
func (s *Store) GetStrategy(_ context.Context, id string) (*domain.Strategy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.strategies[id]
	if !ok {
		return nil, nil
	}
	cp := rec
	cp.Config = cloneConfig(rec.Config)
	return &cp, nil
}

// InsertStrategy stores a new record; duplicate ids are an error, same as
// a primary-key violation in the postgres adapter.
func (s *Store) InsertStrategy(_ context.Context, rec *domain.Strategy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.strategies[rec.ID]; ok {
		return fmt.Errorf("strategy %s already exists", rec.ID)
	}
	cp := *rec
	cp.Config = cloneConfig(rec.Config)
	s.strategies[rec.ID] = cp
	return nil
}

// UpdateStrategyConfig replaces the config of an existing record.
func (s *Store) UpdateStrategyConfig(_ context.Context, id string, config map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.strategies[id]
	if !ok {
		return fmt.Errorf("strategy %s does not exist", id)
	}
	rec.Config = cloneConfig(config)
	s.strategies[id] = rec
	return nil
}

// UpsertState writes one partition.
func (s *Store) UpsertState(_ context.Context, strategyID, partition string, value json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	parts, ok := s.state[strategyID]
	if !ok {
		parts = map[string]json.RawMessage{}
		s.state[strategyID] = parts
	}
	parts[partition] = append(json.RawMessage(nil), value...)
	return nil
}

// GetState reads one partition, nil when nothing was written.
func (s *Store) GetState(_ context.Context, strategyID, partition string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.state[strategyID][partition]
	if !ok {
		return nil, nil
	}
	return append(json.RawMessage(nil), raw...), nil
}

// DeleteAllState drops every partition for the strategy.
func (s *Store) DeleteAllState(_ context.Context, strategyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.state, strategyID)
	return nil
}

func cloneConfig(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
