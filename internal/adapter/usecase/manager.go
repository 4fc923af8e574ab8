package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"mesa-strategy/internal/core/domain"
	"mesa-strategy/internal/core/port"
	"mesa-strategy/internal/preset"
)

// defaultControllerLimit bounds the in-process controller pool. The store
// is the source of truth, so evicting a controller only costs a reload.
const defaultControllerLimit = 256

// Manager is the top-level entry point of the strategy engine. It wires
// the catalog resolver and the simulation controllers together and keeps
// a bounded read-through pool of controllers keyed by strategy id:
// created on the first control call, evicted when the pool is full,
// dropped entirely on Shutdown.
type Manager struct {
	repo    port.StrategyRepository
	catalog *catalogResolver
	logger  *slog.Logger
	now     func() time.Time
	limit   int

	mu          sync.Mutex
	controllers map[string]*SimulationController
}

var _ port.StrategyUseCase = (*Manager)(nil)

// NewManager creates a manager over the given store and preset catalog.
func NewManager(repo port.StrategyRepository, presets *preset.Catalog, logger *slog.Logger) *Manager {
	m := &Manager{
		repo:        repo,
		logger:      logger,
		now:         time.Now,
		limit:       defaultControllerLimit,
		controllers: map[string]*SimulationController{},
	}
	m.catalog = &catalogResolver{repo: repo, presets: presets, logger: logger, now: func() time.Time { return m.now() }}
	return m
}

// GetOrCreateStrategy resolves a strategy and wraps it in a read-only
// context.
func (m *Manager) GetOrCreateStrategy(ctx context.Context, id string, createIfMissing bool) (*domain.StrategyContext, error) {
	s, err := m.catalog.GetOrCreate(ctx, id, createIfMissing)
	if err != nil {
		return nil, err
	}
	return domain.NewStrategyContext(s), nil
}

// ControlSimulation validates the id, resolves the strategy and dispatches
// the parsed control action to the strategy's simulation controller.
func (m *Manager) ControlSimulation(ctx context.Context, strategyID, action string, params domain.ControlParams) (*port.ControlResult, error) {
	ctrl, err := m.simulationController(ctx, strategyID)
	if err != nil {
		return nil, err
	}
	parsed, err := domain.ParseControlAction(action, params)
	if err != nil {
		return nil, err
	}
	switch a := parsed.(type) {
	case domain.JumpTo:
		return ctrl.JumpTo(ctx, a.Target)
	case domain.Reset:
		return ctrl.Reset(ctx)
	case domain.SetScenario:
		return ctrl.SetScenario(ctx, a.Scenario)
	default:
		return nil, domain.SimulationErrorf("Unknown simulation action: %s", action)
	}
}

// RegisterMediaBuy starts tracking a media buy under a simulation
// strategy.
func (m *Manager) RegisterMediaBuy(ctx context.Context, strategyID, mediaBuyID string, initial domain.MediaBuyState) (*domain.StateSummary, error) {
	ctrl, err := m.simulationController(ctx, strategyID)
	if err != nil {
		return nil, err
	}
	return ctrl.RegisterMediaBuy(ctx, mediaBuyID, initial)
}

// UpdateMediaBuyState merges updates into a tracked media buy.
func (m *Manager) UpdateMediaBuyState(ctx context.Context, strategyID, mediaBuyID string, updates domain.MediaBuyState) (*domain.StateSummary, error) {
	ctrl, err := m.simulationController(ctx, strategyID)
	if err != nil {
		return nil, err
	}
	return ctrl.UpdateMediaBuyState(ctx, mediaBuyID, updates)
}

// GetSimulationState returns the current summary for a simulation
// strategy.
func (m *Manager) GetSimulationState(ctx context.Context, strategyID string) (*domain.StateSummary, error) {
	ctrl, err := m.simulationController(ctx, strategyID)
	if err != nil {
		return nil, err
	}
	return ctrl.CurrentState(), nil
}

// Shutdown drops every pooled controller. State already persisted stays
// in the store.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.controllers = map[string]*SimulationController{}
}

// simulationController validates that the id names a simulation strategy
// and returns the pooled controller for it, creating one when needed.
func (m *Manager) simulationController(ctx context.Context, strategyID string) (*SimulationController, error) {
	if !strings.HasPrefix(strategyID, domain.SimulationPrefix) {
		return nil, domain.SimulationErrorf("strategy %s is not a simulation strategy", strategyID)
	}
	s, err := m.catalog.GetOrCreate(ctx, strategyID, true)
	if err != nil {
		return nil, err
	}
	if !s.IsSimulation() {
		return nil, domain.SimulationErrorf("strategy %s is not a simulation strategy", strategyID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ctrl, ok := m.controllers[strategyID]; ok {
		return ctrl, nil
	}
	ctrl, err := newSimulationController(ctx, m.repo, s, m.logger, func() time.Time { return m.now() })
	if err != nil {
		return nil, err
	}
	if len(m.controllers) >= m.limit {
		for id := range m.controllers {
			delete(m.controllers, id)
			m.logger.Debug("evicted simulation controller", slog.String("strategy_id", id))
			break
		}
	}
	m.controllers[strategyID] = ctrl
	return ctrl, nil
}
