package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"mesa-strategy/internal/core/domain"
	"mesa-strategy/internal/core/port"
)

// eventEffects maps jump events to their side effects on tracked media
// buys. Events without an entry are logged and nothing else.
var eventEffects = map[domain.JumpEvent]func(map[string]domain.MediaBuyState){
	domain.EventCampaignStart: func(buys map[string]domain.MediaBuyState) {
		for _, st := range buys {
			st["status"] = "active"
		}
	},
	domain.EventErrorBudgetExceeded: func(buys map[string]domain.MediaBuyState) {
		for _, st := range buys {
			st["status"] = "paused"
			st["pause_reason"] = "budget_exceeded"
		}
	},
}

// SimulationController owns the virtual clock, event log and tracked
// media-buy states of one simulation strategy. Every operation runs under
// the controller mutex, loads happened at construction, and each mutation
// writes all three state partitions back before returning. The clock may
// move backward via absolute-date jumps; the event log is ordered by
// insertion, not by simulated time.
type SimulationController struct {
	mu       sync.Mutex
	strategy *domain.Strategy
	repo     port.StrategyRepository
	logger   *slog.Logger
	now      func() time.Time

	current   time.Time
	events    []domain.EventRecord
	mediaBuys map[string]domain.MediaBuyState
}

// newSimulationController loads the three persisted partitions, defaulting
// to wall-clock now, empty log and no tracked media buys.
func newSimulationController(ctx context.Context, repo port.StrategyRepository, strategy *domain.Strategy, logger *slog.Logger, now func() time.Time) (*SimulationController, error) {
	c := &SimulationController{
		strategy:  strategy,
		repo:      repo,
		logger:    logger.With(slog.String("strategy_id", strategy.ID)),
		now:       now,
		current:   now().UTC(),
		mediaBuys: map[string]domain.MediaBuyState{},
	}

	raw, err := repo.GetState(ctx, strategy.ID, domain.PartitionCurrentTime)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		if err = json.Unmarshal(raw, &c.current); err != nil {
			return nil, fmt.Errorf("load %s: %w", domain.PartitionCurrentTime, err)
		}
	}

	raw, err = repo.GetState(ctx, strategy.ID, domain.PartitionEventsTriggered)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		if err = json.Unmarshal(raw, &c.events); err != nil {
			return nil, fmt.Errorf("load %s: %w", domain.PartitionEventsTriggered, err)
		}
	}

	raw, err = repo.GetState(ctx, strategy.ID, domain.PartitionMediaBuyStates)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		if err = json.Unmarshal(raw, &c.mediaBuys); err != nil {
			return nil, fmt.Errorf("load %s: %w", domain.PartitionMediaBuyStates, err)
		}
	}
	return c, nil
}

// persist writes all three partitions. Mutations call this before
// returning so the store always holds a complete snapshot.
func (c *SimulationController) persist(ctx context.Context) error {
	for _, part := range []struct {
		key   string
		value any
	}{
		{domain.PartitionCurrentTime, c.current},
		{domain.PartitionEventsTriggered, c.events},
		{domain.PartitionMediaBuyStates, c.mediaBuys},
	} {
		raw, err := json.Marshal(part.value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", part.key, err)
		}
		if err = c.repo.UpsertState(ctx, c.strategy.ID, part.key, raw); err != nil {
			return fmt.Errorf("persist %s: %w", part.key, err)
		}
	}
	return nil
}

// JumpTo executes an already-classified jump target.
func (c *SimulationController) JumpTo(ctx context.Context, target domain.JumpTarget) (*port.ControlResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch t := target.(type) {
	case domain.RelativeAdvance:
		return c.advanceLocked(ctx, t)
	case domain.NamedEvent:
		return c.triggerEventLocked(ctx, t.Event)
	case domain.AbsoluteDate:
		return c.jumpToDateLocked(ctx, t.Date)
	default:
		return nil, domain.SimulationErrorf("unsupported jump target %T", target)
	}
}

// AdvanceTime moves the clock forward by a relative-duration literal such
// as "3d" or "12h" (the leading "+" is optional here).
func (c *SimulationController) AdvanceTime(ctx context.Context, literal string) (*port.ControlResult, error) {
	trimmed := literal
	if len(trimmed) > 0 && trimmed[0] == '+' {
		trimmed = trimmed[1:]
	}
	d, err := domain.ParseDuration(trimmed)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.advanceLocked(ctx, domain.RelativeAdvance{Duration: d, Literal: "+" + trimmed})
}

func (c *SimulationController) advanceLocked(ctx context.Context, adv domain.RelativeAdvance) (*port.ControlResult, error) {
	old := c.current
	c.current = c.current.Add(adv.Duration)
	newTime := c.current
	c.events = append(c.events, domain.EventRecord{
		ID:          uuid.NewString(),
		Event:       domain.EventTimeAdvanced,
		OldTime:     &old,
		NewTime:     &newTime,
		Duration:    adv.Literal,
		TriggeredAt: c.now().UTC(),
	})
	if err := c.persist(ctx); err != nil {
		return nil, err
	}
	c.logger.Debug("time advanced",
		slog.Time("old", old), slog.Time("new", newTime), slog.String("duration", adv.Literal))
	summary := c.summaryLocked()
	return &port.ControlResult{
		Status:         "ok",
		Message:        fmt.Sprintf("Advanced simulation time by %s", adv.Literal),
		SimulationTime: &newTime,
		CurrentState:   summary,
	}, nil
}

func (c *SimulationController) triggerEventLocked(ctx context.Context, event domain.JumpEvent) (*port.ControlResult, error) {
	real := c.now().UTC()
	c.events = append(c.events, domain.EventRecord{
		ID:          uuid.NewString(),
		Event:       event,
		TriggeredAt: c.current,
		RealTime:    &real,
	})
	if effect, ok := eventEffects[event]; ok {
		effect(c.mediaBuys)
	} else {
		c.logger.Debug("event has no side effects", slog.String("event", string(event)))
	}
	if err := c.persist(ctx); err != nil {
		return nil, err
	}
	simTime := c.current
	summary := c.summaryLocked()
	return &port.ControlResult{
		Status:         "ok",
		Message:        fmt.Sprintf("Triggered event %s", event),
		SimulationTime: &simTime,
		CurrentState:   summary,
	}, nil
}

func (c *SimulationController) jumpToDateLocked(ctx context.Context, date time.Time) (*port.ControlResult, error) {
	old := c.current
	c.current = date
	newTime := c.current
	c.events = append(c.events, domain.EventRecord{
		ID:          uuid.NewString(),
		Event:       domain.EventTimeJumped,
		OldTime:     &old,
		NewTime:     &newTime,
		Target:      date.Format("2006-01-02"),
		TriggeredAt: c.now().UTC(),
	})
	if err := c.persist(ctx); err != nil {
		return nil, err
	}
	return &port.ControlResult{
		Status:      "ok",
		Message:     fmt.Sprintf("Jumped simulation time to %s", date.Format("2006-01-02")),
		CurrentTime: &newTime,
	}, nil
}

// Reset discards the clock, event log and tracked media buys, also
// dropping every persisted partition. Irreversible.
func (c *SimulationController) Reset(ctx context.Context) (*port.ControlResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = c.now().UTC()
	c.events = nil
	c.mediaBuys = map[string]domain.MediaBuyState{}
	if err := c.repo.DeleteAllState(ctx, c.strategy.ID); err != nil {
		return nil, err
	}
	c.logger.Info("simulation reset")
	now := c.current
	return &port.ControlResult{
		Status:       "ok",
		Message:      "Simulation reset",
		CurrentTime:  &now,
		CurrentState: c.summaryLocked(),
	}, nil
}

// SetScenario rewrites the scenario field of the strategy config. The
// clock and the event log are untouched.
func (c *SimulationController) SetScenario(ctx context.Context, scenario string) (*port.ControlResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.strategy.Config["scenario"] = scenario
	c.strategy.UpdatedAt = c.now().UTC()
	if err := c.repo.UpdateStrategyConfig(ctx, c.strategy.ID, c.strategy.Config); err != nil {
		return nil, err
	}
	simTime := c.current
	return &port.ControlResult{
		Status:         "ok",
		Message:        fmt.Sprintf("Scenario set to %s", scenario),
		SimulationTime: &simTime,
		CurrentState:   c.summaryLocked(),
	}, nil
}

// RegisterMediaBuy adds or overwrites a tracked media buy, stamping
// created_at with the simulated time.
func (c *SimulationController) RegisterMediaBuy(ctx context.Context, id string, initial domain.MediaBuyState) (*domain.StateSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := domain.MediaBuyState{}
	for k, v := range initial {
		st[k] = v
	}
	st["created_at"] = c.current.Format(time.RFC3339)
	c.mediaBuys[id] = st
	if err := c.persist(ctx); err != nil {
		return nil, err
	}
	return c.summaryLocked(), nil
}

// UpdateMediaBuyState merges updates into a tracked media buy. Unknown
// ids are ignored; the miss is only logged.
func (c *SimulationController) UpdateMediaBuyState(ctx context.Context, id string, updates domain.MediaBuyState) (*domain.StateSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.mediaBuys[id]
	if !ok {
		c.logger.Warn("update for untracked media buy", slog.String("media_buy_id", id))
		return c.summaryLocked(), nil
	}
	for k, v := range updates {
		st[k] = v
	}
	if err := c.persist(ctx); err != nil {
		return nil, err
	}
	return c.summaryLocked(), nil
}

// CurrentState returns the summary without mutating anything.
func (c *SimulationController) CurrentState() *domain.StateSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summaryLocked()
}

func (c *SimulationController) summaryLocked() *domain.StateSummary {
	latest := c.events
	if len(latest) > 5 {
		latest = latest[len(latest)-5:]
	}
	active := 0
	for _, st := range c.mediaBuys {
		if st.Status() == "active" {
			active++
		}
	}
	return &domain.StateSummary{
		StrategyID:      c.strategy.ID,
		CurrentTime:     c.current,
		EventsTriggered: len(c.events),
		LatestEvents:    append([]domain.EventRecord(nil), latest...),
		MediaBuys:       len(c.mediaBuys),
		ActiveMediaBuys: active,
	}
}
