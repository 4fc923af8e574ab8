package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"mesa-strategy/internal/core/domain"
)

func TestControlRequiresSimulationPrefix(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	for _, action := range []string{"jump_to", "reset", "set_scenario"} {
		_, err := m.ControlSimulation(ctx, "conservative_pacing", action, domain.ControlParams{
			Event:    "+1d",
			Scenario: "x",
		})
		if !errors.Is(err, domain.ErrSimulation) {
			t.Fatalf("action %s on production id: expected simulation error, got %v", action, err)
		}
	}
}

func TestControlUnknownAction(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.ControlSimulation(context.Background(), "sim_x", "explode", domain.ControlParams{})
	require.ErrorIs(t, err, domain.ErrSimulation)
	require.Contains(t, err.Error(), "Unknown simulation action: explode")
}

func TestControlUnknownJumpTarget(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.ControlSimulation(context.Background(), "sim_x", "jump_to",
		domain.ControlParams{Event: "not-a-real-target"})
	require.ErrorIs(t, err, domain.ErrSimulation)
	require.Contains(t, err.Error(), "Unknown jump event: not-a-real-target")
}

func TestControlMissingJumpParameters(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.ControlSimulation(context.Background(), "sim_x", "jump_to", domain.ControlParams{})
	require.ErrorIs(t, err, domain.ErrSimulation)
}

func TestSetScenarioRewritesConfigOnly(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()
	const id = "sim_scenario_swap"

	_, err := m.ControlSimulation(ctx, id, "jump_to", domain.ControlParams{Event: "+1d"})
	require.NoError(t, err)

	res, err := m.ControlSimulation(ctx, id, "set_scenario", domain.ControlParams{Scenario: "budget_exceeded"})
	require.NoError(t, err)
	// clock and log are untouched
	require.Equal(t, 1, res.CurrentState.EventsTriggered)

	s, err := store.GetStrategy(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "budget_exceeded", s.Config["scenario"])
}

func TestControllerPoolReuse(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	c1, err := m.simulationController(ctx, "sim_pooled")
	require.NoError(t, err)
	c2, err := m.simulationController(ctx, "sim_pooled")
	require.NoError(t, err)
	require.Same(t, c1, c2)

	m.Shutdown()
	c3, err := m.simulationController(ctx, "sim_pooled")
	require.NoError(t, err)
	require.NotSame(t, c1, c3)
}

func TestControllerPoolBounded(t *testing.T) {
	m, _ := newTestManager(t)
	m.limit = 2
	ctx := context.Background()

	for _, id := range []string{"sim_a", "sim_b", "sim_c"} {
		_, err := m.simulationController(ctx, id)
		require.NoError(t, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	require.Len(t, m.controllers, 2)
}

// TestBudgetExceededEndToEnd walks the full scenario from registration to
// pause: register mb_1 pending, start the campaign, exceed the budget.
func TestBudgetExceededEndToEnd(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()
	const id = "sim_budget_exceeded_v1"

	_, err := m.RegisterMediaBuy(ctx, id, "mb_1", domain.MediaBuyState{"status": "pending"})
	require.NoError(t, err)

	res, err := m.ControlSimulation(ctx, id, "jump_to", domain.ControlParams{Event: "campaign-start"})
	require.NoError(t, err)
	require.Equal(t, "ok", res.Status)
	require.Equal(t, 1, res.CurrentState.ActiveMediaBuys)

	res, err = m.ControlSimulation(ctx, id, "jump_to", domain.ControlParams{Event: "error-budget-exceeded"})
	require.NoError(t, err)
	require.Equal(t, 2, res.CurrentState.EventsTriggered)
	require.Equal(t, 0, res.CurrentState.ActiveMediaBuys)

	buys := loadMediaBuys(t, store, id)
	require.Equal(t, "paused", buys["mb_1"].Status())
	require.Equal(t, "budget_exceeded", buys["mb_1"]["pause_reason"])
}

func TestMediaBuyOperationsRequireSimulationStrategy(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.RegisterMediaBuy(ctx, "aggressive_scaling", "mb_1", domain.MediaBuyState{"status": "pending"})
	require.ErrorIs(t, err, domain.ErrSimulation)
	_, err = m.UpdateMediaBuyState(ctx, "aggressive_scaling", "mb_1", domain.MediaBuyState{})
	require.ErrorIs(t, err, domain.ErrSimulation)
	_, err = m.GetSimulationState(ctx, "aggressive_scaling")
	require.ErrorIs(t, err, domain.ErrSimulation)
}
