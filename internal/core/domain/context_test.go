package domain

import "testing"

func TestStrategyContextAccessors(t *testing.T) {
	sim := NewStrategyContext(&Strategy{
		ID:   "sim_budget_exceeded",
		Kind: KindSimulation,
		Config: map[string]any{
			"pacing_rate":           0.8,
			"bid_adjustment":        2, // YAML decodes whole numbers as int
			"force_budget_exceeded": true,
			"scenario":              "budget_exceeded",
		},
	})

	if got := sim.PacingMultiplier(); got != 0.8 {
		t.Fatalf("PacingMultiplier = %v, want 0.8", got)
	}
	if got := sim.BidAdjustment(); got != 2.0 {
		t.Fatalf("BidAdjustment = %v, want 2.0", got)
	}
	if !sim.ShouldForceError("budget_exceeded") {
		t.Fatal("expected forced budget_exceeded error")
	}
	if sim.ShouldForceError("creative_rejection") {
		t.Fatal("unset force flags must read false")
	}
	if got := sim.ConfigValue("scenario", "x"); got != "budget_exceeded" {
		t.Fatalf("ConfigValue(scenario) = %v", got)
	}
	if got := sim.ConfigValue("missing", "fallback"); got != "fallback" {
		t.Fatalf("ConfigValue default = %v", got)
	}
}

func TestStrategyContextProductionNeverForcesErrors(t *testing.T) {
	prod := NewStrategyContext(&Strategy{
		ID:   "conservative_pacing",
		Kind: KindProduction,
		Config: map[string]any{
			"force_budget_exceeded": true,
		},
	})
	if prod.ShouldForceError("budget_exceeded") {
		t.Fatal("production strategies must never force errors")
	}
	if got := prod.PacingMultiplier(); got != 1.0 {
		t.Fatalf("PacingMultiplier default = %v, want 1.0", got)
	}
}
