package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseJumpTargetClassification(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"+3d", RelativeAdvance{Duration: 72 * time.Hour, Literal: "+3d"}},
		{"+90m", RelativeAdvance{Duration: 90 * time.Minute, Literal: "+90m"}},
		{"campaign-start", NamedEvent{Event: EventCampaignStart}},
		{"error-budget-exceeded", NamedEvent{Event: EventErrorBudgetExceeded}},
		{"2025-09-15", AbsoluteDate{Date: time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)}},
	}
	for _, tc := range tests {
		got, err := ParseJumpTarget(tc.in)
		if err != nil {
			t.Fatalf("ParseJumpTarget(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseJumpTarget(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestParseJumpTargetUnknown(t *testing.T) {
	_, err := ParseJumpTarget("not-a-real-target")
	if err == nil {
		t.Fatal("expected error for unknown target")
	}
	if !errors.Is(err, ErrSimulation) {
		t.Fatalf("expected simulation error, got %v", err)
	}
	if !errors.Is(err, ErrStrategy) {
		t.Fatalf("simulation errors must match the base marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "Unknown jump event: not-a-real-target") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestParseJumpTargetInvalidDuration(t *testing.T) {
	for _, in := range []string{"+", "+d", "+3w", "+x5d", "+5"} {
		if _, err := ParseJumpTarget(in); !errors.Is(err, ErrSimulation) {
			t.Fatalf("ParseJumpTarget(%q): expected simulation error, got %v", in, err)
		}
	}
}

func TestParseDurationUnits(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"1d", 24 * time.Hour},
		{"24h", 24 * time.Hour},
		{"1440m", 24 * time.Hour},
		{"86400s", 24 * time.Hour},
	}
	for _, tc := range tests {
		got, err := ParseDuration(tc.in)
		if err != nil {
			t.Fatalf("ParseDuration(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseDuration(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseControlAction(t *testing.T) {
	a, err := ParseControlAction("jump_to", ControlParams{Event: "campaign-start"})
	if err != nil {
		t.Fatalf("jump_to error: %v", err)
	}
	jt, ok := a.(JumpTo)
	if !ok {
		t.Fatalf("expected JumpTo, got %T", a)
	}
	if _, ok = jt.Target.(NamedEvent); !ok {
		t.Fatalf("expected NamedEvent target, got %T", jt.Target)
	}

	// target_date is the fallback when event is absent
	a, err = ParseControlAction("jump_to", ControlParams{TargetDate: "2025-09-15"})
	if err != nil {
		t.Fatalf("jump_to target_date error: %v", err)
	}
	if _, ok = a.(JumpTo).Target.(AbsoluteDate); !ok {
		t.Fatalf("expected AbsoluteDate target, got %T", a.(JumpTo).Target)
	}

	if _, err = ParseControlAction("jump_to", ControlParams{}); !errors.Is(err, ErrSimulation) {
		t.Fatalf("jump_to without parameters: expected simulation error, got %v", err)
	}

	if _, err = ParseControlAction("reset", ControlParams{}); err != nil {
		t.Fatalf("reset error: %v", err)
	}

	a, err = ParseControlAction("set_scenario", ControlParams{Scenario: "budget_exceeded"})
	if err != nil {
		t.Fatalf("set_scenario error: %v", err)
	}
	if a.(SetScenario).Scenario != "budget_exceeded" {
		t.Fatalf("unexpected scenario: %#v", a)
	}
	if _, err = ParseControlAction("set_scenario", ControlParams{}); !errors.Is(err, ErrSimulation) {
		t.Fatalf("set_scenario without scenario: expected simulation error, got %v", err)
	}

	_, err = ParseControlAction("explode", ControlParams{})
	if err == nil || !strings.Contains(err.Error(), "Unknown simulation action: explode") {
		t.Fatalf("unexpected error for unknown action: %v", err)
	}
}
