package preset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	for _, id := range []string{"conservative_pacing", "aggressive_scaling", "premium_guaranteed"} {
		p, ok := c.Production[id]
		if !ok {
			t.Fatalf("missing production preset %s", id)
		}
		if p.Name == "" || len(p.Config) == 0 {
			t.Fatalf("preset %s incomplete: %+v", id, p)
		}
	}
	for _, id := range []string{"sim_happy_path", "sim_creative_rejection", "sim_budget_exceeded"} {
		p, ok := c.Simulation[id]
		if !ok {
			t.Fatalf("missing simulation preset %s", id)
		}
		if p.Config["mode"] != "simulation" {
			t.Fatalf("preset %s mode = %v", id, p.Config["mode"])
		}
	}

	if c.Production["conservative_pacing"].Config["pacing_rate"] != 0.8 {
		t.Fatalf("conservative_pacing pacing_rate = %v", c.Production["conservative_pacing"].Config["pacing_rate"])
	}
	if c.Simulation["sim_happy_path"].Config["force_success"] != true {
		t.Fatal("sim_happy_path must force success")
	}
}

func TestLoadEmptyPathFallsBackToEmbedded(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if len(c.Production) == 0 || len(c.Simulation) == 0 {
		t.Fatal("embedded catalog should not be empty")
	}
}

func TestLoadOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	raw := []byte(`
simulation:
  sim_chaos:
    name: Chaos
    description: everything breaks
    config:
      mode: simulation
      scenario: chaos
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) error: %v", path, err)
	}
	if c.Simulation["sim_chaos"].Config["scenario"] != "chaos" {
		t.Fatalf("override not applied: %+v", c.Simulation["sim_chaos"])
	}
	// an override replaces the catalog wholesale; absent sections read empty
	if len(c.Production) != 0 {
		t.Fatalf("expected empty production table, got %d entries", len(c.Production))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
