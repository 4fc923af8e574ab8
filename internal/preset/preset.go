// Package preset holds the declarative strategy preset catalog. A default
// catalog ships embedded in the binary; deployments can point
// SIM_PRESETS_PATH at an external YAML file to add or replace presets
// without a rebuild.
package preset

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var defaultYAML []byte

// Preset is one catalog entry, used to synthesize a default strategy
// record on first reference.
type Preset struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Config      map[string]any `yaml:"config"`
}

// Catalog maps strategy ids to presets, split by strategy kind.
type Catalog struct {
	Production map[string]Preset `yaml:"production"`
	Simulation map[string]Preset `yaml:"simulation"`
}

// Default parses the embedded catalog. The embedded file is validated by
// tests, so a parse failure is a build defect and panics.
func Default() *Catalog {
	c, err := parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("preset: embedded catalog invalid: %v", err))
	}
	return c
}

// Load reads a catalog from path, falling back to the embedded default
// when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preset: read catalog: %w", err)
	}
	c, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("preset: parse %s: %w", path, err)
	}
	return c, nil
}

func parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.Production == nil {
		c.Production = map[string]Preset{}
	}
	if c.Simulation == nil {
		c.Simulation = map[string]Preset{}
	}
	return &c, nil
}
