package configs

// Simulation configures the strategy engine. PresetsPath points at an
// external YAML preset catalog; when empty the catalog embedded in the
// binary is used.
type Simulation struct {
	// PresetsPath overrides the embedded strategy preset catalog.
	PresetsPath string `env:"PRESETS_PATH" envDefault:""`
	// Seed controls whether demo strategies are inserted on startup.
	Seed bool `env:"SEED" envDefault:"false"`
}
