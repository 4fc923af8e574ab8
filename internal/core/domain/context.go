package domain

// StrategyContext is a read-only accessor over a resolved strategy's
// config. All writes go through the manager; callers holding a context
// must not mutate the underlying strategy.
type StrategyContext struct {
	strategy *Strategy
}

// NewStrategyContext wraps a resolved strategy.
func NewStrategyContext(s *Strategy) *StrategyContext {
	return &StrategyContext{strategy: s}
}

// Strategy returns the wrapped record.
func (c *StrategyContext) Strategy() *Strategy {
	return c.strategy
}

// ConfigValue returns the config entry for key, or def when absent.
func (c *StrategyContext) ConfigValue(key string, def any) any {
	if v, ok := c.strategy.Config[key]; ok {
		return v
	}
	return def
}

// ShouldForceError reports whether the simulation forces the given error
// type via a force_<type> config flag. Production strategies never force
// errors.
func (c *StrategyContext) ShouldForceError(errorType string) bool {
	if !c.strategy.IsSimulation() {
		return false
	}
	v, _ := c.strategy.Config["force_"+errorType].(bool)
	return v
}

// PacingMultiplier returns the pacing_rate config value, defaulting to 1.0.
func (c *StrategyContext) PacingMultiplier() float64 {
	return c.floatValue("pacing_rate", 1.0)
}

// BidAdjustment returns the bid_adjustment config value, defaulting to 1.0.
func (c *StrategyContext) BidAdjustment() float64 {
	return c.floatValue("bid_adjustment", 1.0)
}

// floatValue coerces numeric config values. JSON decoding yields float64,
// the YAML preset catalog may yield int.
func (c *StrategyContext) floatValue(key string, def float64) float64 {
	switch v := c.strategy.Config[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}
