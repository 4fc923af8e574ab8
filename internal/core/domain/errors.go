package domain

import (
	"errors"
	"fmt"
)

// ErrStrategy is the base marker for every error raised by the strategy
// engine; errors.Is(err, ErrStrategy) matches all of them.
var ErrStrategy = errors.New("strategy error")

// ErrSimulation marks failures of simulation control operations. It wraps
// ErrStrategy, so simulation errors also match the base marker.
var ErrSimulation = fmt.Errorf("%w: simulation", ErrStrategy)

// ErrStrategyNotFound is returned when a strategy id is unknown and
// creation was not requested.
var ErrStrategyNotFound = fmt.Errorf("%w: not found", ErrStrategy)

// SimulationErrorf builds an error that matches ErrSimulation (and
// ErrStrategy) under errors.Is.
func SimulationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSimulation, fmt.Sprintf(format, args...))
}
