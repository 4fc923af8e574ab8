package domain

import (
	"strconv"
	"strings"
	"time"
)

// JumpTarget is the parsed form of a jump_to argument. String literals
// are classified exactly once at the API boundary; everything downstream
// switches over the closed set of implementations.
type JumpTarget interface {
	isJumpTarget()
}

// RelativeAdvance moves the clock forward by a duration ("+3d", "+12h").
type RelativeAdvance struct {
	Duration time.Duration
	Literal  string // the original "+<N><unit>" text, kept for the log
}

// NamedEvent jumps to a checkpoint from the JumpEvent vocabulary.
type NamedEvent struct {
	Event JumpEvent
}

// AbsoluteDate sets the clock to a calendar date with no time of day.
type AbsoluteDate struct {
	Date time.Time
}

func (RelativeAdvance) isJumpTarget() {}
func (NamedEvent) isJumpTarget()      {}
func (AbsoluteDate) isJumpTarget()    {}

// ParseJumpTarget classifies a jump_to argument. Order matters: a leading
// "+" always means relative advance, then the named vocabulary, then an
// absolute YYYY-MM-DD date. Anything else is an unknown jump event.
func ParseJumpTarget(target string) (JumpTarget, error) {
	if strings.HasPrefix(target, "+") {
		d, err := ParseDuration(target[1:])
		if err != nil {
			return nil, err
		}
		return RelativeAdvance{Duration: d, Literal: target}, nil
	}
	if KnownJumpEvent(target) {
		return NamedEvent{Event: JumpEvent(target)}, nil
	}
	if date, err := time.Parse("2006-01-02", target); err == nil {
		return AbsoluteDate{Date: date}, nil
	}
	return nil, SimulationErrorf("Unknown jump event: %s", target)
}

// ParseDuration parses the relative-advance literal "<integer><unit>"
// with unit one of d, h, m, s.
func ParseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, SimulationErrorf("invalid duration format: %q", s)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return 0, SimulationErrorf("invalid duration format: %q", s)
	}
	switch s[len(s)-1] {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	case 's':
		return time.Duration(n) * time.Second, nil
	default:
		return 0, SimulationErrorf("invalid duration unit in %q (want d, h, m or s)", s)
	}
}

// ControlAction is the parsed form of a control_simulation request.
type ControlAction interface {
	isControlAction()
}

// JumpTo carries an already-classified jump target.
type JumpTo struct {
	Target JumpTarget
}

// Reset discards all simulation state for the strategy.
type Reset struct{}

// SetScenario rewrites the scenario field of the strategy config.
type SetScenario struct {
	Scenario string
}

func (JumpTo) isControlAction()      {}
func (Reset) isControlAction()       {}
func (SetScenario) isControlAction() {}

// ControlParams is the raw parameter bag accepted by the control API.
type ControlParams struct {
	Event      string `json:"event,omitempty"`
	TargetDate string `json:"target_date,omitempty"`
	Scenario   string `json:"scenario,omitempty"`
}

// ParseControlAction validates an action/parameter pair and returns the
// matching ControlAction. The jump target is parameters.event when
// present, parameters.target_date otherwise.
func ParseControlAction(action string, params ControlParams) (ControlAction, error) {
	switch action {
	case "jump_to":
		raw := params.Event
		if raw == "" {
			raw = params.TargetDate
		}
		if raw == "" {
			return nil, SimulationErrorf("jump_to requires an event or target_date parameter")
		}
		target, err := ParseJumpTarget(raw)
		if err != nil {
			return nil, err
		}
		return JumpTo{Target: target}, nil
	case "reset":
		return Reset{}, nil
	case "set_scenario":
		if params.Scenario == "" {
			return nil, SimulationErrorf("set_scenario requires a scenario parameter")
		}
		return SetScenario{Scenario: params.Scenario}, nil
	default:
		return nil, SimulationErrorf("Unknown simulation action: %s", action)
	}
}
