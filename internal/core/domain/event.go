package domain

import "time"

// JumpEvent is a named checkpoint simulated time can be advanced to. The
// vocabulary is closed: identifiers double as both the public API input
// and the tag stored in the event log.
type JumpEvent string

// Campaign lifecycle checkpoints.
const (
	EventCampaignCreated  JumpEvent = "campaign-created"
	EventCampaignStart    JumpEvent = "campaign-start"
	EventCampaignMidpoint JumpEvent = "campaign-midpoint"
	EventCampaignEnd      JumpEvent = "campaign-end"
)

// Creative lifecycle checkpoints.
const (
	EventCreativeSubmitted JumpEvent = "creative-submitted"
	EventCreativeApproved  JumpEvent = "creative-approved"
	EventCreativeRejected  JumpEvent = "creative-rejected"
)

// Error scenarios.
const (
	EventErrorBudgetExceeded   JumpEvent = "error-budget-exceeded"
	EventErrorCreativeRejected JumpEvent = "error-creative-rejected"
	EventErrorDeliveryFailure  JumpEvent = "error-delivery-failure"
)

// Performance milestones.
const (
	EventFirstImpression JumpEvent = "first-impression"
	EventBudget50Percent JumpEvent = "budget-50-percent"
	EventGoalReached     JumpEvent = "goal-reached"
)

// Synthetic tags recorded for clock movements. They are log entries only,
// not part of the jumpable vocabulary.
const (
	EventTimeAdvanced JumpEvent = "time_advanced"
	EventTimeJumped   JumpEvent = "time_jumped"
)

var knownJumpEvents = map[JumpEvent]struct{}{
	EventCampaignCreated:       {},
	EventCampaignStart:         {},
	EventCampaignMidpoint:      {},
	EventCampaignEnd:           {},
	EventCreativeSubmitted:     {},
	EventCreativeApproved:      {},
	EventCreativeRejected:      {},
	EventErrorBudgetExceeded:   {},
	EventErrorCreativeRejected: {},
	EventErrorDeliveryFailure:  {},
	EventFirstImpression:       {},
	EventBudget50Percent:       {},
	EventGoalReached:           {},
}

// KnownJumpEvent reports whether s belongs to the jumpable vocabulary.
func KnownJumpEvent(s string) bool {
	_, ok := knownJumpEvents[JumpEvent(s)]
	return ok
}

// EventRecord is one entry in a simulation's append-only event log.
// TriggeredAt carries the simulated clock for named events and the real
// wall-clock for clock movements; RealTime carries the wall-clock for
// named events.
type EventRecord struct {
	ID          string     `json:"id"`
	Event       JumpEvent  `json:"event"`
	OldTime     *time.Time `json:"old_time,omitempty"`
	NewTime     *time.Time `json:"new_time,omitempty"`
	Duration    string     `json:"duration,omitempty"`
	Target      string     `json:"target,omitempty"`
	TriggeredAt time.Time  `json:"triggered_at"`
	RealTime    *time.Time `json:"real_time,omitempty"`
}
