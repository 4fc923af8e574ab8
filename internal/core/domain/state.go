package domain

import "time"

// Partition keys for persisted simulation state. The three partitions are
// loaded together at controller construction and written together after
// every mutating operation.
const (
	PartitionCurrentTime     = "current_time"
	PartitionEventsTriggered = "events_triggered"
	PartitionMediaBuyStates  = "media_buy_states"
)

// MediaBuyState is the arbitrary status map tracked for one media buy.
// A "created_at" key is stamped with the simulated time on registration.
type MediaBuyState map[string]any

// Status returns the "status" value if present and a string.
func (m MediaBuyState) Status() string {
	s, _ := m["status"].(string)
	return s
}

// SimulationState bundles the three partitions of one simulation strategy.
type SimulationState struct {
	CurrentTime     time.Time
	EventsTriggered []EventRecord
	MediaBuyStates  map[string]MediaBuyState
}

// StateSummary is the condensed view returned by state queries.
type StateSummary struct {
	StrategyID      string        `json:"strategy_id"`
	CurrentTime     time.Time     `json:"current_time"`
	EventsTriggered int           `json:"events_triggered"`
	LatestEvents    []EventRecord `json:"latest_events"`
	MediaBuys       int           `json:"media_buys"`
	ActiveMediaBuys int           `json:"active_media_buys"`
}
