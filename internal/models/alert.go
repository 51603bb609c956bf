package models

import "time"

// AlertCategory identifies an independent dedup stream of notifications.
type AlertCategory string

const (
	CategoryGasAlert    AlertCategory = "gas_alert"
	CategoryTemperature AlertCategory = "temperature"
	CategoryPriority    AlertCategory = "priority"
)

// AllCategories lists categories in dispatch order: gas first, then
// temperature, then priority.
var AllCategories = []AlertCategory{CategoryGasAlert, CategoryTemperature, CategoryPriority}

// CategoryState is the persisted dedup record for one alert category.
// LastSentAt is only meaningfully populated for the gas category, which is
// time-gated rather than change-gated.
type CategoryState struct {
	LastDecision *Decision `json:"last_decision,omitempty"`
	LastSentAt   time.Time `json:"last_sent_at,omitempty"`
}

// AlertState maps each category to its dedup record. Absent keys mean no
// notification history (first observation always qualifies for review).
type AlertState map[AlertCategory]CategoryState

// Clone returns a deep copy so callers can hand out snapshots safely.
func (s AlertState) Clone() AlertState {
	out := make(AlertState, len(s))
	for cat, cs := range s {
		if cs.LastDecision != nil {
			d := *cs.LastDecision
			cs.LastDecision = &d
		}
		out[cat] = cs
	}
	return out
}

// DispatchError records a per-category notification failure.
type DispatchError struct {
	Category AlertCategory `json:"category"`
	Reason   string        `json:"reason"`
}

// DispatchResult aggregates the outcome of one dispatcher call.
type DispatchResult struct {
	Sent   []AlertCategory `json:"sent"`
	Errors []DispatchError `json:"errors,omitempty"`
}

// ProcessResult is what the engine returns for one submitted reading.
// Dispatch is nil when alerting is disabled for the deployment.
type ProcessResult struct {
	Reading         Reading         `json:"reading"`
	Decision        Decision        `json:"decision"`
	AlertingEnabled bool            `json:"alerting_enabled"`
	Dispatch        *DispatchResult `json:"dispatch,omitempty"`
	ProcessedAt     time.Time       `json:"processed_at"`
}
