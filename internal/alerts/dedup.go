package alerts

import (
	"fmt"
	"time"

	"farmwatch/internal/models"
)

// ShouldSend decides whether a category warrants a notification for the
// given decision at time now.
//
//	gas_alert:   time-gated — a sustained gas condition re-alerts once per
//	             cooldown window, never more often.
//	temperature: change-gated on (fan, led) against the previous snapshot.
//	priority:    rising-edge only — a transition into {high, critical} from
//	             outside that band; de-escalation and within-band moves are
//	             silent.
//
// An unknown category is a programming error, not a runtime condition.
func ShouldSend(state models.AlertState, category models.AlertCategory, d models.Decision, now time.Time, gasCooldown time.Duration) bool {
	switch category {
	case models.CategoryGasAlert:
		if !d.GasAlert {
			return false
		}
		last := state[category].LastSentAt
		return last.IsZero() || now.Sub(last) >= gasCooldown

	case models.CategoryTemperature:
		prev := state[category].LastDecision
		if prev == nil {
			return true
		}
		return prev.Fan != d.Fan || prev.LED != d.LED

	case models.CategoryPriority:
		prev := state[category].LastDecision
		if prev == nil {
			return true
		}
		return models.Escalated(d.Priority) && !models.Escalated(prev.Priority)

	default:
		panic(fmt.Sprintf("alerts: unknown category %q", category))
	}
}
