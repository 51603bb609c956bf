package alerts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"farmwatch/internal/config"
	"farmwatch/internal/logger"
	"farmwatch/internal/metrics"
	"farmwatch/internal/models"
	"farmwatch/internal/notify"
	"farmwatch/internal/repository"
)

// Dispatcher owns the dedup state exclusively: it is the only component
// that reads or writes it. One dispatch call evaluates the categories in
// fixed order (gas_alert, temperature, priority), sends what qualifies,
// rebaselines every category's snapshot to the current decision, and
// persists the state synchronously before returning.
type Dispatcher struct {
	mu       sync.Mutex
	state    models.AlertState
	repo     repository.AlertStateRepo
	notifier notify.Notifier
	render   *Renderer

	recipient string
	cooldown  time.Duration
	log       *logger.Logger

	now func() time.Time
}

// NewDispatcher loads the persisted dedup state; an absent record is an
// empty state, not an error.
func NewDispatcher(
	ctx context.Context,
	repo repository.AlertStateRepo,
	notifier notify.Notifier,
	thresholds config.ThresholdConfig,
	sms config.SMSConfig,
	log *logger.Logger,
) (*Dispatcher, error) {
	state, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load alert state: %w", err)
	}
	if state == nil {
		state = models.AlertState{}
	}
	return &Dispatcher{
		state:     state,
		repo:      repo,
		notifier:  notifier,
		render:    NewRenderer(thresholds),
		recipient: sms.Recipient,
		cooldown:  sms.GasCooldown,
		log:       log,
		now:       time.Now,
	}, nil
}

// Dispatch evaluates all categories for one decision and sends the
// qualifying notifications. The lock spans the whole call: dedup checks,
// notifier calls, and the final persist form one critical section so
// concurrent readings for the same device serialize cleanly.
func (d *Dispatcher) Dispatch(ctx context.Context, decision models.Decision, reading models.Reading) models.DispatchResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now().UTC()
	result := models.DispatchResult{Sent: []models.AlertCategory{}}

	// Gas first: a successful send moves its cooldown clock before the
	// other categories run, though they do not depend on its outcome.
	if ShouldSend(d.state, models.CategoryGasAlert, decision, now, d.cooldown) {
		if d.deliver(ctx, models.CategoryGasAlert, d.render.Gas(decision, reading), &result) {
			cs := d.state[models.CategoryGasAlert]
			cs.LastSentAt = now
			d.state[models.CategoryGasAlert] = cs
		}
	} else if decision.GasAlert {
		metrics.NotificationsSuppressed.WithLabelValues(string(models.CategoryGasAlert)).Inc()
	}

	if ShouldSend(d.state, models.CategoryTemperature, decision, now, d.cooldown) {
		prevFanOn := false
		if prev := d.state[models.CategoryTemperature].LastDecision; prev != nil {
			prevFanOn = prev.Fan == models.FanOn
		}
		d.deliver(ctx, models.CategoryTemperature, d.render.Temperature(decision, reading, prevFanOn), &result)
	} else {
		metrics.NotificationsSuppressed.WithLabelValues(string(models.CategoryTemperature)).Inc()
	}

	// Priority pages only while escalated; the predicate alone would also
	// fire on the very first observation at low priority.
	if ShouldSend(d.state, models.CategoryPriority, decision, now, d.cooldown) && models.Escalated(decision.Priority) {
		d.deliver(ctx, models.CategoryPriority, d.render.Priority(decision, reading), &result)
	} else if models.Escalated(decision.Priority) {
		metrics.NotificationsSuppressed.WithLabelValues(string(models.CategoryPriority)).Inc()
	}

	// Rebaseline every category against the current decision, sent or not,
	// so change detection never compares against a stale snapshot.
	for _, cat := range models.AllCategories {
		cs := d.state[cat]
		snap := decision
		cs.LastDecision = &snap
		d.state[cat] = cs
	}

	// Persist unconditionally, even if the caller has gone away: an
	// abandoned request must not leave the durable state behind the
	// in-memory one.
	if err := d.repo.Save(context.WithoutCancel(ctx), d.state.Clone()); err != nil {
		metrics.StatePersistFailures.Inc()
		if d.log != nil {
			d.log.Warnw("alert_state_persist_failed", "err", err)
		}
	}

	return result
}

// deliver renders nothing itself; it sends the prepared message and records
// the outcome. Returns true on successful delivery.
func (d *Dispatcher) deliver(ctx context.Context, cat models.AlertCategory, message string, result *models.DispatchResult) bool {
	if _, err := d.notifier.Send(ctx, message, d.recipient); err != nil {
		result.Errors = append(result.Errors, models.DispatchError{Category: cat, Reason: err.Error()})
		metrics.NotificationsTotal.WithLabelValues(string(cat), "failed").Inc()
		if d.log != nil {
			d.log.Errorw("notification_failed", "category", cat, "err", err)
		}
		return false
	}
	result.Sent = append(result.Sent, cat)
	metrics.NotificationsTotal.WithLabelValues(string(cat), "sent").Inc()
	if d.log != nil {
		d.log.Infow("notification_sent", "category", cat, "message", truncateMsg(message, 50))
	}
	return true
}

// State returns a deep copy of the current dedup state for status reporting.
func (d *Dispatcher) State() models.AlertState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.Clone()
}

// SendTest delivers a test message to the configured recipient, bypassing
// dedup entirely.
func (d *Dispatcher) SendTest(ctx context.Context) (notify.SendResult, error) {
	return d.notifier.Send(ctx, d.render.Test(d.now()), d.recipient)
}

func truncateMsg(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
