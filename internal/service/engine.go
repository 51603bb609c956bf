package service

import (
	"context"
	"sync"
	"time"

	"farmwatch/internal/alerts"
	"farmwatch/internal/logger"
	"farmwatch/internal/models"
	"farmwatch/internal/oracle"
	"farmwatch/internal/repository"
)

// EngineService composes the oracle adapter and the alert dispatcher for
// each incoming reading. When the dispatcher is nil the deployment runs
// with alerting disabled and results carry an explicit marker instead of a
// dispatch outcome.
type EngineService struct {
	adapter    *oracle.Adapter
	dispatcher *alerts.Dispatcher
	readings   repository.ReadingRepo
	log        *logger.Logger

	mu     sync.RWMutex
	latest *models.ProcessResult
}

func NewEngineService(adapter *oracle.Adapter, dispatcher *alerts.Dispatcher, readings repository.ReadingRepo, log *logger.Logger) *EngineService {
	return &EngineService{
		adapter:    adapter,
		dispatcher: dispatcher,
		readings:   readings,
		log:        log,
	}
}

// Process evaluates the reading and dispatches any warranted notifications.
// It cannot fail: an unreachable oracle degrades to the rule-based fallback
// and a broken history log only costs the audit trail, never the decision.
func (s *EngineService) Process(ctx context.Context, r models.Reading) models.ProcessResult {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}

	decision := s.adapter.Evaluate(ctx, r)

	result := models.ProcessResult{
		Reading:         r,
		Decision:        decision,
		AlertingEnabled: s.dispatcher != nil,
		ProcessedAt:     time.Now().UTC(),
	}
	if s.dispatcher != nil {
		dr := s.dispatcher.Dispatch(ctx, decision, r)
		result.Dispatch = &dr
	}

	// History is best-effort; the decision has already been made.
	if err := s.readings.Append(context.WithoutCancel(ctx), models.ReadingRecord{
		OccurredAt: r.Timestamp,
		Reading:    r,
		Decision:   decision,
	}); err != nil && s.log != nil {
		s.log.Warnw("reading_history_append_failed", "err", err)
	}

	s.mu.Lock()
	s.latest = &result
	s.mu.Unlock()

	return result
}

// Latest returns the most recently processed result, or nil before the
// first reading.
func (s *EngineService) Latest() *models.ProcessResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil
	}
	cp := *s.latest
	return &cp
}
