package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"farmwatch/internal/models"
	"farmwatch/internal/repository"
)

// HistoryFilter narrows the reading log by time range and decision priority.
type HistoryFilter struct {
	From     time.Time // inclusive; zero means unbounded
	To       time.Time // inclusive; zero means unbounded
	Priority string    // "", low, medium, high, critical
}

// ErrInvalidTimeRange rejects filters whose bounds are inverted.
var ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")

// HistoryService lists processed readings.
type HistoryService struct {
	readings repository.ReadingRepo
}

func NewHistoryService(readings repository.ReadingRepo) *HistoryService {
	return &HistoryService{readings: readings}
}

func (s *HistoryService) List(ctx context.Context, f HistoryFilter) ([]models.ReadingRecord, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, ErrInvalidTimeRange
	}

	priority := strings.ToLower(strings.TrimSpace(f.Priority))
	if priority != "" && !models.ValidPriority(priority) {
		return nil, fmt.Errorf("invalid priority filter %q", f.Priority)
	}

	return s.readings.List(ctx, from, to, priority)
}

// normalizeToUTC returns t in UTC, preserving zero values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
