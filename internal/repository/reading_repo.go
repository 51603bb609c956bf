package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"farmwatch/internal/models"
)

// ReadingSQLite is the append-only log of processed readings.
type ReadingSQLite struct {
	db *sql.DB
}

func NewReadingSQLite(db *sql.DB) *ReadingSQLite {
	return &ReadingSQLite{db: db}
}

var _ ReadingRepo = (*ReadingSQLite)(nil)

const insertReadingSQL = `
	INSERT INTO reading_log (id, occurred_at, temperature, humidity, light_intensity, gas_level, decision)
	VALUES (?, ?, ?, ?, ?, ?, ?)
`

// Append inserts one processed reading. Missing ID and timestamp are filled.
func (r *ReadingSQLite) Append(ctx context.Context, rec models.ReadingRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.OccurredAt = touchTime(rec.OccurredAt)

	decisionJSON, err := json.Marshal(rec.Decision)
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}

	_, err = r.db.ExecContext(ctx, insertReadingSQL,
		rec.ID,
		rec.OccurredAt.Format(sqliteTimeLayout),
		rec.Reading.Temperature,
		rec.Reading.Humidity,
		rec.Reading.LightIntensity,
		rec.Reading.GasLevel,
		string(decisionJSON),
	)
	if err != nil {
		return fmt.Errorf("insert reading %s: %w", rec.ID, err)
	}
	return nil
}

const sqliteTimeLayout = "2006-01-02 15:04:05"

// List returns readings within [from, to] (inclusive, zero = unbounded),
// optionally filtered by decision priority, ordered oldest first.
func (r *ReadingSQLite) List(ctx context.Context, from, to time.Time, priority string) ([]models.ReadingRecord, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(sqliteTimeLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC().Format(sqliteTimeLayout))
	}
	if priority != "" {
		conds = append(conds, "json_extract(decision, '$.priority') = ?")
		args = append(args, priority)
	}

	query := "SELECT id, occurred_at, temperature, humidity, light_intensity, gas_level, decision FROM reading_log"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select readings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.ReadingRecord
	for rows.Next() {
		var (
			rec          models.ReadingRecord
			occurredAt   string
			decisionJSON string
		)
		if err := rows.Scan(
			&rec.ID,
			&occurredAt,
			&rec.Reading.Temperature,
			&rec.Reading.Humidity,
			&rec.Reading.LightIntensity,
			&rec.Reading.GasLevel,
			&decisionJSON,
		); err != nil {
			return nil, fmt.Errorf("scan reading row: %w", err)
		}
		ts, err := time.ParseInLocation(sqliteTimeLayout, occurredAt, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse occurred_at %q: %w", occurredAt, err)
		}
		rec.OccurredAt = ts
		rec.Reading.Timestamp = ts
		if err := json.Unmarshal([]byte(decisionJSON), &rec.Decision); err != nil {
			return nil, fmt.Errorf("unmarshal decision for %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
