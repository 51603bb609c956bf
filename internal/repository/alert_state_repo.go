package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"farmwatch/internal/models"
)

// AlertStateSQLite stores one row per alert category.
type AlertStateSQLite struct {
	db *sql.DB
}

func NewAlertStateSQLite(db *sql.DB) *AlertStateSQLite {
	return &AlertStateSQLite{db: db}
}

var _ AlertStateRepo = (*AlertStateSQLite)(nil)

const (
	upsertAlertStateSQL = `
		INSERT INTO alert_state (category, last_decision, last_sent_at)
		VALUES (?, ?, ?)
		ON CONFLICT(category) DO UPDATE SET
			last_decision=excluded.last_decision,
			last_sent_at=excluded.last_sent_at
	`

	selectAlertStateSQL = `
		SELECT category, last_decision, last_sent_at FROM alert_state
	`
)

// Save writes the full dedup state in one transaction; the commit is the
// atomic replacement.
func (r *AlertStateSQLite) Save(ctx context.Context, s models.AlertState) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin alert state tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for cat, cs := range s {
		var decisionJSON sql.NullString
		if cs.LastDecision != nil {
			b, err := json.Marshal(cs.LastDecision)
			if err != nil {
				return fmt.Errorf("marshal decision for %s: %w", cat, err)
			}
			decisionJSON = sql.NullString{String: string(b), Valid: true}
		}

		var sentAt sql.NullTime
		if !cs.LastSentAt.IsZero() {
			sentAt = sql.NullTime{Time: cs.LastSentAt.UTC(), Valid: true}
		}

		if _, err := tx.ExecContext(ctx, upsertAlertStateSQL, string(cat), decisionJSON, sentAt); err != nil {
			return fmt.Errorf("upsert alert state %s: %w", cat, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit alert state: %w", err)
	}
	return nil
}

// Load reads the dedup state. An empty table yields an empty map, not an
// error — absence of state means no notification history.
func (r *AlertStateSQLite) Load(ctx context.Context) (models.AlertState, error) {
	rows, err := r.db.QueryContext(ctx, selectAlertStateSQL)
	if err != nil {
		return nil, fmt.Errorf("select alert state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	state := models.AlertState{}
	for rows.Next() {
		var (
			category     string
			decisionJSON sql.NullString
			sentAt       sql.NullTime
		)
		if err := rows.Scan(&category, &decisionJSON, &sentAt); err != nil {
			return nil, fmt.Errorf("scan alert state row: %w", err)
		}

		var cs models.CategoryState
		if decisionJSON.Valid && decisionJSON.String != "" {
			var d models.Decision
			if err := json.Unmarshal([]byte(decisionJSON.String), &d); err != nil {
				return nil, fmt.Errorf("unmarshal decision for %s: %w", category, err)
			}
			cs.LastDecision = &d
		}
		if sentAt.Valid {
			cs.LastSentAt = sentAt.Time.UTC()
		}
		state[models.AlertCategory(category)] = cs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alert state rows: %w", err)
	}
	return state, nil
}

// touchTime normalizes a timestamp for storage, filling zero with now.
func touchTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
