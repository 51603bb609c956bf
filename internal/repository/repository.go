package repository

import (
	"context"
	"database/sql"
	"time"

	"farmwatch/internal/models"
)

// AlertStateRepo persists the notification dedup state. Save replaces the
// whole record atomically so a crash can never expose a partial write.
type AlertStateRepo interface {
	Save(ctx context.Context, s models.AlertState) error
	Load(ctx context.Context) (models.AlertState, error)
}

// ReadingRepo is the append-only history of processed readings.
type ReadingRepo interface {
	Append(ctx context.Context, rec models.ReadingRecord) error
	List(ctx context.Context, from, to time.Time, priority string) ([]models.ReadingRecord, error)
}

// Authorization stores operator accounts.
type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// Repository bundles the concrete SQLite-backed stores.
type Repository struct {
	AlertState AlertStateRepo
	Readings   ReadingRepo
	Auth       Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		AlertState: NewAlertStateSQLite(db),
		Readings:   NewReadingSQLite(db),
		Auth:       NewUserRepository(db),
	}
}
