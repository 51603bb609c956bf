package repository_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"farmwatch/internal/models"
	"farmwatch/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

type sqlmockArgumentFunc func(v driver.Value) bool

func (f sqlmockArgumentFunc) Match(v driver.Value) bool {
	return f(v)
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestAlertStateSQLite_Save_UpsertsCategoryWithDecisionAndTime(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewAlertStateSQLite(db)

	sentAt := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	decision := &models.Decision{
		Action:    models.ActionTriggerGasAlert,
		LED:       models.LEDRed,
		Fan:       models.FanOn,
		GasAlert:  true,
		Reasoning: "gas spike",
		Priority:  models.PriorityCritical,
	}
	state := models.AlertState{
		models.CategoryGasAlert: {LastDecision: decision, LastSentAt: sentAt},
	}

	isDecisionJSON := sqlmockArgumentFunc(func(v driver.Value) bool {
		s, ok := v.(string)
		return ok && regexp.MustCompile(`"gas_alert":true`).MatchString(s)
	})
	isExactUTC := sqlmockArgumentFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		return ok && tm.Equal(sentAt) && tm.Location() == time.UTC
	})

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO alert_state")).
		WithArgs(string(models.CategoryGasAlert), isDecisionJSON, isExactUTC).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.Save(context.Background(), state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAlertStateSQLite_Save_NilDecisionAndZeroTimeWriteNULLs(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewAlertStateSQLite(db)

	state := models.AlertState{
		models.CategoryTemperature: {},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO alert_state")).
		WithArgs(string(models.CategoryTemperature), nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.Save(context.Background(), state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAlertStateSQLite_Save_AllCategoriesInOneTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewAlertStateSQLite(db)

	state := models.AlertState{}
	for _, cat := range models.AllCategories {
		state[cat] = models.CategoryState{}
	}

	// Map iteration order is undefined; match the upserts in any order.
	mock.MatchExpectationsInOrder(false)
	mock.ExpectBegin()
	for range models.AllCategories {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO alert_state")).
			WithArgs(sqlmock.AnyArg(), nil, nil).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	if err := repo.Save(context.Background(), state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAlertStateSQLite_Save_ExecErrorRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewAlertStateSQLite(db)

	state := models.AlertState{
		models.CategoryPriority: {},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO alert_state")).
		WithArgs(string(models.CategoryPriority), nil, nil).
		WillReturnError(errors.New("db down"))
	mock.ExpectRollback()

	if err := repo.Save(context.Background(), state); err == nil {
		t.Fatalf("Save() expected error, got nil")
	}
}

func TestAlertStateSQLite_Load_EmptyTableMeansNoHistory(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewAlertStateSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT category, last_decision, last_sent_at FROM alert_state")).
		WillReturnRows(sqlmock.NewRows([]string{"category", "last_decision", "last_sent_at"}))

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty state, got %+v", got)
	}
}

func TestAlertStateSQLite_Load_RebuildsCategories(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewAlertStateSQLite(db)

	sentAt := time.Date(2026, 8, 25, 9, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"category", "last_decision", "last_sent_at"}).
		AddRow("gas_alert", `{"action":"trigger gas alert","led":"red","fan":"on","gas_alert":true,"reasoning":"spike","priority":"critical"}`, sentAt).
		AddRow("temperature", `{"action":"start fan","led":"red","fan":"on","gas_alert":false,"reasoning":"hot","priority":"high"}`, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT category, last_decision, last_sent_at FROM alert_state")).
		WillReturnRows(rows)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	gas, ok := got[models.CategoryGasAlert]
	if !ok || gas.LastDecision == nil || !gas.LastDecision.GasAlert {
		t.Fatalf("gas category not rebuilt: %+v", gas)
	}
	if !gas.LastSentAt.Equal(sentAt) {
		t.Fatalf("gas LastSentAt = %v, want %v", gas.LastSentAt, sentAt)
	}

	temp, ok := got[models.CategoryTemperature]
	if !ok || temp.LastDecision == nil || temp.LastDecision.Fan != models.FanOn {
		t.Fatalf("temperature category not rebuilt: %+v", temp)
	}
	if !temp.LastSentAt.IsZero() {
		t.Fatalf("NULL last_sent_at must load as zero time, got %v", temp.LastSentAt)
	}
}

func TestAlertStateSQLite_Load_CorruptDecisionJSON(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewAlertStateSQLite(db)

	rows := sqlmock.NewRows([]string{"category", "last_decision", "last_sent_at"}).
		AddRow("priority", `{not json`, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT category, last_decision, last_sent_at FROM alert_state")).
		WillReturnRows(rows)

	if _, err := repo.Load(context.Background()); err == nil {
		t.Fatalf("expected error for corrupt decision JSON")
	}
}
