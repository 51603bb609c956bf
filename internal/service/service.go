package service

import (
	"context"
	"time"

	"farmwatch/internal/alerts"
	"farmwatch/internal/config"
	"farmwatch/internal/logger"
	"farmwatch/internal/models"
	"farmwatch/internal/notify"
	"farmwatch/internal/oracle"
	"farmwatch/internal/repository"
)

// Engine processes one reading end to end: oracle decision, alert dispatch,
// history append. It always yields a decision.
type Engine interface {
	Process(ctx context.Context, r models.Reading) models.ProcessResult
	Latest() *models.ProcessResult
}

// Alerting exposes the notification layer's status and test hook.
type Alerting interface {
	Status() AlertingStatus
	SendTest(ctx context.Context) (notify.SendResult, error)
}

// History lists processed readings with filtering.
type History interface {
	List(ctx context.Context, f HistoryFilter) ([]models.ReadingRecord, error)
}

// Authorization manages operator accounts and tokens.
type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Simulator feeds synthetic readings through the engine for development
// without hardware. Stop via context cancellation.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	Engine
	Alerting
	History
	Authorization
	Simulator
}

// Deps carries everything NewService needs to wire the sub-services.
type Deps struct {
	Repos      *repository.Repository
	Adapter    *oracle.Adapter
	Dispatcher *alerts.Dispatcher // nil when alerting is disabled
	Config     *config.Config
	Log        *logger.Logger
}

func NewService(d Deps) *Service {
	engine := NewEngineService(d.Adapter, d.Dispatcher, d.Repos.Readings, d.Log)
	return &Service{
		Engine:        engine,
		Alerting:      NewAlertingService(d.Dispatcher, d.Config.SMS),
		History:       NewHistoryService(d.Repos.Readings),
		Authorization: NewAuthService(d.Repos.Auth, d.Config.Auth.SigningKey, d.Config.Auth.TokenTTL),
		Simulator:     NewSimulatorService(engine, d.Log),
	}
}
