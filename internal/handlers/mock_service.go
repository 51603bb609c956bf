package handlers

import (
	"context"
	"net/http"
	"time"

	"farmwatch/internal/models"
	"farmwatch/internal/notify"
	"farmwatch/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockEngine struct {
	result      models.ProcessResult
	latest      *models.ProcessResult
	processed   int
	lastReading models.Reading
}

func (m *mockEngine) Process(ctx context.Context, r models.Reading) models.ProcessResult {
	m.processed++
	m.lastReading = r
	return m.result
}
func (m *mockEngine) Latest() *models.ProcessResult { return m.latest }

type mockAlerting struct {
	status     service.AlertingStatus
	testResult notify.SendResult
	testErr    error
	testCalls  int
}

func (m *mockAlerting) Status() service.AlertingStatus { return m.status }
func (m *mockAlerting) SendTest(ctx context.Context) (notify.SendResult, error) {
	m.testCalls++
	return m.testResult, m.testErr
}

type mockHistory struct {
	resp       []models.ReadingRecord
	err        error
	lastFilter service.HistoryFilter
}

func (m *mockHistory) List(ctx context.Context, f service.HistoryFilter) ([]models.ReadingRecord, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func sampleResult() models.ProcessResult {
	return models.ProcessResult{
		Reading: models.Reading{
			Temperature:    26.5,
			Humidity:       58,
			LightIntensity: 512,
			GasLevel:       140,
			Timestamp:      time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC),
		},
		Decision: models.Decision{
			Action:    models.ActionStopFan,
			LED:       models.LEDOff,
			Fan:       models.FanOff,
			GasAlert:  false,
			Reasoning: "all values nominal",
			Priority:  models.PriorityLow,
		},
		AlertingEnabled: true,
		Dispatch:        &models.DispatchResult{},
		ProcessedAt:     time.Date(2026, 8, 25, 10, 30, 1, 0, time.UTC),
	}
}
