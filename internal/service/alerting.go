package service

import (
	"context"
	"errors"

	"farmwatch/internal/alerts"
	"farmwatch/internal/config"
	"farmwatch/internal/models"
	"farmwatch/internal/notify"
)

// ErrAlertingDisabled is returned by operations that require the SMS layer
// when the deployment runs without it.
var ErrAlertingDisabled = errors.New("sms alerting is disabled")

// AlertingStatus is the operator-facing snapshot of the notification layer.
type AlertingStatus struct {
	Enabled             bool              `json:"enabled"`
	Sandbox             bool              `json:"sandbox"`
	RecipientConfigured bool              `json:"recipient_configured"`
	SenderID            string            `json:"sender_id"`
	GasCooldownSeconds  int               `json:"gas_cooldown_seconds"`
	State               models.AlertState `json:"state,omitempty"`
}

// AlertingService reports on and exercises the notification layer.
type AlertingService struct {
	dispatcher *alerts.Dispatcher // nil when disabled
	cfg        config.SMSConfig
}

func NewAlertingService(dispatcher *alerts.Dispatcher, cfg config.SMSConfig) *AlertingService {
	return &AlertingService{dispatcher: dispatcher, cfg: cfg}
}

// Status returns the current alerting configuration and dedup state.
func (s *AlertingService) Status() AlertingStatus {
	senderID := s.cfg.SenderID
	if senderID == "" {
		senderID = "Default"
	}
	st := AlertingStatus{
		Enabled:             s.cfg.Enabled && s.dispatcher != nil,
		Sandbox:             s.cfg.Sandbox,
		RecipientConfigured: s.cfg.Recipient != "",
		SenderID:            senderID,
		GasCooldownSeconds:  int(s.cfg.GasCooldown.Seconds()),
	}
	if s.dispatcher != nil {
		st.State = s.dispatcher.State()
	}
	return st
}

// SendTest delivers a test message, bypassing dedup entirely.
func (s *AlertingService) SendTest(ctx context.Context) (notify.SendResult, error) {
	if s.dispatcher == nil {
		return notify.SendResult{}, ErrAlertingDisabled
	}
	return s.dispatcher.SendTest(ctx)
}
