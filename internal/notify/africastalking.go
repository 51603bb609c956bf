package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"farmwatch/internal/config"
)

// Africa's Talking messaging endpoints. The sandbox host is a separate
// environment with its own credentials.
const (
	liveMessagingURL    = "https://api.africastalking.com/version1/messaging"
	sandboxMessagingURL = "https://api.sandbox.africastalking.com/version1/messaging"
)

// ATClient sends SMS through the Africa's Talking messaging API.
type ATClient struct {
	username   string
	apiKey     string
	senderID   string
	endpoint   string
	httpClient *http.Client
}

// NewATClient builds a client from configuration.
func NewATClient(cfg config.SMSConfig) *ATClient {
	endpoint := liveMessagingURL
	if cfg.Sandbox {
		endpoint = sandboxMessagingURL
	}
	return &ATClient{
		username:   cfg.Username,
		apiKey:     cfg.APIKey,
		senderID:   cfg.SenderID,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// WithEndpoint overrides the messaging URL (tests).
func (c *ATClient) WithEndpoint(u string) *ATClient {
	c.endpoint = u
	return c
}

// atResponse mirrors the messaging API reply shape.
type atResponse struct {
	SMSMessageData struct {
		Message    string `json:"Message"`
		Recipients []struct {
			Number    string `json:"number"`
			Status    string `json:"status"`
			Cost      string `json:"cost"`
			MessageID string `json:"messageId"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

var errNoRecipients = errors.New("sms: no recipients in response")

// Send delivers one message to one recipient and reports the per-recipient
// delivery status.
func (c *ATClient) Send(ctx context.Context, message, recipient string) (SendResult, error) {
	form := url.Values{}
	form.Set("username", c.username)
	form.Set("to", recipient)
	form.Set("message", message)
	if c.senderID != "" {
		form.Set("from", c.senderID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return SendResult{}, fmt.Errorf("sms: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SendResult{}, fmt.Errorf("sms: call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return SendResult{}, fmt.Errorf("sms: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return SendResult{}, fmt.Errorf("sms: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed atResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return SendResult{}, fmt.Errorf("sms: decode response: %w", err)
	}
	if len(parsed.SMSMessageData.Recipients) == 0 {
		return SendResult{}, errNoRecipients
	}

	r := parsed.SMSMessageData.Recipients[0]
	if r.Status != "Success" {
		return SendResult{}, fmt.Errorf("sms: delivery failed for %s: %s", r.Number, r.Status)
	}
	return SendResult{Recipient: r.Number, Cost: r.Cost, MessageID: r.MessageID}, nil
}
