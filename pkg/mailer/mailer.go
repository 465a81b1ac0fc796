package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sortelabs/bolao-backend/internal/config"
	"golang.org/x/exp/slog"
)

// Mailer sends transactional email through a relay API
type Mailer interface {
	Send(to, subject, body string) error
}

// RelayMailer posts messages to an HTTP mail-relay API
type RelayMailer struct {
	baseURL    string
	apiKey     string
	sender     string
	httpClient *http.Client
}

// MockMailer logs messages instead of sending them, for local development
type MockMailer struct{}

// New returns the mailer selected by configuration
func New(cfg *config.Config) Mailer {
	if cfg.Mail.MockMail {
		return &MockMailer{}
	}
	return &RelayMailer{
		baseURL: cfg.Mail.BaseURL,
		apiKey:  cfg.Mail.APIKey,
		sender:  cfg.Mail.Sender,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type relayMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Send posts one message to the relay
func (m *RelayMailer) Send(to, subject, body string) error {
	payload, err := json.Marshal(relayMessage{
		From:    m.sender,
		To:      to,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, m.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail relay returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// Send logs the message and succeeds
func (m *MockMailer) Send(to, subject, body string) error {
	slog.Info("mock mail sent", "to", to, "subject", subject)
	return nil
}
