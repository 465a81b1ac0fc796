// Package paygate talks to the payment gateway: it verifies webhook
// signatures and looks up transaction status for reconciliation.
package paygate

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// TransactionStatus values reported by the gateway
const (
	StatusApproved = "APPROVED"
	StatusPending  = "PENDING"
	StatusRefused  = "REFUSED"
)

// Notification is the payload the gateway posts to our webhook
type Notification struct {
	TransactionRef string  `json:"transaction_ref"`
	ExternalRef    string  `json:"external_ref"`
	Amount         float64 `json:"amount"`
	Status         string  `json:"status"`
	PaidAt         string  `json:"paid_at"`
}

// Client is a payment gateway API client
type Client struct {
	BaseURL       string
	APIKey        string
	WebhookSecret string
	MockAPI       bool
	client        *http.Client
}

// NewClient creates a new payment gateway client
func NewClient(baseURL, apiKey, webhookSecret string, mockAPI bool) *Client {
	return &Client{
		BaseURL:       baseURL,
		APIKey:        apiKey,
		WebhookSecret: webhookSecret,
		MockAPI:       mockAPI,
		client:        &http.Client{Timeout: 10 * time.Second},
	}
}

// VerifySignature checks the HMAC-SHA256 signature the gateway sends in the
// webhook header against the raw request body.
func (c *Client) VerifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(c.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// GetTransaction fetches a transaction's current status from the gateway
func (c *Client) GetTransaction(ref string) (*Notification, error) {
	if c.MockAPI {
		return c.mockGetTransaction(ref)
	}

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/v1/transactions/%s", c.BaseURL, ref), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.New("transaction not found")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned %d", resp.StatusCode)
	}

	var notification Notification
	if err := json.NewDecoder(resp.Body).Decode(&notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

// mockGetTransaction reports every transaction as approved, for local
// development and tests.
func (c *Client) mockGetTransaction(ref string) (*Notification, error) {
	return &Notification{
		TransactionRef: ref,
		Status:         StatusApproved,
		PaidAt:         time.Now().Format(time.RFC3339),
	}, nil
}
