// Package notify delivers admin email notifications through the Resend API.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// resendEndpoint is the Resend API endpoint used for email delivery.
	resendEndpoint = "https://api.resend.com/emails"
	// defaultResendTimeout is the HTTP timeout used for Resend requests.
	defaultResendTimeout = 10 * time.Second
)

// ResendConfig describes the credentials and defaults for Resend delivery.
type ResendConfig struct {
	// APIKey is the Resend API key. Empty means email is not configured.
	APIKey string
	// From is the sender identity, e.g. "TANGENT Notifications <notifications@tangentapp.co>".
	From string
	// BaseURL overrides the Resend endpoint. Used by tests.
	BaseURL string
}

// Email describes a single message to send.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// ResendClient sends transactional email through Resend.
type ResendClient struct {
	apiKey  string
	from    string
	baseURL string
	client  *http.Client
}

// NewResendClient creates a new client using the supplied config.
//
// A nil client is returned without error when no API key is configured;
// callers treat that as "email disabled".
func NewResendClient(cfg ResendConfig) (*ResendClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, nil
	}
	if strings.TrimSpace(cfg.From) == "" {
		return nil, fmt.Errorf("resend from address is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = resendEndpoint
	}
	return &ResendClient{
		apiKey:  cfg.APIKey,
		from:    cfg.From,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: defaultResendTimeout,
		},
	}, nil
}

// Send delivers one email. The caller decides whether failures are fatal.
func (c *ResendClient) Send(ctx context.Context, msg Email) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("resend recipient is required")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return fmt.Errorf("resend subject is required")
	}

	payload, err := json.Marshal(map[string]any{
		"from":    c.from,
		"to":      msg.To,
		"subject": msg.Subject,
		"html":    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend payload encode failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("resend request build failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("resend response read failed: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("resend response %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return nil
}
