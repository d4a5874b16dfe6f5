package fraud

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// turnstileEndpoint is Cloudflare's server-side token verification endpoint.
	turnstileEndpoint = "https://challenges.cloudflare.com/turnstile/v0/siteverify"
	// turnstileContentType is the HTTP form content type required by siteverify.
	turnstileContentType = "application/x-www-form-urlencoded"
	// defaultTurnstileTimeout is the HTTP timeout used for siteverify requests.
	defaultTurnstileTimeout = 10 * time.Second
)

// TurnstileConfig describes the credentials for Turnstile verification.
type TurnstileConfig struct {
	// Secret is the Turnstile secret key. Empty disables verification.
	Secret string
	// BaseURL overrides the siteverify endpoint. Used by tests.
	BaseURL string
}

// TurnstileVerifier checks CAPTCHA tokens against Cloudflare.
type TurnstileVerifier struct {
	secret  string
	baseURL string
	client  *http.Client
}

// NewTurnstileVerifier creates a verifier, or nil when no secret is
// configured ("CAPTCHA disabled").
func NewTurnstileVerifier(cfg TurnstileConfig) *TurnstileVerifier {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = turnstileEndpoint
	}
	return &TurnstileVerifier{
		secret:  cfg.Secret,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: defaultTurnstileTimeout,
		},
	}
}

// Verify checks a client-supplied token with Cloudflare. The remote IP is
// optional.
func (v *TurnstileVerifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if strings.TrimSpace(token) == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("turnstile request build failed: %w", err)
	}
	req.Header.Set("Content-Type", turnstileContentType)

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("turnstile request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("turnstile response read failed: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return false, fmt.Errorf("turnstile response %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var parsed struct {
		Success    bool     `json:"success"`
		ErrorCodes []string `json:"error-codes"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return false, fmt.Errorf("turnstile response decode failed: %w", err)
	}
	return parsed.Success, nil
}
