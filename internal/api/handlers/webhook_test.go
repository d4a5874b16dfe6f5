package handlers

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aarongantt/tangent-landing/internal/notify"
	"github.com/aarongantt/tangent-landing/pkg/types"
)

func webhookBody() types.WebhookNewUserRequest {
	return types.WebhookNewUserRequest{
		Record: types.WebhookRecord{
			ID:           "user-1",
			Email:        "new@example.com",
			CreatedAt:    "2026-08-30T12:00:00Z",
			TrialGranted: true,
		},
	}
}

func TestWebhookAcceptsValidSecret(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/webhook-new-user", jsonBody(t, webhookBody()))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-webhook-secret", testWebhookSecret)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.WebhookNewUserResponse
	decodeJSON(t, w, &resp)
	require.True(t, resp.Success)
	require.Equal(t, "new@example.com", resp.UserEmail)
}

func TestWebhookRejectsBadSecret(t *testing.T) {
	env := newTestEnv(t)

	for _, secret := range []string{"", "wrong-secret"} {
		req := httptest.NewRequest(http.MethodPost, "/api/webhook-new-user", jsonBody(t, webhookBody()))
		req.Header.Set("Content-Type", "application/json")
		if secret != "" {
			req.Header.Set("x-webhook-secret", secret)
		}
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestWebhookNonPostIs405(t *testing.T) {
	env := newTestEnv(t)

	for _, method := range []string{http.MethodGet, http.MethodPut} {
		req := httptest.NewRequest(method, "/api/webhook-new-user", nil)
		req.Header.Set("x-webhook-secret", testWebhookSecret)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
	}
}

func TestWebhookSwallowsEmailFailure(t *testing.T) {
	// A Resend backend that always fails.
	var calls atomic.Int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer backend.Close()

	mailer, err := notify.NewResendClient(notify.ResendConfig{
		APIKey:  "re_test",
		From:    "Test <test@example.com>",
		BaseURL: backend.URL,
	})
	require.NoError(t, err)
	env := newTestEnvWithMailer(t, mailer)

	req := httptest.NewRequest(http.MethodPost, "/api/webhook-new-user", jsonBody(t, webhookBody()))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-webhook-secret", testWebhookSecret)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	// Delivery failed but the webhook still reports success.
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int32(1), calls.Load())
	var resp types.WebhookNewUserResponse
	decodeJSON(t, w, &resp)
	require.True(t, resp.Success)
}

func TestWebhookMalformedBodyIs500(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/webhook-new-user", jsonBodyRaw("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-webhook-secret", testWebhookSecret)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
