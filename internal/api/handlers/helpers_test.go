package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/aarongantt/tangent-landing/internal/api/middleware"
	"github.com/aarongantt/tangent-landing/internal/crypto"
	"github.com/aarongantt/tangent-landing/internal/database"
	"github.com/aarongantt/tangent-landing/internal/fraud"
	"github.com/aarongantt/tangent-landing/internal/models"
	"github.com/aarongantt/tangent-landing/internal/notify"
)

const testWebhookSecret = "test-hook-secret"

// testEnv wires the handlers against a throwaway SQLite database, mirroring
// the route layout of cmd/server.
type testEnv struct {
	router  *gin.Engine
	db      *database.DB
	queries *models.Queries
	jwt     *crypto.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithMailer(t, nil)
}

func newTestEnvWithMailer(t *testing.T, mailer *notify.ResendClient) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	jwtManager, err := crypto.NewJWTManager("test-master-secret")
	require.NoError(t, err)

	queries := models.New(db.DB)
	fraudSvc := fraud.NewService(queries, false)
	phones := fraud.NewPhoneVerifier(queries)

	authHandler := NewAuthHandler(db.DB, jwtManager, fraudSvc, nil, mailer, "admin@example.com", false)
	fraudHandler := NewFraudHandler(fraudSvc, phones, true)
	webhookHandler := NewWebhookHandler(testWebhookSecret, mailer, "admin@example.com")

	router := gin.New()
	router.GET("/header.html", GetHeader)

	v1 := router.Group("/v1")
	v1.POST("/auth/signup", authHandler.PostSignUp)
	v1.POST("/auth/signin", authHandler.PostSignIn)

	optional := v1.Group("")
	optional.Use(middleware.OptionalAuthMiddleware(jwtManager))
	optional.GET("/auth/session", authHandler.GetSession)
	optional.GET("/nav", authHandler.GetNav)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(jwtManager))
	protected.POST("/auth/signout", authHandler.PostSignOut)

	api := router.Group("/api")
	api.POST("/validate-signup", fraudHandler.PostValidateSignup)

	phone := api.Group("")
	phone.Use(middleware.OptionalAuthMiddleware(jwtManager))
	phone.POST("/phone-verification", fraudHandler.PostPhoneVerification)

	api.POST("/webhook-new-user", webhookHandler.PostNewUser)
	api.GET("/webhook-new-user", webhookHandler.MethodNotAllowed)
	api.PUT("/webhook-new-user", webhookHandler.MethodNotAllowed)

	return &testEnv{
		router:  router,
		db:      db,
		queries: queries,
		jwt:     jwtManager,
	}
}

// do performs one request against the wired router.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signUp registers an account and returns its token.
func (e *testEnv) signUp(t *testing.T, email, password string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(v))
	return &buf
}

func jsonBodyRaw(s string) *bytes.Buffer {
	return bytes.NewBufferString(s)
}
