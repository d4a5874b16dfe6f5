package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aarongantt/tangent-landing/pkg/types"
)

func TestSignUpCreatesAccountAndSession(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "Alice@Example.com", "correct horse battery")

	// Email is stored normalized.
	account, err := env.queries.GetAccountByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.False(t, account.EmailConfirmed)

	w := env.do(t, http.MethodGet, "/v1/auth/session", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.SessionResponse
	decodeJSON(t, w, &resp)
	require.NotNil(t, resp.Session)
	require.Equal(t, account.ID, resp.Session.UserID)
	require.Equal(t, "alice@example.com", resp.Session.Email)
	require.Greater(t, resp.Session.ExpiresAt, int64(0))
}

func TestSignUpRejectsShortPassword(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"email":    "bob@example.com",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignUpBlockedByFraudCreatesNoAccount(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"email":    "throwaway@mailinator.com",
		"password": "long enough password",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	_, err := env.queries.GetAccountByEmail(context.Background(), "throwaway@mailinator.com")
	require.Error(t, err)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "carol@example.com", "long enough password")

	w := env.do(t, http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"email":    "carol@example.com",
		"password": "another long password",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestSignInWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "dave@example.com", "long enough password")

	w := env.do(t, http.MethodPost, "/v1/auth/signin", "", map[string]string{
		"email":    "dave@example.com",
		"password": "not the password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/v1/auth/signin", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "long enough password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignInIssuesWorkingToken(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "erin@example.com", "long enough password")

	w := env.do(t, http.MethodPost, "/v1/auth/signin", "", map[string]string{
		"email":    "Erin@example.com",
		"password": "long enough password",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.AuthResponse
	decodeJSON(t, w, &resp)
	require.True(t, resp.Success)

	w = env.do(t, http.MethodGet, "/v1/auth/session", resp.Token, nil)
	var session types.SessionResponse
	decodeJSON(t, w, &session)
	require.NotNil(t, session.Session)
}

func TestSessionWithoutTokenIsNull(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/v1/auth/session", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.SessionResponse
	decodeJSON(t, w, &resp)
	require.Nil(t, resp.Session)

	// A garbage token is a signed-out state, not an error.
	w = env.do(t, http.MethodGet, "/v1/auth/session", "not-a-jwt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	require.Nil(t, resp.Session)
}

func TestSignOutRevokesSession(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "frank@example.com", "long enough password")

	w := env.do(t, http.MethodPost, "/v1/auth/signout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The token still parses, but the backing session is revoked.
	w = env.do(t, http.MethodGet, "/v1/auth/session", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp types.SessionResponse
	decodeJSON(t, w, &resp)
	require.Nil(t, resp.Session)
}

func TestSignOutRequiresToken(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/v1/auth/signout", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNavStateFollowsAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/v1/nav", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var nav types.NavState
	decodeJSON(t, w, &nav)
	require.False(t, nav.LoggedIn)
	require.True(t, nav.ShowLogin)
	require.True(t, nav.ShowSubscribe)
	require.True(t, nav.ShowHeroCTAs)
	require.False(t, nav.ShowSignOut)
	require.False(t, nav.ShowAccount)

	token := env.signUp(t, "grace@example.com", "long enough password")
	w = env.do(t, http.MethodGet, "/v1/nav", token, nil)
	decodeJSON(t, w, &nav)
	require.True(t, nav.LoggedIn)
	require.True(t, nav.ShowSignOut)
	require.True(t, nav.ShowAccount)
	require.False(t, nav.ShowLogin)
	require.False(t, nav.ShowSubscribe)
	require.False(t, nav.ShowHeroCTAs)
}

func TestHeaderFragmentServed(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/header.html", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/html")
	require.Contains(t, w.Body.String(), `id="navSignOut"`)
	require.Contains(t, w.Body.String(), `id="navSubscribe"`)
}
