package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aarongantt/tangent-landing/pkg/types"
)

func TestValidateSignupAllows(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/validate-signup", "", types.ValidateSignupRequest{
		Email:             "ok@example.com",
		DeviceFingerprint: "fp-1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.ValidateSignupResponse
	decodeJSON(t, w, &resp)
	require.True(t, resp.Allowed)
	require.Empty(t, resp.Error)
}

func TestValidateSignupBlocksDisposableEmail(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/validate-signup", "", types.ValidateSignupRequest{
		Email: "x@yopmail.com",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.ValidateSignupResponse
	decodeJSON(t, w, &resp)
	require.False(t, resp.Allowed)
	require.NotEmpty(t, resp.Error)
}

func TestValidateSignupMissingEmailIs400(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/validate-signup", "", map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPhoneVerificationRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/phone-verification", "", types.PhoneVerificationRequest{
		Action:      "create",
		PhoneNumber: "+15551234567",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPhoneVerificationCreateAndVerify(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "phone@example.com", "long enough password")

	w := env.do(t, http.MethodPost, "/api/phone-verification", token, types.PhoneVerificationRequest{
		Action:      "create",
		PhoneNumber: "+15551234567",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.PhoneVerificationResponse
	decodeJSON(t, w, &resp)
	require.True(t, resp.Success)
	require.Equal(t, "code_sent", resp.Status)

	// Wrong guesses are rejected without consuming the code.
	w = env.do(t, http.MethodPost, "/api/phone-verification", token, types.PhoneVerificationRequest{
		Action:      "verify",
		PhoneNumber: "+15551234567",
		Code:        "000000",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// The right code verifies. Read it straight from storage.
	account, err := env.queries.GetAccountByEmail(context.Background(), "phone@example.com")
	require.NoError(t, err)
	pending, err := env.queries.GetActivePhoneCode(context.Background(), account.ID, "+15551234567")
	require.NoError(t, err)

	w = env.do(t, http.MethodPost, "/api/phone-verification", token, types.PhoneVerificationRequest{
		Action:      "verify",
		PhoneNumber: "+15551234567",
		Code:        pending.Code,
	})
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	require.Equal(t, "verified", resp.Status)
}

func TestPhoneVerificationBadNumber(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "phone2@example.com", "long enough password")

	w := env.do(t, http.MethodPost, "/api/phone-verification", token, types.PhoneVerificationRequest{
		Action:      "create",
		PhoneNumber: "not a number",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPhoneVerificationUnknownAction(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "phone3@example.com", "long enough password")

	w := env.do(t, http.MethodPost, "/api/phone-verification", token, types.PhoneVerificationRequest{
		Action:      "delete",
		PhoneNumber: "+15551234567",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
