package fraud

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aarongantt/tangent-landing/internal/database"
	"github.com/aarongantt/tangent-landing/internal/models"
	"github.com/aarongantt/tangent-landing/pkg/types"
)

func testQueries(t *testing.T) *models.Queries {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return models.New(db.DB)
}

func TestValidateSignupVerdicts(t *testing.T) {
	queries := testQueries(t)

	tests := []struct {
		name            string
		email           string
		captchaRequired bool
		captchaPassed   bool
		wantAllowed     bool
	}{
		{name: "plain email allowed", email: "a@example.com", wantAllowed: true},
		{name: "no at sign", email: "nonsense"},
		{name: "empty domain", email: "a@"},
		{name: "disposable domain", email: "a@mailinator.com"},
		{name: "captcha required and failed", email: "a@example.com", captchaRequired: true},
		{name: "captcha required and passed", email: "a@example.com", captchaRequired: true, captchaPassed: true, wantAllowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(queries, tt.captchaRequired)
			verdict, err := svc.ValidateSignup(context.Background(), tt.email, "", tt.captchaPassed)
			require.NoError(t, err)
			require.Equal(t, tt.wantAllowed, verdict.Allowed)
			if !tt.wantAllowed {
				require.NotEmpty(t, verdict.Reason)
			}
		})
	}
}

func TestValidateSignupFingerprintAccountCeiling(t *testing.T) {
	queries := testQueries(t)
	svc := NewService(queries, false)

	// Saturate the fingerprint with existing accounts.
	for i := 0; i < maxAccountsPerFingerprint; i++ {
		_, err := queries.CreateAccount(context.Background(), models.CreateAccountParams{
			ID:                types.NewID(),
			Email:             fmt.Sprintf("u%d@example.com", i),
			PasswordHash:      "x",
			DeviceFingerprint: nullString("fp-shared"),
		})
		require.NoError(t, err)
	}

	verdict, err := svc.ValidateSignup(context.Background(), "next@example.com", "fp-shared", false)
	require.NoError(t, err)
	require.False(t, verdict.Allowed)

	// A different fingerprint is unaffected.
	verdict, err = svc.ValidateSignup(context.Background(), "next@example.com", "fp-other", false)
	require.NoError(t, err)
	require.True(t, verdict.Allowed)
}

func TestValidateSignupAttemptRateCeiling(t *testing.T) {
	queries := testQueries(t)
	svc := NewService(queries, false)

	for i := 0; i < maxAttemptsPerFingerprint; i++ {
		_, err := svc.ValidateSignup(context.Background(), "spam@example.com", "fp-busy", false)
		require.NoError(t, err)
	}

	verdict, err := svc.ValidateSignup(context.Background(), "spam@example.com", "fp-busy", false)
	require.NoError(t, err)
	require.False(t, verdict.Allowed)
}

func TestValidateSignupRecordsAttempt(t *testing.T) {
	queries := testQueries(t)
	svc := NewService(queries, false)

	_, err := svc.ValidateSignup(context.Background(), "Audit@Example.com", "fp-audit", true)
	require.NoError(t, err)

	n, err := queries.CountRecentAttemptsByFingerprint(context.Background(), "fp-audit", yesterday())
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestValidateSignupMissingFingerprintDegrades(t *testing.T) {
	queries := testQueries(t)
	svc := NewService(queries, false)

	verdict, err := svc.ValidateSignup(context.Background(), "nofp@example.com", "", false)
	require.NoError(t, err)
	require.True(t, verdict.Allowed)
}
