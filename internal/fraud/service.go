// Package fraud scores signup attempts before an account is created. The
// verdicts are advisory for the auth handler: a blocked verdict aborts signup,
// anything that merely fails to load (fingerprint missing, CAPTCHA service
// unreachable) degrades to a warning.
package fraud

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/aarongantt/tangent-landing/internal/logger"
	"github.com/aarongantt/tangent-landing/internal/models"
	"github.com/aarongantt/tangent-landing/pkg/types"
)

const (
	// maxAccountsPerFingerprint bounds how many accounts one device may create.
	maxAccountsPerFingerprint = 3
	// maxAttemptsPerFingerprint bounds signup attempts per device per window.
	maxAttemptsPerFingerprint = 10
	// attemptWindow is the lookback window for attempt counting.
	attemptWindow = 24 * time.Hour
)

// disposableDomains are email providers commonly used for throwaway accounts.
var disposableDomains = map[string]bool{
	"mailinator.com":    true,
	"guerrillamail.com": true,
	"10minutemail.com":  true,
	"tempmail.com":      true,
	"temp-mail.org":     true,
	"yopmail.com":       true,
	"sharklasers.com":   true,
	"trashmail.com":     true,
}

// Verdict is the outcome of scoring one signup attempt.
type Verdict struct {
	Allowed bool
	// Reason explains a blocked verdict in user-facing terms.
	Reason string
}

// Service scores signup attempts and records them.
type Service struct {
	queries *models.Queries
	// captchaRequired blocks signups whose CAPTCHA did not pass.
	captchaRequired bool
}

// NewService creates a fraud scoring service. captchaRequired should be true
// when a Turnstile secret is configured.
func NewService(queries *models.Queries, captchaRequired bool) *Service {
	return &Service{
		queries:         queries,
		captchaRequired: captchaRequired,
	}
}

// ValidateSignup scores one signup attempt and records the decision. The
// returned error is reserved for storage failures; scoring outcomes are
// reported through the Verdict.
func (s *Service) ValidateSignup(ctx context.Context, email, fingerprint string, captchaPassed bool) (Verdict, error) {
	verdict := s.score(ctx, email, fingerprint, captchaPassed)

	var fp sql.NullString
	if fingerprint != "" {
		fp = sql.NullString{String: fingerprint, Valid: true}
	}
	var reason sql.NullString
	if verdict.Reason != "" {
		reason = sql.NullString{String: verdict.Reason, Valid: true}
	}
	err := s.queries.CreateSignupAttempt(ctx, models.CreateSignupAttemptParams{
		ID:                types.NewID(),
		Email:             types.NormalizeEmail(email),
		DeviceFingerprint: fp,
		CaptchaPassed:     captchaPassed,
		Allowed:           verdict.Allowed,
		Reason:            reason,
	})
	if err != nil {
		// The decision stands even when the audit row fails to write.
		logger.Errorf("fraud: failed to record signup attempt: %v", err)
	}
	return verdict, nil
}

func (s *Service) score(ctx context.Context, email, fingerprint string, captchaPassed bool) Verdict {
	email = types.NormalizeEmail(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return Verdict{Reason: "A valid email address is required."}
	}
	domain := email[at+1:]

	if disposableDomains[domain] {
		return Verdict{Reason: "Disposable email addresses are not allowed."}
	}

	if s.captchaRequired && !captchaPassed {
		return Verdict{Reason: "CAPTCHA verification is required."}
	}

	if fingerprint == "" {
		// Fingerprinting degrades gracefully: score without it.
		logger.Debugf("fraud: no device fingerprint for %s", email)
		return Verdict{Allowed: true}
	}

	accounts, err := s.queries.CountAccountsByFingerprint(ctx, fingerprint)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.Warnf("fraud: fingerprint account count failed: %v", err)
	} else if accounts >= maxAccountsPerFingerprint {
		return Verdict{Reason: "Signup blocked due to suspicious activity."}
	}

	attempts, err := s.queries.CountRecentAttemptsByFingerprint(ctx, fingerprint, time.Now().Add(-attemptWindow))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.Warnf("fraud: fingerprint attempt count failed: %v", err)
	} else if attempts >= maxAttemptsPerFingerprint {
		return Verdict{Reason: "Too many signup attempts from this device. Try again later."}
	}

	return Verdict{Allowed: true}
}
