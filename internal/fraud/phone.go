package fraud

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/aarongantt/tangent-landing/internal/crypto"
	"github.com/aarongantt/tangent-landing/internal/models"
	"github.com/aarongantt/tangent-landing/pkg/types"
)

const (
	// phoneCodeDigits is the length of a verification code.
	phoneCodeDigits = 6
	// phoneCodeTTL is how long a code remains valid.
	phoneCodeTTL = 10 * time.Minute
	// phoneCodeMaxAttempts bounds wrong guesses per code.
	phoneCodeMaxAttempts = 5
)

var phoneNumberPattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// Sentinel errors surfaced to the phone verification handler.
var (
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	ErrCodeNotFound       = errors.New("no pending verification code")
	ErrCodeExpired        = errors.New("verification code expired")
	ErrCodeMismatch       = errors.New("incorrect verification code")
	ErrTooManyAttempts    = errors.New("too many verification attempts")
)

// PhoneVerifier issues and checks phone verification codes.
//
// SMS delivery itself is delegated to the provider integration; this type
// owns the code lifecycle.
type PhoneVerifier struct {
	queries *models.Queries
}

// NewPhoneVerifier creates a phone verification service.
func NewPhoneVerifier(queries *models.Queries) *PhoneVerifier {
	return &PhoneVerifier{queries: queries}
}

// CreateCode issues a new verification code for the account and phone number.
// The code is returned so the SMS integration can deliver it.
func (p *PhoneVerifier) CreateCode(ctx context.Context, accountID, phoneNumber string) (string, error) {
	if !phoneNumberPattern.MatchString(phoneNumber) {
		return "", ErrInvalidPhoneNumber
	}

	code, err := crypto.RandDigits(phoneCodeDigits)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	err = p.queries.CreatePhoneCode(ctx, models.CreatePhoneCodeParams{
		ID:          types.NewID(),
		AccountID:   accountID,
		PhoneNumber: phoneNumber,
		Code:        code,
		ExpiresAt:   time.Now().Add(phoneCodeTTL),
	})
	if err != nil {
		return "", fmt.Errorf("store code: %w", err)
	}
	return code, nil
}

// VerifyCode checks a submitted code against the active one.
func (p *PhoneVerifier) VerifyCode(ctx context.Context, accountID, phoneNumber, code string) error {
	if !phoneNumberPattern.MatchString(phoneNumber) {
		return ErrInvalidPhoneNumber
	}

	pending, err := p.queries.GetActivePhoneCode(ctx, accountID, phoneNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCodeNotFound
	}
	if err != nil {
		return fmt.Errorf("load code: %w", err)
	}

	if time.Now().After(pending.ExpiresAt) {
		return ErrCodeExpired
	}

	attempts, err := p.queries.IncrementPhoneCodeAttempts(ctx, pending.ID)
	if err != nil {
		return fmt.Errorf("count attempt: %w", err)
	}
	if attempts > phoneCodeMaxAttempts {
		return ErrTooManyAttempts
	}

	if pending.Code != code {
		return ErrCodeMismatch
	}

	if err := p.queries.MarkPhoneCodeVerified(ctx, pending.ID); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	return nil
}
