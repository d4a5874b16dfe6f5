package models

import (
	"context"
	"database/sql"
	"time"
)

// CreateSignupAttemptParams records one fraud-validation decision.
type CreateSignupAttemptParams struct {
	ID                string
	Email             string
	DeviceFingerprint sql.NullString
	CaptchaPassed     bool
	Allowed           bool
	Reason            sql.NullString
}

func (q *Queries) CreateSignupAttempt(ctx context.Context, arg CreateSignupAttemptParams) error {
	captcha, allowed := 0, 0
	if arg.CaptchaPassed {
		captcha = 1
	}
	if arg.Allowed {
		allowed = 1
	}
	_, err := q.db.ExecContext(ctx, `
INSERT INTO signup_attempts (id, email, device_fingerprint, captcha_passed, allowed, reason)
VALUES (?, ?, ?, ?, ?, ?)
`, arg.ID, arg.Email, arg.DeviceFingerprint, captcha, allowed, arg.Reason)
	return err
}

// CountRecentAttemptsByFingerprint counts signup attempts sharing a
// fingerprint within the lookback window.
func (q *Queries) CountRecentAttemptsByFingerprint(ctx context.Context, fingerprint string, since time.Time) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM signup_attempts
WHERE device_fingerprint = ? AND created_at >= ?
`, fingerprint, since).Scan(&n)
	return n, err
}

// CreatePhoneCodeParams holds the fields for a new phone verification code.
type CreatePhoneCodeParams struct {
	ID          string
	AccountID   string
	PhoneNumber string
	Code        string
	ExpiresAt   time.Time
}

func (q *Queries) CreatePhoneCode(ctx context.Context, arg CreatePhoneCodeParams) error {
	_, err := q.db.ExecContext(ctx, `
INSERT INTO phone_codes (id, account_id, phone_number, code, expires_at)
VALUES (?, ?, ?, ?, ?)
`, arg.ID, arg.AccountID, arg.PhoneNumber, arg.Code, arg.ExpiresAt)
	return err
}

// GetActivePhoneCode returns the most recent unverified code for an account
// and phone number.
func (q *Queries) GetActivePhoneCode(ctx context.Context, accountID, phoneNumber string) (PhoneCode, error) {
	var p PhoneCode
	err := q.db.QueryRowContext(ctx, `
SELECT id, account_id, phone_number, code, attempts, expires_at, verified_at, created_at
FROM phone_codes
WHERE account_id = ? AND phone_number = ? AND verified_at IS NULL
ORDER BY created_at DESC LIMIT 1
`, accountID, phoneNumber).Scan(&p.ID, &p.AccountID, &p.PhoneNumber, &p.Code,
		&p.Attempts, &p.ExpiresAt, &p.VerifiedAt, &p.CreatedAt)
	return p, err
}

// IncrementPhoneCodeAttempts bumps the attempt counter and returns the new
// value.
func (q *Queries) IncrementPhoneCodeAttempts(ctx context.Context, id string) (int64, error) {
	_, err := q.db.ExecContext(ctx, `
UPDATE phone_codes SET attempts = attempts + 1 WHERE id = ?
`, id)
	if err != nil {
		return 0, err
	}
	var n int64
	err = q.db.QueryRowContext(ctx, `SELECT attempts FROM phone_codes WHERE id = ?`, id).Scan(&n)
	return n, err
}

// MarkPhoneCodeVerified marks a code as consumed.
func (q *Queries) MarkPhoneCodeVerified(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `
UPDATE phone_codes SET verified_at = CURRENT_TIMESTAMP WHERE id = ?
`, id)
	return err
}
