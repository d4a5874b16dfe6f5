package models

import (
	"context"
	"database/sql"
)

// CreateAccountParams holds the fields for a new account row.
type CreateAccountParams struct {
	ID                string
	Email             string
	PasswordHash      string
	DeviceFingerprint sql.NullString
	TrialGranted      bool
}

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) (Account, error) {
	trial := 0
	if arg.TrialGranted {
		trial = 1
	}
	_, err := q.db.ExecContext(ctx, `
INSERT INTO accounts (id, email, password_hash, device_fingerprint, trial_granted)
VALUES (?, ?, ?, ?, ?)
`, arg.ID, arg.Email, arg.PasswordHash, arg.DeviceFingerprint, trial)
	if err != nil {
		return Account{}, err
	}
	return q.GetAccountByID(ctx, arg.ID)
}

func (q *Queries) GetAccountByID(ctx context.Context, id string) (Account, error) {
	return q.scanAccount(q.db.QueryRowContext(ctx, `
SELECT id, email, password_hash, email_confirmed, device_fingerprint,
       trial_granted, trial_started_at, created_at, updated_at
FROM accounts WHERE id = ?
`, id))
}

func (q *Queries) GetAccountByEmail(ctx context.Context, email string) (Account, error) {
	return q.scanAccount(q.db.QueryRowContext(ctx, `
SELECT id, email, password_hash, email_confirmed, device_fingerprint,
       trial_granted, trial_started_at, created_at, updated_at
FROM accounts WHERE email = ?
`, email))
}

// CountAccountsByFingerprint reports how many accounts share a device
// fingerprint. Used by fraud scoring.
func (q *Queries) CountAccountsByFingerprint(ctx context.Context, fingerprint string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM accounts WHERE device_fingerprint = ?
`, fingerprint).Scan(&n)
	return n, err
}

// ConfirmAccountEmail marks the account's email as confirmed.
func (q *Queries) ConfirmAccountEmail(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `
UPDATE accounts SET email_confirmed = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`, id)
	return err
}

func (q *Queries) scanAccount(row *sql.Row) (Account, error) {
	var a Account
	var confirmed, trial int64
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &confirmed, &a.DeviceFingerprint,
		&trial, &a.TrialStartedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return Account{}, err
	}
	a.EmailConfirmed = confirmed != 0
	a.TrialGranted = trial != 0
	return a, nil
}
