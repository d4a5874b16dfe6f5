package models

import (
	"context"
)

// CreateSessionParams holds the fields for a new session row.
type CreateSessionParams struct {
	ID        string
	AccountID string
}

func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) error {
	_, err := q.db.ExecContext(ctx, `
INSERT INTO sessions (id, account_id) VALUES (?, ?)
`, arg.ID, arg.AccountID)
	return err
}

func (q *Queries) GetSession(ctx context.Context, id string) (Session, error) {
	var s Session
	err := q.db.QueryRowContext(ctx, `
SELECT id, account_id, created_at, revoked_at FROM sessions WHERE id = ?
`, id).Scan(&s.ID, &s.AccountID, &s.CreatedAt, &s.RevokedAt)
	return s, err
}

// RevokeSession marks a session as signed out. Revoking an already revoked
// session is a no-op.
func (q *Queries) RevokeSession(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `
UPDATE sessions SET revoked_at = CURRENT_TIMESTAMP
WHERE id = ? AND revoked_at IS NULL
`, id)
	return err
}
