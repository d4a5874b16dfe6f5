// Package models contains the hand-written query layer over the SQLite
// schema. Methods follow the Params-struct convention so call sites stay
// explicit about what they write.
package models

import (
	"database/sql"
	"time"
)

// Queries wraps a database handle with typed query methods.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance over the given database handle.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// Account is a registered site account.
type Account struct {
	ID                string
	Email             string
	PasswordHash      string
	EmailConfirmed    bool
	DeviceFingerprint sql.NullString
	TrialGranted      bool
	TrialStartedAt    sql.NullTime
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Session is one login session; revoked sessions stay around for auditing.
type Session struct {
	ID        string
	AccountID string
	CreatedAt time.Time
	RevokedAt sql.NullTime
}

// SignupAttempt records one fraud-validation decision.
type SignupAttempt struct {
	ID                string
	Email             string
	DeviceFingerprint sql.NullString
	CaptchaPassed     bool
	Allowed           bool
	Reason            sql.NullString
	CreatedAt         time.Time
}

// PhoneCode is an outstanding phone verification code.
type PhoneCode struct {
	ID          string
	AccountID   string
	PhoneNumber string
	Code        string
	Attempts    int64
	ExpiresAt   time.Time
	VerifiedAt  sql.NullTime
	CreatedAt   time.Time
}
