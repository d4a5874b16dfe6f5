package types

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates a unique identifier for database rows.
func NewID() string {
	return uuid.NewString()
}

// Common response types

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// Auth types

type SignUpRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	// DeviceFingerprint is the opaque visitor ID from the client, if any.
	DeviceFingerprint string `json:"deviceFingerprint"`
	CaptchaToken      string `json:"captchaToken"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// Session mirrors what the browser used to read off the auth client: either a
// session record or null.
type Session struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"expiresAt"`
}

type SessionResponse struct {
	Session *Session `json:"session"`
}

// NavState describes which navigation elements a page should show for the
// current auth state.
type NavState struct {
	LoggedIn      bool `json:"loggedIn"`
	ShowSignOut   bool `json:"showSignOut"`
	ShowAccount   bool `json:"showAccount"`
	ShowLogin     bool `json:"showLogin"`
	ShowSubscribe bool `json:"showSubscribe"`
	ShowHeroCTAs  bool `json:"showHeroCtas"`
}

// Fraud prevention types

type ValidateSignupRequest struct {
	Email             string `json:"email" binding:"required"`
	DeviceFingerprint string `json:"deviceFingerprint"`
	CaptchaPassed     bool   `json:"captchaPassed"`
}

type ValidateSignupResponse struct {
	Allowed bool   `json:"allowed"`
	Error   string `json:"error,omitempty"`
}

type PhoneVerificationRequest struct {
	Action      string `json:"action" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Code        string `json:"code"`
}

type PhoneVerificationResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Webhook types

// WebhookRecord is the new profiles row delivered by the database webhook.
type WebhookRecord struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	CreatedAt      string `json:"created_at"`
	TrialGranted   bool   `json:"trial_granted"`
	TrialStartedAt string `json:"trial_started_at"`
}

type WebhookNewUserRequest struct {
	Record WebhookRecord `json:"record"`
}

type WebhookNewUserResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	UserEmail string `json:"user_email"`
}

// NormalizeEmail lowercases and trims an email address for storage lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
