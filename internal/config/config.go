package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds server configuration.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr         string
	DatabasePath string
	// MasterSecret is the seed for JWT session signing keys.
	MasterSecret string
	// WebhookSecret is the shared secret checked on /api/webhook-new-user.
	WebhookSecret string
	// ResendAPIKey enables admin signup notifications. Empty disables email.
	ResendAPIKey string
	// AdminEmail receives new-signup notifications.
	AdminEmail string
	// TurnstileSecret enables server-side CAPTCHA verification. Empty skips it.
	TurnstileSecret string
	// PhoneVerification gates the phone verification endpoints.
	PhoneVerification bool
	Debug             bool
	AllowedOrigins    []string
}

// Overrides optionally overrides values from environment variables.
//
// A nil pointer means "use the environment/default value".
type Overrides struct {
	Addr              *string
	DatabasePath      *string
	MasterSecret      *string
	WebhookSecret     *string
	PhoneVerification *bool
	Debug             *bool
}

// Load loads server configuration from environment variables and applies any
// explicit overrides.
func Load(overrides Overrides) (*Config, error) {
	port := 3005
	if portStr := os.Getenv("PORT"); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			port = p
		}
	}

	addr := fmt.Sprintf(":%d", port)
	if overrides.Addr != nil {
		addr = *overrides.Addr
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./tangent.db"
	}
	if overrides.DatabasePath != nil {
		dbPath = *overrides.DatabasePath
	}

	masterSecret := os.Getenv("TANGENT_MASTER_SECRET")
	if overrides.MasterSecret != nil {
		masterSecret = *overrides.MasterSecret
	}
	if masterSecret == "" {
		return nil, fmt.Errorf("TANGENT_MASTER_SECRET environment variable is required")
	}

	webhookSecret := os.Getenv("WEBHOOK_SECRET")
	if overrides.WebhookSecret != nil {
		webhookSecret = *overrides.WebhookSecret
	}
	if webhookSecret == "" {
		return nil, fmt.Errorf("WEBHOOK_SECRET environment variable is required")
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "aaron.gantt@gmail.com"
	}

	phoneVerification := false
	if v := os.Getenv("PHONE_VERIFICATION"); v == "true" || v == "1" {
		phoneVerification = true
	}
	if overrides.PhoneVerification != nil {
		phoneVerification = *overrides.PhoneVerification
	}

	debug := false
	if debugStr := os.Getenv("DEBUG"); debugStr == "true" || debugStr == "1" {
		debug = true
	}
	if overrides.Debug != nil {
		debug = *overrides.Debug
	}

	return &Config{
		Addr:              addr,
		DatabasePath:      dbPath,
		MasterSecret:      masterSecret,
		WebhookSecret:     webhookSecret,
		ResendAPIKey:      os.Getenv("RESEND_API_KEY"),
		AdminEmail:        adminEmail,
		TurnstileSecret:   os.Getenv("TURNSTILE_SECRET_KEY"),
		PhoneVerification: phoneVerification,
		Debug:             debug,
		AllowedOrigins:    []string{"*"}, // Marketing site is public, allow all origins
	}, nil
}
