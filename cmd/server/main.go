package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/aarongantt/tangent-landing/internal/api/handlers"
	"github.com/aarongantt/tangent-landing/internal/api/middleware"
	"github.com/aarongantt/tangent-landing/internal/config"
	"github.com/aarongantt/tangent-landing/internal/crypto"
	"github.com/aarongantt/tangent-landing/internal/database"
	"github.com/aarongantt/tangent-landing/internal/fraud"
	"github.com/aarongantt/tangent-landing/internal/logger"
	"github.com/aarongantt/tangent-landing/internal/models"
	"github.com/aarongantt/tangent-landing/internal/notify"
	"github.com/aarongantt/tangent-landing/internal/stream"
)

func main() {
	// Load configuration
	cfg, err := config.Load(config.Overrides{})
	if err != nil {
		logger.Errorf("Failed to load config: %v", err)
		os.Exit(1)
	}

	if cfg.Debug {
		logger.SetLevel(logger.LevelDebug)
	}

	// Set Gin mode
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Open database
	logger.Infof("Opening database: %s", cfg.DatabasePath)
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		logger.Errorf("Failed to open database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize JWT manager
	logger.Infof("Initializing JWT manager...")
	jwtManager, err := crypto.NewJWTManager(cfg.MasterSecret)
	if err != nil {
		logger.Errorf("Failed to create JWT manager: %v", err)
		os.Exit(1)
	}

	// Email notifications (optional)
	mailer, err := notify.NewResendClient(notify.ResendConfig{
		APIKey: cfg.ResendAPIKey,
		From:   "TANGENT Notifications <notifications@tangentapp.co>",
	})
	if err != nil {
		logger.Errorf("Failed to create Resend client: %v", err)
		os.Exit(1)
	}
	if mailer == nil {
		logger.Warnf("RESEND_API_KEY not set - admin notifications disabled")
	}

	// Server-side CAPTCHA verification (optional)
	turnstile := fraud.NewTurnstileVerifier(fraud.TurnstileConfig{Secret: cfg.TurnstileSecret})
	if turnstile == nil {
		logger.Warnf("TURNSTILE_SECRET_KEY not set - CAPTCHA verification disabled")
	}

	queries := models.New(db.DB)
	fraudSvc := fraud.NewService(queries, turnstile != nil)
	phones := fraud.NewPhoneVerifier(queries)

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS middleware
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"*"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	// Logging middleware
	router.Use(middleware.LoggingMiddleware())

	// Root endpoint - returns plain text for client validation
	router.GET("/", func(c *gin.Context) {
		c.String(200, "Welcome to the Tangent site service!")
	})

	// Shared header fragment
	router.GET("/header.html", handlers.GetHeader)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db.DB, jwtManager, fraudSvc, turnstile, mailer, cfg.AdminEmail, cfg.Debug)
	fraudHandler := handlers.NewFraudHandler(fraudSvc, phones, cfg.PhoneVerification)
	webhookHandler := handlers.NewWebhookHandler(cfg.WebhookSecret, mailer, cfg.AdminEmail)
	demoStream := stream.NewServer()

	// Public routes (no auth required)
	v1 := router.Group("/v1")
	{
		v1.POST("/auth/signup", authHandler.PostSignUp)
		v1.POST("/auth/signin", authHandler.PostSignIn)
	}

	// Routes that accept but never require a token
	optional := v1.Group("")
	optional.Use(middleware.OptionalAuthMiddleware(jwtManager))
	{
		optional.GET("/auth/session", authHandler.GetSession)
		optional.GET("/nav", authHandler.GetNav)
	}

	// Protected routes (auth required)
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(jwtManager))
	{
		protected.POST("/auth/signout", authHandler.PostSignOut)
	}

	// Fraud prevention API (legacy /api prefix kept for the deployed pages)
	api := router.Group("/api")
	{
		api.POST("/validate-signup", fraudHandler.PostValidateSignup)

		// Optional auth so the disabled feature flag can short-circuit
		// before any token check; the handler enforces identity itself.
		phone := api.Group("")
		phone.Use(middleware.OptionalAuthMiddleware(jwtManager))
		phone.POST("/phone-verification", fraudHandler.PostPhoneVerification)

		// Webhook: POST only, anything else is 405.
		api.POST("/webhook-new-user", webhookHandler.PostNewUser)
		api.GET("/webhook-new-user", webhookHandler.MethodNotAllowed)
		api.PUT("/webhook-new-user", webhookHandler.MethodNotAllowed)
		api.PATCH("/webhook-new-user", webhookHandler.MethodNotAllowed)
		api.DELETE("/webhook-new-user", webhookHandler.MethodNotAllowed)
	}

	// Demo frame stream
	router.GET("/v1/demo/stream", demoStream.HandleWebSocket)

	// Start HTTP server
	logger.Infof("Tangent site service starting on http://localhost%s", cfg.Addr)
	logger.Infof("Database: %s", cfg.DatabasePath)

	if err := router.Run(cfg.Addr); err != nil {
		logger.Errorf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
