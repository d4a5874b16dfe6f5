package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aarongantt/tangent-landing/internal/api/middleware"
	"github.com/aarongantt/tangent-landing/internal/crypto"
	"github.com/aarongantt/tangent-landing/internal/fraud"
	"github.com/aarongantt/tangent-landing/internal/logger"
	"github.com/aarongantt/tangent-landing/internal/models"
	"github.com/aarongantt/tangent-landing/internal/notify"
	"github.com/aarongantt/tangent-landing/pkg/types"
)

// minPasswordLength is the shortest password accepted at signup.
const minPasswordLength = 8

type AuthHandler struct {
	db         *sql.DB
	queries    *models.Queries
	jwtManager *crypto.JWTManager
	fraud      *fraud.Service
	turnstile  *fraud.TurnstileVerifier
	mailer     *notify.ResendClient
	adminEmail string
	debug      bool
}

func NewAuthHandler(db *sql.DB, jwtManager *crypto.JWTManager, fraudSvc *fraud.Service,
	turnstile *fraud.TurnstileVerifier, mailer *notify.ResendClient, adminEmail string, debug bool) *AuthHandler {
	return &AuthHandler{
		db:         db,
		queries:    models.New(db),
		jwtManager: jwtManager,
		fraud:      fraudSvc,
		turnstile:  turnstile,
		mailer:     mailer,
		adminEmail: adminEmail,
		debug:      debug,
	}
}

// PostSignUp creates a new account after fraud validation passes.
// POST /v1/auth/signup
func (h *AuthHandler) PostSignUp(c *gin.Context) {
	var req types.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}

	email := types.NormalizeEmail(req.Email)
	if len(req.Password) < minPasswordLength {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "password must be at least 8 characters"})
		return
	}

	// Server-side CAPTCHA check. A verification outage degrades to "not
	// passed"; whether that blocks is the fraud service's call.
	captchaPassed := false
	if h.turnstile != nil {
		ok, err := h.turnstile.Verify(c.Request.Context(), req.CaptchaToken, c.ClientIP())
		if err != nil {
			logger.Warnf("PostSignUp: turnstile verify failed: %v", err)
		}
		captchaPassed = ok
	}

	verdict, err := h.fraud.ValidateSignup(c.Request.Context(), email, req.DeviceFingerprint, captchaPassed)
	if err != nil {
		h.internalError(c, "PostSignUp: fraud validation failed", err, "signup validation failed")
		return
	}
	if !verdict.Allowed {
		c.JSON(http.StatusForbidden, types.ErrorResponse{Error: verdict.Reason})
		return
	}

	if _, err := h.queries.GetAccountByEmail(c.Request.Context(), email); err == nil {
		c.JSON(http.StatusConflict, types.ErrorResponse{Error: "an account with this email already exists"})
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		h.internalError(c, "PostSignUp: GetAccountByEmail failed", err, "database error")
		return
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		h.internalError(c, "PostSignUp: HashPassword failed", err, "failed to create account")
		return
	}

	var fp sql.NullString
	if req.DeviceFingerprint != "" {
		fp = sql.NullString{String: req.DeviceFingerprint, Valid: true}
	}
	account, err := h.queries.CreateAccount(c.Request.Context(), models.CreateAccountParams{
		ID:                types.NewID(),
		Email:             email,
		PasswordHash:      passwordHash,
		DeviceFingerprint: fp,
		TrialGranted:      false,
	})
	if err != nil {
		h.internalError(c, "PostSignUp: CreateAccount failed", err, "failed to create account")
		return
	}

	token, err := h.issueToken(c, account)
	if err != nil {
		h.internalError(c, "PostSignUp: issueToken failed", err, "failed to create token")
		return
	}

	// Admin notification is best-effort; signup never fails on it.
	h.notifySignup(c, account)

	c.JSON(http.StatusOK, types.AuthResponse{
		Success: true,
		Token:   token,
		Message: "Check your email to confirm your account.",
	})
}

// PostSignIn authenticates an existing account.
// POST /v1/auth/signin
func (h *AuthHandler) PostSignIn(c *gin.Context) {
	var req types.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}

	account, err := h.queries.GetAccountByEmail(c.Request.Context(), types.NormalizeEmail(req.Email))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "invalid email or password"})
		return
	}
	if err != nil {
		h.internalError(c, "PostSignIn: GetAccountByEmail failed", err, "database error")
		return
	}

	if !crypto.CheckPassword(account.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "invalid email or password"})
		return
	}

	token, err := h.issueToken(c, account)
	if err != nil {
		h.internalError(c, "PostSignIn: issueToken failed", err, "failed to create token")
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{Success: true, Token: token})
}

// GetSession reports the current session, or null when not signed in. An
// absent or invalid token is a valid signed-out state, never an error.
// GET /v1/auth/session
func (h *AuthHandler) GetSession(c *gin.Context) {
	session := h.currentSession(c)
	c.JSON(http.StatusOK, types.SessionResponse{Session: session})
}

// PostSignOut revokes the session behind the presented token.
// POST /v1/auth/signout
func (h *AuthHandler) PostSignOut(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "unauthorized"})
		return
	}
	if err := h.queries.RevokeSession(c.Request.Context(), sessionID); err != nil {
		h.internalError(c, "PostSignOut: RevokeSession failed", err, "failed to sign out")
		return
	}
	c.JSON(http.StatusOK, types.SuccessResponse{Success: true})
}

// GetNav returns which navigation elements the page should show for the
// caller's auth state.
// GET /v1/nav
func (h *AuthHandler) GetNav(c *gin.Context) {
	loggedIn := h.currentSession(c) != nil
	c.JSON(http.StatusOK, types.NavState{
		LoggedIn:      loggedIn,
		ShowSignOut:   loggedIn,
		ShowAccount:   loggedIn,
		ShowLogin:     !loggedIn,
		ShowSubscribe: !loggedIn,
		ShowHeroCTAs:  !loggedIn,
	})
}

// currentSession resolves the optional bearer token to a live session,
// returning nil for missing, invalid, or revoked ones.
func (h *AuthHandler) currentSession(c *gin.Context) *types.Session {
	claims, exists := c.Get("claims")
	if !exists {
		return nil
	}
	tc, ok := claims.(*crypto.TokenClaims)
	if !ok {
		return nil
	}

	session, err := h.queries.GetSession(c.Request.Context(), tc.ID)
	if err != nil || session.RevokedAt.Valid {
		return nil
	}

	var expiresAt int64
	if tc.ExpiresAt != nil {
		expiresAt = tc.ExpiresAt.Unix()
	}
	return &types.Session{
		UserID:    tc.UserID,
		Email:     tc.Email,
		ExpiresAt: expiresAt,
	}
}

// issueToken creates a session row and signs a token bound to it.
func (h *AuthHandler) issueToken(c *gin.Context, account models.Account) (string, error) {
	sessionID := types.NewID()
	if err := h.queries.CreateSession(c.Request.Context(), models.CreateSessionParams{
		ID:        sessionID,
		AccountID: account.ID,
	}); err != nil {
		return "", err
	}
	return h.jwtManager.CreateToken(sessionID, account.ID, account.Email)
}

// notifySignup emails the admin about a fresh account. Failures are logged
// and swallowed.
func (h *AuthHandler) notifySignup(c *gin.Context, account models.Account) {
	if h.mailer == nil || h.adminEmail == "" {
		return
	}
	info := notify.SignupInfo{
		UserID:       account.ID,
		Email:        account.Email,
		CreatedAt:    account.CreatedAt.Format(time.RFC3339),
		TrialGranted: account.TrialGranted,
	}
	if account.TrialStartedAt.Valid {
		info.TrialStartedAt = account.TrialStartedAt.Time.Format(time.RFC3339)
	}
	if err := h.mailer.Send(c.Request.Context(), notify.Email{
		To:      h.adminEmail,
		Subject: notify.SignupEmailSubject(info),
		HTML:    notify.SignupEmailHTML(info),
	}); err != nil {
		logger.Warnf("PostSignUp: admin notification failed: %v", err)
	}
}

// internalError logs the cause and answers 500, exposing the raw error only
// in debug mode.
func (h *AuthHandler) internalError(c *gin.Context, logMsg string, err error, publicMsg string) {
	logger.Errorf("%s: %v", logMsg, err)
	if h.debug {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: publicMsg})
}
