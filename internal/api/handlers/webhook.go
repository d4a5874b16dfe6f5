package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aarongantt/tangent-landing/internal/logger"
	"github.com/aarongantt/tangent-landing/internal/notify"
	"github.com/aarongantt/tangent-landing/pkg/types"
)

// webhookSecretHeader carries the shared secret on webhook deliveries.
const webhookSecretHeader = "x-webhook-secret"

type WebhookHandler struct {
	secret     string
	mailer     *notify.ResendClient
	adminEmail string
}

func NewWebhookHandler(secret string, mailer *notify.ResendClient, adminEmail string) *WebhookHandler {
	return &WebhookHandler{
		secret:     secret,
		mailer:     mailer,
		adminEmail: adminEmail,
	}
}

// PostNewUser handles the new-signup database webhook: verify the shared
// secret, email the admin, report success. Email failure is swallowed so the
// webhook source does not retry forever over a notification.
// POST /api/webhook-new-user
func (h *WebhookHandler) PostNewUser(c *gin.Context) {
	secret := c.GetHeader(webhookSecretHeader)
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.secret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "invalid webhook secret",
		})
		return
	}

	var req types.WebhookNewUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": err.Error(),
		})
		return
	}
	record := req.Record
	logger.Infof("webhook: new user %s (%s)", record.Email, record.ID)

	if h.mailer != nil && h.adminEmail != "" {
		info := notify.SignupInfo{
			UserID:         record.ID,
			Email:          record.Email,
			CreatedAt:      record.CreatedAt,
			TrialGranted:   record.TrialGranted,
			TrialStartedAt: record.TrialStartedAt,
		}
		err := h.mailer.Send(c.Request.Context(), notify.Email{
			To:      h.adminEmail,
			Subject: notify.SignupEmailSubject(info),
			HTML:    notify.SignupEmailHTML(info),
		})
		if err != nil {
			logger.Errorf("webhook: notification email failed: %v", err)
		}
	} else {
		logger.Warnf("webhook: email not configured, skipping notification")
	}

	c.JSON(http.StatusOK, types.WebhookNewUserResponse{
		Success:   true,
		Message:   "Notification processed",
		UserEmail: record.Email,
	})
}

// MethodNotAllowed answers non-POST requests on the webhook path.
func (h *WebhookHandler) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, types.ErrorResponse{Error: "Method not allowed"})
}
