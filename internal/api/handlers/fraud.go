package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aarongantt/tangent-landing/internal/api/middleware"
	"github.com/aarongantt/tangent-landing/internal/fraud"
	"github.com/aarongantt/tangent-landing/internal/logger"
	"github.com/aarongantt/tangent-landing/pkg/types"
)

type FraudHandler struct {
	service *fraud.Service
	phones  *fraud.PhoneVerifier
	// phoneVerificationEnabled gates the phone endpoints entirely.
	phoneVerificationEnabled bool
}

func NewFraudHandler(service *fraud.Service, phones *fraud.PhoneVerifier, phoneVerificationEnabled bool) *FraudHandler {
	return &FraudHandler{
		service:                  service,
		phones:                   phones,
		phoneVerificationEnabled: phoneVerificationEnabled,
	}
}

// PostValidateSignup scores a prospective signup before the client submits
// the real signup request.
// POST /api/validate-signup
func (h *FraudHandler) PostValidateSignup(c *gin.Context) {
	var req types.ValidateSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}

	verdict, err := h.service.ValidateSignup(c.Request.Context(), req.Email, req.DeviceFingerprint, req.CaptchaPassed)
	if err != nil {
		logger.Errorf("PostValidateSignup: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "validation failed"})
		return
	}

	c.JSON(http.StatusOK, types.ValidateSignupResponse{
		Allowed: verdict.Allowed,
		Error:   verdict.Reason,
	})
}

// PostPhoneVerification issues or checks a phone verification code.
// POST /api/phone-verification
func (h *FraudHandler) PostPhoneVerification(c *gin.Context) {
	if !h.phoneVerificationEnabled {
		// Feature-flagged off: report success so clients skip the gate.
		c.JSON(http.StatusOK, types.PhoneVerificationResponse{Success: true, Status: "disabled"})
		return
	}

	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req types.PhoneVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}

	switch req.Action {
	case "create":
		code, err := h.phones.CreateCode(c.Request.Context(), accountID, req.PhoneNumber)
		if err != nil {
			h.phoneError(c, err)
			return
		}
		// SMS delivery is a provider integration; until then the code is
		// only logged server-side.
		logger.Debugf("phone verification code for %s issued", req.PhoneNumber)
		_ = code
		c.JSON(http.StatusOK, types.PhoneVerificationResponse{Success: true, Status: "code_sent"})

	case "verify":
		if err := h.phones.VerifyCode(c.Request.Context(), accountID, req.PhoneNumber, req.Code); err != nil {
			h.phoneError(c, err)
			return
		}
		c.JSON(http.StatusOK, types.PhoneVerificationResponse{Success: true, Status: "verified"})

	default:
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "action must be create or verify"})
	}
}

// phoneError maps phone verification failures to HTTP answers.
func (h *FraudHandler) phoneError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, fraud.ErrInvalidPhoneNumber):
		c.JSON(http.StatusBadRequest, types.PhoneVerificationResponse{Error: err.Error()})
	case errors.Is(err, fraud.ErrCodeNotFound),
		errors.Is(err, fraud.ErrCodeExpired),
		errors.Is(err, fraud.ErrCodeMismatch):
		c.JSON(http.StatusBadRequest, types.PhoneVerificationResponse{Error: err.Error()})
	case errors.Is(err, fraud.ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, types.PhoneVerificationResponse{Error: err.Error()})
	default:
		logger.Errorf("PostPhoneVerification: %v", err)
		c.JSON(http.StatusInternalServerError, types.PhoneVerificationResponse{Error: "phone verification failed"})
	}
}
