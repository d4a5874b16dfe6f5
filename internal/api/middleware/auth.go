package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aarongantt/tangent-landing/internal/crypto"
	"github.com/aarongantt/tangent-landing/pkg/types"
)

// AuthMiddleware creates a middleware that validates JWT tokens
func AuthMiddleware(jwtManager *crypto.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, jwtManager)
		if !ok {
			c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "invalid or missing token"})
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware parses a bearer token when present but never
// rejects the request. Handlers that treat "not signed in" as a valid state
// (session lookup, nav state) use this variant.
func OptionalAuthMiddleware(jwtManager *crypto.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, jwtManager); ok {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// bearerClaims extracts and verifies the "Bearer <token>" header.
func bearerClaims(c *gin.Context, jwtManager *crypto.JWTManager) (*crypto.TokenClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}
	claims, err := jwtManager.VerifyToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

func setClaims(c *gin.Context, claims *crypto.TokenClaims) {
	c.Set("accountID", claims.UserID)
	c.Set("sessionID", claims.ID)
	c.Set("email", claims.Email)
	c.Set("claims", claims)
}

// GetAccountID extracts the account ID from the Gin context
func GetAccountID(c *gin.Context) (string, bool) {
	accountID, exists := c.Get("accountID")
	if !exists {
		return "", false
	}
	return accountID.(string), true
}

// GetSessionID extracts the session ID from the Gin context
func GetSessionID(c *gin.Context) (string, bool) {
	sessionID, exists := c.Get("sessionID")
	if !exists {
		return "", false
	}
	return sessionID.(string), true
}

// GetEmail extracts the authenticated email from the Gin context
func GetEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get("email")
	if !exists {
		return "", false
	}
	return email.(string), true
}
