package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/veselicnik/srecke-backend/internal/auth"
	"github.com/veselicnik/srecke-backend/internal/models"
	"golang.org/x/exp/slog"
)

const (
	identityKey    = "identity"
	bearerTokenKey = "bearerToken"
)

// AuthMiddleware requires a bearer token accepted by verifier and stores the
// resulting identity in the context
func AuthMiddleware(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization header"})
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !ok || scheme != "Bearer" || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization format"})
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				slog.Warn("AuthMiddleware: token rejected", "error", err, "correlationId", CorrelationID(c))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
				return
			}
			slog.Error("AuthMiddleware: verification failed", "error", err, "correlationId", CorrelationID(c))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
			return
		}

		c.Set(identityKey, identity)
		c.Set(bearerTokenKey, token)
		c.Next()
	}
}

// RequireAdmin allows only identities with the admin user type.
// It must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		if !identity.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the verified caller or nil
func CurrentIdentity(c *gin.Context) *models.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*models.Identity)
	return identity
}

// BearerToken returns the raw token the caller authenticated with
func BearerToken(c *gin.Context) string {
	return c.GetString(bearerTokenKey)
}
