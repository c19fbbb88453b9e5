package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/minhvu/devconnect/pkg/auth"
)

const (
	// AuthTokenHeader is the fixed header slot the credential travels in.
	// No "Bearer " prefix; the value is the raw token.
	AuthTokenHeader = "x-auth-token"

	GinContextKeyUserID = "userID"
)

// AuthMiddleware verifies the credential and either attaches the identity to
// the request context or aborts with 401. AbortWithStatusJSON stops the chain,
// so a rejected request never reaches the downstream handler.
func AuthMiddleware(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {

		token := c.GetHeader(AuthTokenHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing auth token"})
			return
		}

		claims, err := jwtSvc.ValidateToken(token)
		if err != nil {
			if errors.Is(err, auth.ErrMissingToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing auth token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid auth token"})
			return
		}

		c.Set(GinContextKeyUserID, claims.UserID)

		c.Next()
	}
}

func GetUserIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(GinContextKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return userID, true
}
