package middleware

import (
	"context"
	"net/http"
	"strings"

	"poojaseva/models"
	"poojaseva/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const currentUserKey = "currentUser"

// UserLookup resolves a token subject into the current account.
type UserLookup interface {
	CurrentUser(ctx context.Context, id string) (*models.CurrentUser, error)
}

// JWTAuthMiddleware validates the bearer token and stores the current user on the context.
func JWTAuthMiddleware(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		user, err := users.CurrentUser(c.Request.Context(), claims.Subject)
		if err != nil {
			utils.GetLogger().Debug("token subject not resolvable", zap.String("sub", claims.Subject), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
			return
		}

		c.Set(currentUserKey, *user)
		c.Next()
	}
}

// CurrentUser returns the identity stored by JWTAuthMiddleware.
func CurrentUser(c *gin.Context) (models.CurrentUser, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return models.CurrentUser{}, false
	}
	u, ok := v.(models.CurrentUser)
	return u, ok
}

// SetCurrentUser stores an identity on the context.
func SetCurrentUser(c *gin.Context, u models.CurrentUser) {
	c.Set(currentUserKey, u)
}
