package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

// RequireRole rejects authenticated users whose role is not listed.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		if !slices.Contains(roles, u.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "This action is not allowed for your account"})
			return
		}
		c.Next()
	}
}

// RequireProvider admits only accounts linked to a provider profile.
func RequireProvider() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok || u.ProviderID == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Provider account required"})
			return
		}
		c.Next()
	}
}
