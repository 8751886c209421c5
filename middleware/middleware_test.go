package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"poojaseva/config"
	"poojaseva/models"
	"poojaseva/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUsers map[string]models.CurrentUser

func (s stubUsers) CurrentUser(ctx context.Context, id string) (*models.CurrentUser, error) {
	u, ok := s[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &u, nil
}

func authRouter(users UserLookup, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuthMiddleware(users)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		u, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": u.ID})
	})
	r.GET("/me", handlers...)
	return r
}

func bearer(t *testing.T, sub string) string {
	t.Helper()
	token, err := utils.GenerateToken(utils.TokenClaims{Subject: sub}, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestJWTAuthMiddleware(t *testing.T) {
	config.AppConfig.JWTSecret = "mw-secret"
	users := stubUsers{"u1": {ID: "u1", Role: models.RoleDevotee}}
	r := authRouter(users)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"unknown subject", bearer(t, "ghost"), http.StatusUnauthorized},
		{"valid", bearer(t, "u1"), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireRoleAndProvider(t *testing.T) {
	config.AppConfig.JWTSecret = "mw-secret"
	users := stubUsers{
		"dev":    {ID: "dev", Role: models.RoleDevotee},
		"priest": {ID: "priest", Role: models.RoleProvider, ProviderID: "p1"},
	}

	adminOnly := authRouter(users, RequireRole(models.RoleAdmin))
	providerOnly := authRouter(users, RequireProvider())

	for _, tc := range []struct {
		router *gin.Engine
		sub    string
		want   int
	}{
		{adminOnly, "dev", http.StatusForbidden},
		{providerOnly, "dev", http.StatusForbidden},
		{providerOnly, "priest", http.StatusOK},
	} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", bearer(t, tc.sub))
		w := httptest.NewRecorder()
		tc.router.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, tc.sub)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.2:5555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code, "other clients keep their own budget")
}
