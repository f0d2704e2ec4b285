package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipe-catalog/backend/internal/service"
)

func setupSessionRouter(t *testing.T) (*gin.Engine, *service.TokenService, *service.SessionManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := service.NewTokenService("test-secret", time.Hour)
	sessions := service.NewSessionManager(10, time.Hour, zap.NewNop())

	router := gin.New()
	router.GET("/protected", SessionMiddleware(tokens, sessions), func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": sess.ID})
	})
	return router, tokens, sessions
}

func TestSessionMiddleware(t *testing.T) {
	router, tokens, sessions := setupSessionRouter(t)

	sess := sessions.Create()
	token, _, err := tokens.Issue(sess.ID)
	require.NoError(t, err)

	orphan, _, err := tokens.Issue("no-such-session")
	require.NoError(t, err)

	other := service.NewTokenService("other-secret", time.Hour)
	forged, _, err := other.Issue(sess.ID)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer " + token, http.StatusOK, sess.ID},
		{"missing header", "", http.StatusUnauthorized, "missing authorization header"},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, "invalid authorization header format"},
		{"forged token", "Bearer " + forged, http.StatusUnauthorized, "invalid session token"},
		{"unknown session", "Bearer " + orphan, http.StatusUnauthorized, "session expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
