package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-catalog/backend/internal/service"
)

// Context keys set by SessionMiddleware
const (
	SessionKey   = "session"
	SessionIDKey = "session_id"
)

// SessionMiddleware resolves the bearer token to a live session
func SessionMiddleware(tokens service.ITokenService, sessions service.ISessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			return
		}

		sess, err := sessions.Get(claims.SessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set(SessionKey, sess)
		c.Set(SessionIDKey, sess.ID)
		c.Next()
	}
}

// CurrentSession returns the session stored by SessionMiddleware
func CurrentSession(c *gin.Context) (*service.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*service.Session)
	return sess, ok
}
