package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

// SessionHandler creates, describes and ends sessions
type SessionHandler struct {
	sessions service.ISessionManager
	tokens   service.ITokenService
	logger   *zap.Logger
}

func NewSessionHandler(sessions service.ISessionManager, tokens service.ITokenService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, tokens: tokens, logger: logger}
}

// CreateSession starts a session with an empty catalog
func (h *SessionHandler) CreateSession(c *gin.Context) {
	sess := h.sessions.Create()

	token, expiresAt, err := h.tokens.Issue(sess.ID)
	if err != nil {
		h.sessions.Delete(sess.ID)
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{
		SessionID: sess.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// GetSession reports the session's catalog size and generation status
func (h *SessionHandler) GetSession(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		respondError(c, h.logger, service.ErrSessionNotFound)
		return
	}

	resp := SessionInfoResponse{
		SessionID:  sess.ID,
		CreatedAt:  sess.CreatedAt,
		ExpiresAt:  sess.CreatedAt.Add(h.sessions.TTL()),
		Generation: sess.GenerationStatus(),
	}
	// A running generation holds the session; report status without the count.
	sess.TryDo(func(store *service.RecipeStore) {
		n := store.Len()
		resp.RecipeCount = &n
	})

	c.JSON(http.StatusOK, resp)
}

// DeleteSession ends the session and discards its catalog
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		respondError(c, h.logger, service.ErrSessionNotFound)
		return
	}

	h.sessions.Delete(sess.ID)
	c.Status(http.StatusNoContent)
}
