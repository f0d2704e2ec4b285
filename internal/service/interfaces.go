package service

import (
	"context"
	"time"

	"github.com/pageza/recipe-catalog/backend/internal/model"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

// ISessionManager defines the interface for session lifecycle operations
type ISessionManager interface {
	Create() *Session
	Get(id string) (*Session, error)
	Delete(id string) bool
	TTL() time.Duration
}

// ITokenService defines the interface for session token operations
type ITokenService interface {
	Issue(sessionID string) (string, time.Time, error)
	Validate(token string) (*types.SessionClaims, error)
}

// IGenerationService defines the interface for the generate-and-add flow
type IGenerationService interface {
	Generate(ctx context.Context, sess *Session, name string) (model.Recipe, error)
}

var (
	_ ISessionManager    = (*SessionManager)(nil)
	_ ITokenService      = (*TokenService)(nil)
	_ IGenerationService = (*GenerationService)(nil)
)
