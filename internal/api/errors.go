package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipe-catalog/backend/internal/service"
)

// respondError maps service errors onto HTTP responses
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var validationErr *service.ValidationError
	var parseErr *service.ParseError
	var remoteErr *service.RemoteCallError

	switch {
	case errors.As(err, &validationErr):
		fields := validationErr.Fields
		if len(fields) == 0 && validationErr.Field != "" {
			fields = map[string]string{validationErr.Field: validationErr.Message}
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "fields": fields})
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
	case errors.As(err, &parseErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Generated recipe could not be read", "details": parseErr.Error()})
	case errors.As(err, &remoteErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Recipe generation failed", "details": remoteErr.Error()})
	default:
		logger.Error("unhandled error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
	_ = c.Error(err)
}

// bindError reports a malformed request body
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
}
