package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

// LLMHandler generates recipes into the caller's catalog
type LLMHandler struct {
	generation service.IGenerationService
	logger     *zap.Logger
}

func NewLLMHandler(generation service.IGenerationService, logger *zap.Logger) *LLMHandler {
	return &LLMHandler{generation: generation, logger: logger}
}

// Generate creates a recipe from a name, adds it and returns it
func (h *LLMHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	sess, ok := middleware.CurrentSession(c)
	if !ok {
		respondError(c, h.logger, service.ErrSessionNotFound)
		return
	}

	recipe, err := h.generation.Generate(c.Request.Context(), sess, req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}
