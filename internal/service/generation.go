package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/pageza/recipe-catalog/backend/internal/model"
)

// GenerationService runs the generate-and-add flow for a session
type GenerationService struct {
	generator RecipeGenerator
	logger    *zap.Logger
}

// NewGenerationService creates a GenerationService
func NewGenerationService(generator RecipeGenerator, logger *zap.Logger) *GenerationService {
	return &GenerationService{generator: generator, logger: logger}
}

// Generate creates a recipe for name and adds it to the session's store.
// The session is held for the whole call, including the completion request.
// On any error the store is left unchanged and the session returns to idle.
func (g *GenerationService) Generate(ctx context.Context, sess *Session, name string) (model.Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Recipe{}, &ValidationError{Field: "name", Message: "Please enter a recipe name."}
	}

	var created model.Recipe
	err := sess.Do(func(store *RecipeStore) error {
		sess.beginGeneration()

		candidate, err := g.generator.Generate(ctx, name)
		if err != nil {
			sess.endGeneration("", err)
			return err
		}

		created, err = store.Add(*candidate)
		if err != nil {
			sess.endGeneration("", err)
			return err
		}

		sess.endGeneration(created.ID, nil)
		return nil
	})
	if err != nil {
		return model.Recipe{}, err
	}

	g.logger.Info("recipe generated",
		zap.String("session_id", sess.ID),
		zap.String("recipe_id", created.ID),
		zap.String("name", created.Name),
	)
	return created, nil
}
