package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/model"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

// RecipeHandler serves the session's recipe catalog
type RecipeHandler struct {
	logger *zap.Logger
}

func NewRecipeHandler(logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{logger: logger}
}

// withStore runs fn against the caller's store, writing an error response on failure
func (h *RecipeHandler) withStore(c *gin.Context, fn func(store *service.RecipeStore) error) bool {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		respondError(c, h.logger, service.ErrSessionNotFound)
		return false
	}
	if err := sess.Do(fn); err != nil {
		respondError(c, h.logger, err)
		return false
	}
	return true
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var filter service.RecipeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query", "details": err.Error()})
		return
	}

	var recipes []model.Recipe
	ok := h.withStore(c, func(store *service.RecipeStore) error {
		recipes = service.FilterRecipes(store.List(), filter)
		return nil
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, RecipeListResponse{Recipes: recipes, Count: len(recipes)})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id := c.Param("id")

	var recipe model.Recipe
	ok := h.withStore(c, func(store *service.RecipeStore) error {
		var err error
		recipe, err = store.Get(id)
		return err
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var created model.Recipe
	ok := h.withStore(c, func(store *service.RecipeStore) error {
		var err error
		created, err = store.Add(req.toModel())
		return err
	})
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateRecipe replaces every editable field of the recipe
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id := c.Param("id")

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var updated model.Recipe
	ok := h.withStore(c, func(store *service.RecipeStore) error {
		var err error
		updated, err = store.Update(id, req.toModel())
		return err
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id := c.Param("id")

	ok := h.withStore(c, func(store *service.RecipeStore) error {
		return store.Delete(id)
	})
	if !ok {
		return
	}

	c.Status(http.StatusNoContent)
}

// Options lists the enumerated values recipes may take
func Options(c *gin.Context) {
	c.JSON(http.StatusOK, OptionsResponse{
		Cuisines: model.Cuisines,
		Tags:     model.Tags,
		Statuses: model.Statuses,
		Filter:   service.FilterAll,
	})
}
