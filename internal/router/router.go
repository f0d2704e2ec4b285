package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipe-catalog/backend/internal/api"
	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

// Dependencies holds what the routes need. RateLimiter may be nil.
type Dependencies struct {
	Sessions    service.ISessionManager
	Tokens      service.ITokenService
	Generation  service.IGenerationService
	RateLimiter *middleware.RateLimiter
	CORSOrigins []string
	Logger      *zap.Logger
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.CORS(deps.CORSOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	sessionHandler := api.NewSessionHandler(deps.Sessions, deps.Tokens, deps.Logger)
	recipeHandler := api.NewRecipeHandler(deps.Logger)
	llmHandler := api.NewLLMHandler(deps.Generation, deps.Logger)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.GET("/options", api.Options)
	v1.POST("/sessions", sessionHandler.CreateSession)

	// Session-scoped routes
	protected := v1.Group("")
	protected.Use(middleware.SessionMiddleware(deps.Tokens, deps.Sessions))
	{
		protected.GET("/session", sessionHandler.GetSession)
		protected.DELETE("/session", sessionHandler.DeleteSession)

		recipes := protected.Group("/recipes")
		{
			recipes.GET("", recipeHandler.ListRecipes)
			recipes.GET("/:id", recipeHandler.GetRecipe)
			recipes.POST("", recipeHandler.CreateRecipe)
			recipes.PUT("/:id", recipeHandler.UpdateRecipe)
			recipes.DELETE("/:id", recipeHandler.DeleteRecipe)

			generate := []gin.HandlerFunc{llmHandler.Generate}
			if deps.RateLimiter != nil {
				generate = append([]gin.HandlerFunc{deps.RateLimiter.RateLimitMiddleware()}, generate...)
			}
			recipes.POST("/generate", generate...)
		}
	}

	return router
}
