package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/mocks"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

type testEnv struct {
	router    *gin.Engine
	sessions  *service.SessionManager
	generator *mocks.MockRecipeGenerator
}

// setupTestRouter wires the handlers the way the application router does
func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	sessions := service.NewSessionManager(10, time.Hour, logger)
	tokens := service.NewTokenService("test-secret", time.Hour)
	generator := new(mocks.MockRecipeGenerator)

	sessionHandler := NewSessionHandler(sessions, tokens, logger)
	recipeHandler := NewRecipeHandler(logger)
	llmHandler := NewLLMHandler(service.NewGenerationService(generator, logger), logger)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.GET("/options", Options)
	v1.POST("/sessions", sessionHandler.CreateSession)

	protected := v1.Group("", middleware.SessionMiddleware(tokens, sessions))
	protected.GET("/session", sessionHandler.GetSession)
	protected.DELETE("/session", sessionHandler.DeleteSession)
	protected.GET("/recipes", recipeHandler.ListRecipes)
	protected.GET("/recipes/:id", recipeHandler.GetRecipe)
	protected.POST("/recipes", recipeHandler.CreateRecipe)
	protected.PUT("/recipes/:id", recipeHandler.UpdateRecipe)
	protected.DELETE("/recipes/:id", recipeHandler.DeleteRecipe)
	protected.POST("/recipes/generate", llmHandler.Generate)

	return &testEnv{router: router, sessions: sessions, generator: generator}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) newSession(t *testing.T) SessionResponse {
	t.Helper()
	w := e.request(t, "POST", "/api/v1/sessions", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp SessionResponse
	decode(t, w, &resp)
	return resp
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

type errorBody struct {
	Error   string            `json:"error"`
	Details string            `json:"details"`
	Fields  map[string]string `json:"fields"`
}
