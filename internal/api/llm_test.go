package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-catalog/backend/internal/model"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

func generatedTacos() *model.Recipe {
	return &model.Recipe{
		ID:           "gen-1",
		Name:         "Tacos",
		Ingredients:  "tortillas, beef, salsa",
		CuisineType:  model.CuisineMexican,
		PrepTime:     25,
		Instructions: []string{"Cook beef", "Fill tortillas"},
		Tag:          model.TagNonVegetarian,
		Status:       model.StatusToTry,
	}
}

func TestGenerateRecipe(t *testing.T) {
	env := setupTestRouter(t)
	sess := env.newSession(t)
	env.generator.On("Generate", mock.Anything, "Tacos").Return(generatedTacos(), nil).Once()

	w := env.request(t, "POST", "/api/v1/recipes/generate", sess.Token, GenerateRequest{Name: "  Tacos "})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var recipe model.Recipe
	decode(t, w, &recipe)
	assert.Equal(t, "gen-1", recipe.ID)
	assert.Equal(t, "Tacos", recipe.Name)

	w = env.request(t, "GET", "/api/v1/recipes", sess.Token, nil)
	var list RecipeListResponse
	decode(t, w, &list)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "gen-1", list.Recipes[0].ID)

	w = env.request(t, "GET", "/api/v1/session", sess.Token, nil)
	var info SessionInfoResponse
	decode(t, w, &info)
	assert.Equal(t, service.GenerationIdle, info.Generation.State)
	assert.Equal(t, "gen-1", info.Generation.LastRecipeID)
	assert.Empty(t, info.Generation.LastError)

	env.generator.AssertExpectations(t)
}

func TestGenerateRecipeEmptyName(t *testing.T) {
	env := setupTestRouter(t)
	sess := env.newSession(t)

	w := env.request(t, "POST", "/api/v1/recipes/generate", sess.Token, GenerateRequest{Name: "   "})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body errorBody
	decode(t, w, &body)
	assert.Equal(t, "Please enter a recipe name.", body.Fields["name"])
	env.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerateRecipeFailures(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantError string
	}{
		{
			name:      "remote call",
			err:       &service.RemoteCallError{Err: errors.New("API request failed with status 500")},
			wantError: "Recipe generation failed",
		},
		{
			name:      "unparseable reply",
			err:       &service.ParseError{Err: errors.New("invalid character")},
			wantError: "Generated recipe could not be read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestRouter(t)
			sess := env.newSession(t)
			env.generator.On("Generate", mock.Anything, "Tacos").Return(nil, tt.err).Once()

			w := env.request(t, "POST", "/api/v1/recipes/generate", sess.Token, GenerateRequest{Name: "Tacos"})
			require.Equal(t, http.StatusBadGateway, w.Code)

			var body errorBody
			decode(t, w, &body)
			assert.Equal(t, tt.wantError, body.Error)
			assert.Equal(t, tt.err.Error(), body.Details)

			w = env.request(t, "GET", "/api/v1/session", sess.Token, nil)
			var info SessionInfoResponse
			decode(t, w, &info)
			require.NotNil(t, info.RecipeCount)
			assert.Zero(t, *info.RecipeCount)
			assert.Equal(t, service.GenerationIdle, info.Generation.State)
			assert.Equal(t, tt.err.Error(), info.Generation.LastError)
		})
	}
}

func TestGenerateRecipeInvalidCandidate(t *testing.T) {
	env := setupTestRouter(t)
	sess := env.newSession(t)

	bad := generatedTacos()
	bad.PrepTime = 0
	env.generator.On("Generate", mock.Anything, "Tacos").Return(bad, nil).Once()

	w := env.request(t, "POST", "/api/v1/recipes/generate", sess.Token, GenerateRequest{Name: "Tacos"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body errorBody
	decode(t, w, &body)
	assert.Contains(t, body.Fields, "prep_time")
}
