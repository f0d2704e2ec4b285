package api

import (
	"time"

	"github.com/pageza/recipe-catalog/backend/internal/model"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

// RecipeRequest is the body for creating or replacing a recipe
type RecipeRequest struct {
	Name         string   `json:"name"`
	Ingredients  string   `json:"ingredients"`
	CuisineType  string   `json:"cuisine_type"`
	PrepTime     int      `json:"prep_time"`
	Instructions []string `json:"instructions"`
	Tag          string   `json:"tag"`
	Status       string   `json:"status"`
}

func (r RecipeRequest) toModel() model.Recipe {
	return model.Recipe{
		Name:         r.Name,
		Ingredients:  r.Ingredients,
		CuisineType:  model.Cuisine(r.CuisineType),
		PrepTime:     r.PrepTime,
		Instructions: r.Instructions,
		Tag:          model.Tag(r.Tag),
		Status:       model.Status(r.Status),
	}
}

// GenerateRequest is the body for POST /recipes/generate
type GenerateRequest struct {
	Name string `json:"name"`
}

// RecipeListResponse wraps a filtered listing
type RecipeListResponse struct {
	Recipes []model.Recipe `json:"recipes"`
	Count   int            `json:"count"`
}

// SessionResponse is returned when a session is created
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionInfoResponse describes the caller's session
type SessionInfoResponse struct {
	SessionID   string                   `json:"session_id"`
	CreatedAt   time.Time                `json:"created_at"`
	ExpiresAt   time.Time                `json:"expires_at"`
	RecipeCount *int                     `json:"recipe_count,omitempty"`
	Generation  service.GenerationStatus `json:"generation"`
}

// OptionsResponse lists the enumerated domains for building forms
type OptionsResponse struct {
	Cuisines []model.Cuisine `json:"cuisines"`
	Tags     []model.Tag     `json:"tags"`
	Statuses []model.Status  `json:"statuses"`
	Filter   string          `json:"filter_all"`
}
