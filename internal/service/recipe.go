package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/pageza/recipe-catalog/backend/internal/model"
)

// RecipeStore is the ordered recipe collection owned by one session.
// It is not safe for concurrent use; Session serializes access to it.
type RecipeStore struct {
	recipes []model.Recipe
	now     func() time.Time
}

// NewRecipeStore creates an empty store
func NewRecipeStore() *RecipeStore {
	return &RecipeStore{
		recipes: []model.Recipe{},
		now:     time.Now,
	}
}

// Add appends recipe to the end of the collection. A fresh id is assigned
// when recipe.ID is empty.
func (s *RecipeStore) Add(recipe model.Recipe) (model.Recipe, error) {
	r := recipe.Clone()
	r.ID = strings.TrimSpace(r.ID)
	if r.ID == "" {
		r.ID = uuid.NewString()
	} else if s.indexOf(r.ID) >= 0 {
		return model.Recipe{}, &ValidationError{Field: "id", Message: "a recipe with this id already exists"}
	}

	if err := prepare(&r); err != nil {
		return model.Recipe{}, err
	}

	now := s.now()
	r.CreatedAt = now
	r.UpdatedAt = now
	s.recipes = append(s.recipes, r)
	return r.Clone(), nil
}

// Update replaces every mutable field of the record with the given id
func (s *RecipeStore) Update(id string, fields model.Recipe) (model.Recipe, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Recipe{}, fmt.Errorf("%w: %s", ErrRecipeNotFound, id)
	}

	r := fields.Clone()
	if err := prepare(&r); err != nil {
		return model.Recipe{}, err
	}

	existing := s.recipes[i]
	r.ID = existing.ID
	r.CreatedAt = existing.CreatedAt
	r.UpdatedAt = s.now()
	s.recipes[i] = r
	return r.Clone(), nil
}

// Delete removes the record with the given id
func (s *RecipeStore) Delete(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrRecipeNotFound, id)
	}
	s.recipes = append(s.recipes[:i], s.recipes[i+1:]...)
	return nil
}

// Get returns a copy of the record with the given id
func (s *RecipeStore) Get(id string) (model.Recipe, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Recipe{}, fmt.Errorf("%w: %s", ErrRecipeNotFound, id)
	}
	return s.recipes[i].Clone(), nil
}

// List returns copies of all records in insertion order
func (s *RecipeStore) List() []model.Recipe {
	return lo.Map(s.recipes, func(r model.Recipe, _ int) model.Recipe {
		return r.Clone()
	})
}

// Len returns the number of records
func (s *RecipeStore) Len() int {
	return len(s.recipes)
}

func (s *RecipeStore) indexOf(id string) int {
	_, i, ok := lo.FindIndexOf(s.recipes, func(r model.Recipe) bool {
		return r.ID == id
	})
	if !ok {
		return -1
	}
	return i
}

func prepare(r *model.Recipe) error {
	model.NormalizeRecipe(r)
	if err := model.ValidateRecipe(r); err != nil {
		return newValidationError(err)
	}
	return nil
}

// newValidationError converts validator output into a ValidationError with
// user facing messages keyed by JSON field name.
func newValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Message: err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		name := jsonFieldName(e.Field())
		switch e.Tag() {
		case "required":
			fields[name] = "This field is required"
		case "gt":
			fields[name] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "cuisine":
			fields[name] = "Must be one of: " + joinValues(model.Cuisines)
		case "tag":
			fields[name] = "Must be one of: " + joinValues(model.Tags)
		case "status":
			fields[name] = "Must be one of: " + joinValues(model.Statuses)
		default:
			fields[name] = "Invalid value"
		}
	}

	first := jsonFieldName(verrs[0].Field())
	return &ValidationError{Field: first, Message: fields[first], Fields: fields}
}

func jsonFieldName(field string) string {
	switch field {
	case "CuisineType":
		return "cuisine_type"
	case "PrepTime":
		return "prep_time"
	default:
		return strings.ToLower(field)
	}
}

func joinValues[T ~string](values []T) string {
	return strings.Join(lo.Map(values, func(v T, _ int) string { return string(v) }), ", ")
}
