package service

import (
	"strings"

	"github.com/samber/lo"

	"github.com/pageza/recipe-catalog/backend/internal/model"
)

// FilterAll disables a criterion
const FilterAll = "All"

// RecipeFilter holds the criteria for FilterRecipes. Empty fields and
// FilterAll are ignored.
type RecipeFilter struct {
	Cuisine string `form:"cuisine"`
	Tag     string `form:"tag"`
	Status  string `form:"status"`
	// Name is matched case-insensitively as a substring of the recipe name.
	Name string `form:"q"`
}

// FilterRecipes returns the records matching every criterion in f, keeping
// their original order.
func FilterRecipes(records []model.Recipe, f RecipeFilter) []model.Recipe {
	needle := strings.ToLower(strings.TrimSpace(f.Name))
	return lo.Filter(records, func(r model.Recipe, _ int) bool {
		if active(f.Cuisine) && !sameValue(string(r.CuisineType), f.Cuisine) {
			return false
		}
		if active(f.Tag) && !sameValue(string(r.Tag), f.Tag) {
			return false
		}
		if active(f.Status) && !sameValue(string(r.Status), f.Status) {
			return false
		}
		if needle != "" && !strings.Contains(strings.ToLower(r.Name), needle) {
			return false
		}
		return true
	})
}

func active(criterion string) bool {
	c := strings.TrimSpace(criterion)
	return c != "" && c != FilterAll
}

func sameValue(value, criterion string) bool {
	return value == strings.TrimSpace(criterion)
}
