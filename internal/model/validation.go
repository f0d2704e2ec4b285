package model

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("cuisine", func(fl validator.FieldLevel) bool {
		return lo.Contains(Cuisines, Cuisine(fl.Field().String()))
	})
	_ = v.RegisterValidation("tag", func(fl validator.FieldLevel) bool {
		return lo.Contains(Tags, Tag(fl.Field().String()))
	})
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		s := Status(fl.Field().String())
		return s == StatusNotSet || lo.Contains(Statuses, s)
	})
	return v
}

// NormalizeRecipe trims the name, drops blank instruction steps and
// canonicalizes the spelling of enum fields. Unknown enum values are left
// untouched so ValidateRecipe can reject them.
func NormalizeRecipe(r *Recipe) {
	r.Name = strings.TrimSpace(r.Name)
	r.Instructions = CleanSteps(r.Instructions)

	if c, ok := ParseCuisine(string(r.CuisineType)); ok {
		r.CuisineType = c
	}
	if t, ok := ParseTag(string(r.Tag)); ok {
		r.Tag = t
	}
	if strings.TrimSpace(string(r.Status)) == "" {
		r.Status = StatusNotSet
	} else if s, ok := ParseStatus(string(r.Status)); ok {
		r.Status = s
	}
}

// CleanSteps returns steps without the entries that are empty after trimming.
// The result is never nil.
func CleanSteps(steps []string) []string {
	out := lo.Filter(steps, func(step string, _ int) bool {
		return strings.TrimSpace(step) != ""
	})
	if out == nil {
		return []string{}
	}
	return out
}

// ValidateRecipe checks r against the field rules. The returned error is a
// validator.ValidationErrors when a field is out of range.
func ValidateRecipe(r *Recipe) error {
	return validate.Struct(r)
}
