package model

import (
	"strings"
	"time"
)

// Cuisine is the cuisine a recipe belongs to
type Cuisine string

const (
	CuisineIndian  Cuisine = "Indian"
	CuisineItalian Cuisine = "Italian"
	CuisineMexican Cuisine = "Mexican"
	CuisineChinese Cuisine = "Chinese"
	CuisineOther   Cuisine = "Other"
)

// Tag is the dietary tag of a recipe
type Tag string

const (
	TagVegetarian    Tag = "Vegetarian"
	TagNonVegetarian Tag = "Non-Vegetarian"
	TagVegan         Tag = "Vegan"
	TagOther         Tag = "Other"
)

// Status tracks what the user has done with a recipe
type Status string

const (
	StatusToTry      Status = "To Try"
	StatusFavorite   Status = "Favorite"
	StatusMadeBefore Status = "Made Before"
	// StatusNotSet is stored for records submitted without a status.
	StatusNotSet Status = "Not Set"
)

// Cuisines, Tags and Statuses list the selectable values in display order.
var (
	Cuisines = []Cuisine{CuisineIndian, CuisineItalian, CuisineMexican, CuisineChinese, CuisineOther}
	Tags     = []Tag{TagVegetarian, TagNonVegetarian, TagVegan, TagOther}
	Statuses = []Status{StatusToTry, StatusFavorite, StatusMadeBefore}
)

// Recipe is a single catalog entry
type Recipe struct {
	ID           string    `json:"id"`
	Name         string    `json:"name" validate:"required"`
	Ingredients  string    `json:"ingredients"`
	CuisineType  Cuisine   `json:"cuisine_type" validate:"cuisine"`
	PrepTime     int       `json:"prep_time" validate:"gt=0"`
	Instructions []string  `json:"instructions"`
	Tag          Tag       `json:"tag" validate:"tag"`
	Status       Status    `json:"status" validate:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Clone returns a copy that shares no memory with r
func (r Recipe) Clone() Recipe {
	if r.Instructions != nil {
		r.Instructions = append([]string(nil), r.Instructions...)
	}
	return r
}

// ParseCuisine matches s against the known cuisines ignoring case.
func ParseCuisine(s string) (Cuisine, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Cuisines {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// ParseTag matches s against the known tags ignoring case.
func ParseTag(s string) (Tag, bool) {
	s = strings.TrimSpace(s)
	for _, t := range Tags {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

// ParseStatus matches s against the known statuses ignoring case.
// "Not Set" is accepted as well.
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	for _, st := range Statuses {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	if strings.EqualFold(string(StatusNotSet), s) {
		return StatusNotSet, true
	}
	return "", false
}
