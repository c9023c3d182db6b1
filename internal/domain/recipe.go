// Package domain defines the core types and interfaces for the recipe box.
// All other packages depend on domain; domain depends on nothing.
package domain

import "strings"

// IngredientSeparator joins and splits the single-line ingredients field.
// An ingredient that itself contains the separator does not survive a
// split/join round trip.
const IngredientSeparator = ", "

// Recipe is a single catalog entry.
type Recipe struct {
	ID          string
	Name        string
	Description string
	Ingredients []string // display order
	Image       string   // data URL, URL, or empty
}

// Clone returns a deep copy so callers can mutate it freely.
func (r Recipe) Clone() Recipe {
	out := r
	if r.Ingredients != nil {
		out.Ingredients = make([]string, len(r.Ingredients))
		copy(out.Ingredients, r.Ingredients)
	}
	return out
}

// HasImage reports whether the recipe carries any image reference.
func (r Recipe) HasImage() bool {
	return r.Image != ""
}

// JoinIngredients renders ingredients as the editable single-line text.
func JoinIngredients(ingredients []string) string {
	return strings.Join(ingredients, IngredientSeparator)
}

// SplitIngredients parses the single-line text back into an ordered list.
// Empty text yields an empty list.
func SplitIngredients(text string) []string {
	if text == "" {
		return []string{}
	}
	return strings.Split(text, IngredientSeparator)
}
