// Package search derives the visible subset of the recipe collection.
package search

import (
	"strings"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

// Filter returns the recipes whose name contains query, ignoring case,
// in their original order. An empty query returns recipes unchanged.
func Filter(recipes []domain.Recipe, query string) []domain.Recipe {
	if query == "" {
		return recipes
	}

	q := strings.ToLower(query)
	out := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if Matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether r's name contains the lower-cased query.
func Matches(r domain.Recipe, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(r.Name), lowerQuery)
}
