// Package filter implements the recipe search-and-filter engine used by the
// recipe listing: a free-text search over title, description, and ingredient
// lines combined with an AND over selected dietary tags.
//
// Every function in this package is pure. Nothing is cached between calls, so
// callers always get a result computed from the inputs they pass in.
package filter

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/HerbHall/gutwise/pkg/models"
)

// FilterRecipes returns the recipes that match both the search term and every
// selected dietary tag, in their original order.
//
// An empty (after trimming) search term matches everything, as does an empty
// selection. Matching is case-insensitive substring containment; a recipe with
// a missing field simply fails that field's predicate. The result is never nil
// and never aliases the input slice.
func FilterRecipes(recipes []models.Recipe, searchTerm string, selected []string) []models.Recipe {
	m := newMatcher(searchTerm)

	result := make([]models.Recipe, 0, len(recipes))
	for i := range recipes {
		if m.matchesSearch(&recipes[i]) && matchesTags(&recipes[i], selected) {
			result = append(result, recipes[i])
		}
	}
	return result
}

// matcher holds the folded search term for one FilterRecipes call.
// cases.Caser is stateful, so a matcher must not be shared across goroutines.
type matcher struct {
	fold cases.Caser
	term string
}

func newMatcher(searchTerm string) *matcher {
	m := &matcher{fold: cases.Fold()}
	if t := strings.TrimSpace(searchTerm); t != "" {
		m.term = m.fold.String(t)
	}
	return m
}

// matchesSearch checks title, description, then each ingredient line.
func (m *matcher) matchesSearch(r *models.Recipe) bool {
	if m.term == "" {
		return true
	}
	if m.contains(r.Title) || m.contains(r.Description) {
		return true
	}
	for _, line := range r.Ingredients {
		if m.contains(line) {
			return true
		}
	}
	return false
}

func (m *matcher) contains(field string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(m.fold.String(field), m.term)
}

// matchesTags reports whether the recipe carries every selected tag.
func matchesTags(r *models.Recipe, selected []string) bool {
	for _, tag := range selected {
		if !r.HasTag(tag) {
			return false
		}
	}
	return true
}
