package filter

import "github.com/HerbHall/gutwise/pkg/models"

// Summary describes a filtered result for display ("3 recipes found").
type Summary struct {
	Total         int  `json:"total"`
	Matched       int  `json:"matched"`
	ActiveFilters int  `json:"active_filters"`
	Active        bool `json:"active"`
}

// Summarize counts the full collection, the matching subset, and the number of
// selected filters for s.
func Summarize(all, matched []models.Recipe, s State) Summary {
	return Summary{
		Total:         len(all),
		Matched:       len(matched),
		ActiveFilters: len(s.Selected),
		Active:        s.IsActive(),
	}
}
