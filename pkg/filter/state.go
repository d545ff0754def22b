package filter

import "github.com/HerbHall/gutwise/pkg/models"

// State is the listing's current search term and dietary tag selection.
// The zero value is the initial state. State is a value: every transition
// returns a new State and leaves its argument untouched.
type State struct {
	SearchTerm string   `json:"search_term"`
	Selected   []string `json:"selected_filters"`
}

// SetSearchTerm returns s with the search term replaced.
func SetSearchTerm(s State, term string) State {
	return State{SearchTerm: term, Selected: cloneTags(s.Selected)}
}

// ToggleFilter removes id from the selection if present and appends it
// otherwise. The search term is unchanged. Toggling the same id twice returns
// an equal State.
func ToggleFilter(s State, id string) State {
	next := State{SearchTerm: s.SearchTerm}
	found := false
	for _, tag := range s.Selected {
		if tag == id {
			found = true
			continue
		}
		next.Selected = append(next.Selected, tag)
	}
	if !found {
		next.Selected = append(next.Selected, id)
	}
	return next
}

// ClearFilters returns the empty State regardless of s.
func ClearFilters(State) State {
	return State{}
}

// IsSelected reports whether id is in the selection.
func (s State) IsSelected(id string) bool {
	for _, tag := range s.Selected {
		if tag == id {
			return true
		}
	}
	return false
}

// IsActive reports whether a search term or any filter is set.
func (s State) IsActive() bool {
	return s.SearchTerm != "" || len(s.Selected) > 0
}

// Equal reports whether both states have the same search term and the same
// set of selected tags. Selection order is ignored.
func (s State) Equal(o State) bool {
	if s.SearchTerm != o.SearchTerm || len(s.Selected) != len(o.Selected) {
		return false
	}
	for _, tag := range s.Selected {
		if !o.IsSelected(tag) {
			return false
		}
	}
	return true
}

// Apply runs FilterRecipes with the state's term and selection.
func (s State) Apply(recipes []models.Recipe) []models.Recipe {
	return FilterRecipes(recipes, s.SearchTerm, s.Selected)
}

func cloneTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
