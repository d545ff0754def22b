// Package browse holds the view-level state for the recipe site: the recipe
// listing with its search and dietary filters, the recipe detail lookup, and
// the home page. Each view fetches from a source.DataSource once per mount and
// owns its data until unmount.
package browse

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/HerbHall/gutwise/pkg/filter"
	"github.com/HerbHall/gutwise/pkg/models"
	"github.com/HerbHall/gutwise/pkg/source"
)

// ErrNotMounted is returned by Retry on a view that was never mounted or has
// been unmounted.
var ErrNotMounted = errors.New("view not mounted")

// Status is the fetch state of a view.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ListingView is the recipe list page: a recipe collection fetched once per
// mount plus the user's filter.State. Results are recomputed from the current
// collection and state on every call.
type ListingView struct {
	src    source.DataSource
	logger *zap.Logger

	mu      sync.Mutex
	gen     uint64 // bumped on every Mount and Unmount
	mounted bool
	status  Status
	err     error
	recipes []models.Recipe
	filters []models.DietaryFilter
	state   filter.State
}

// NewListingView creates an unmounted listing view.
func NewListingView(src source.DataSource, logger *zap.Logger) *ListingView {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListingView{src: src, logger: logger}
}

// Mount resets the filter state and fetches the recipe collection and the
// dietary filter descriptors. If the view is unmounted or remounted before the
// fetch returns, the result is discarded.
func (v *ListingView) Mount(ctx context.Context) error {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.mounted = true
	v.state = filter.State{}
	v.recipes, v.filters, v.err = nil, nil, nil
	v.status = StatusLoading
	v.mu.Unlock()

	return v.fetch(ctx, gen)
}

// Retry refetches after a failed Mount. The filter state is kept.
func (v *ListingView) Retry(ctx context.Context) error {
	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return ErrNotMounted
	}
	v.gen++
	gen := v.gen
	v.err = nil
	v.status = StatusLoading
	v.mu.Unlock()

	return v.fetch(ctx, gen)
}

// Unmount discards the collection and the filter state. Fetches still in
// flight are ignored when they complete.
func (v *ListingView) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	v.mounted = false
	v.status = StatusIdle
	v.recipes, v.filters, v.err = nil, nil, nil
	v.state = filter.State{}
}

func (v *ListingView) fetch(ctx context.Context, gen uint64) error {
	recipes, err := v.src.ListRecipes(ctx, source.ListOptions{})
	var filters []models.DietaryFilter
	if err == nil {
		filters, err = v.src.ListDietaryFilters(ctx)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		v.logger.Debug("discarding stale listing fetch", zap.Uint64("generation", gen))
		return nil
	}
	if err != nil {
		v.status = StatusError
		v.err = fmt.Errorf("load recipes: %w", err)
		v.logger.Warn("listing fetch failed", zap.Error(err), zap.Bool("retryable", source.IsRetryable(err)))
		return v.err
	}

	valid, dropped := models.ValidateCollection(recipes)
	if len(dropped) > 0 {
		v.logger.Warn("dropped invalid recipes", zap.Int("count", len(dropped)))
	}
	v.recipes = valid
	v.filters = filters
	v.status = StatusReady
	return nil
}

// Status returns the current fetch state.
func (v *ListingView) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// Err returns the last fetch error, or nil.
func (v *ListingView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Retryable reports whether the view is in an error state the user can retry.
func (v *ListingView) Retryable() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status == StatusError && source.IsRetryable(v.err)
}

// State returns the current filter state.
func (v *ListingView) State() filter.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return filter.State{
		SearchTerm: v.state.SearchTerm,
		Selected:   append([]string(nil), v.state.Selected...),
	}
}

// SetSearchTerm replaces the search term.
func (v *ListingView) SetSearchTerm(term string) filter.State {
	return v.update(func(s filter.State) filter.State { return filter.SetSearchTerm(s, term) })
}

// ToggleFilter adds or removes a dietary tag from the selection.
func (v *ListingView) ToggleFilter(id string) filter.State {
	return v.update(func(s filter.State) filter.State { return filter.ToggleFilter(s, id) })
}

// ClearFilters resets the search term and the selection.
func (v *ListingView) ClearFilters() filter.State {
	return v.update(filter.ClearFilters)
}

func (v *ListingView) update(fn func(filter.State) filter.State) filter.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = fn(v.state)
	return v.state
}

// Results returns the recipes matching the current state.
func (v *ListingView) Results() []models.Recipe {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.Apply(v.recipes)
}

// Summary returns counts for the current state.
func (v *ListingView) Summary() filter.Summary {
	v.mu.Lock()
	defer v.mu.Unlock()
	return filter.Summarize(v.recipes, v.state.Apply(v.recipes), v.state)
}

// Filters returns the dietary filter descriptors fetched at mount. Counts are
// passed through from the data source unchanged.
func (v *ListingView) Filters() []models.DietaryFilter {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.DietaryFilter, len(v.filters))
	copy(out, v.filters)
	return out
}

// Recipes returns the full fetched collection.
func (v *ListingView) Recipes() []models.Recipe {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.Recipe, len(v.recipes))
	copy(out, v.recipes)
	return out
}
