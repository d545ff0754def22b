// Package source defines the read interface the browse views use to fetch
// recipes, dietary filters, and the personal story, together with two
// interchangeable implementations: Fixture (embedded seed data) and HTTP (the
// REST API).
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/HerbHall/gutwise/pkg/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ListOptions constrains ListRecipes. A zero Limit means no limit.
type ListOptions struct {
	Limit int
}

// DataSource is the read side of the recipe backend. Implementations perform
// no retries and no caching; each call is a fresh snapshot.
type DataSource interface {
	// ListRecipes returns recipes in backend order.
	ListRecipes(ctx context.Context, opts ListOptions) ([]models.Recipe, error)

	// GetRecipe returns a single recipe or ErrNotFound.
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)

	// ListDietaryFilters returns the selectable dietary tags.
	ListDietaryFilters(ctx context.Context) ([]models.DietaryFilter, error)

	// GetPersonalStory returns the narrative record or ErrNotFound.
	GetPersonalStory(ctx context.Context) (*models.PersonalStory, error)
}

// Creator is implemented by sources that accept new recipes.
type Creator interface {
	CreateRecipe(ctx context.Context, req models.RecipeCreate) (*models.Recipe, error)
}

// HealthChecker is implemented by sources that can report backend liveness.
type HealthChecker interface {
	Health(ctx context.Context) (map[string]any, error)
}

// FetchError reports a failed fetch. Status is the HTTP status code when the
// backend answered, zero for transport failures.
type FetchError struct {
	Op     string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Retryable reports whether repeating the request may succeed. Transport
// failures, 5xx responses, and 429 are retryable; other client errors are not.
func (e *FetchError) Retryable() bool {
	switch {
	case e.Status == 0:
		return true
	case e.Status == http.StatusTooManyRequests:
		return true
	case e.Status >= 500:
		return true
	default:
		return false
	}
}

// IsRetryable reports whether err is a retryable FetchError.
func IsRetryable(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Retryable()
	}
	return false
}
