package source

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HerbHall/gutwise/pkg/catalog"
	"github.com/HerbHall/gutwise/pkg/models"
)

// Compile-time interface guards.
var (
	_ DataSource    = (*Fixture)(nil)
	_ Creator       = (*Fixture)(nil)
	_ HealthChecker = (*Fixture)(nil)
)

// Fixture serves the embedded seed data set. Created recipes are appended to
// an in-memory overlay so a Fixture can stand in for the API in tests and
// offline browsing.
type Fixture struct {
	cat *catalog.Catalog

	mu      sync.RWMutex
	created []models.Recipe
}

// NewFixture returns a Fixture over the given catalog.
func NewFixture(cat *catalog.Catalog) *Fixture {
	return &Fixture{cat: cat}
}

func (f *Fixture) ListRecipes(ctx context.Context, opts ListOptions) ([]models.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recipes, err := f.cat.Recipes()
	if err != nil {
		return nil, fmt.Errorf("fixture: list recipes: %w", err)
	}

	f.mu.RLock()
	recipes = append(recipes, f.created...)
	f.mu.RUnlock()

	if opts.Limit > 0 && opts.Limit < len(recipes) {
		recipes = recipes[:opts.Limit]
	}
	return recipes, nil
}

func (f *Fixture) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	recipes, err := f.ListRecipes(ctx, ListOptions{})
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		if recipes[i].ID == id {
			return &recipes[i], nil
		}
	}
	return nil, ErrNotFound
}

// ListDietaryFilters returns the static filter descriptors from the seed file.
// Counts are not recomputed from created recipes.
func (f *Fixture) ListDietaryFilters(ctx context.Context) ([]models.DietaryFilter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filters, err := f.cat.DietaryFilters()
	if err != nil {
		return nil, fmt.Errorf("fixture: list dietary filters: %w", err)
	}
	return filters, nil
}

func (f *Fixture) GetPersonalStory(ctx context.Context) (*models.PersonalStory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := f.cat.PersonalStory()
	if err != nil {
		return nil, fmt.Errorf("fixture: personal story: %w", err)
	}
	if s.ID == "" {
		return nil, ErrNotFound
	}
	return &s, nil
}

// CreateRecipe stores the recipe in memory with a fresh UUID.
func (f *Fixture) CreateRecipe(ctx context.Context, req models.RecipeCreate) (*models.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r := req.Recipe()
	r.ID = uuid.New().String()
	now := time.Now().UTC()
	r.CreatedAt, r.UpdatedAt = now, now

	f.mu.Lock()
	f.created = append(f.created, r)
	f.mu.Unlock()
	return &r, nil
}

func (f *Fixture) Health(context.Context) (map[string]any, error) {
	return map[string]any{"status": "ok", "source": "fixture"}, nil
}
