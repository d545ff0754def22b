package browse

import (
	"context"
	"errors"
	"fmt"

	"github.com/HerbHall/gutwise/pkg/models"
	"github.com/HerbHall/gutwise/pkg/source"
)

// DetailView is the single-recipe page. A missing recipe is reported through
// NotFound, never as an empty placeholder record.
type DetailView struct {
	src source.DataSource

	recipe   *models.Recipe
	notFound bool
	err      error
}

// NewDetailView creates a detail view reading from src.
func NewDetailView(src source.DataSource) *DetailView {
	return &DetailView{src: src}
}

// Load fetches the recipe with the given id. It returns source.ErrNotFound
// when no such recipe exists and a wrapped fetch error on other failures.
func (d *DetailView) Load(ctx context.Context, id string) (*models.Recipe, error) {
	d.recipe, d.notFound, d.err = nil, false, nil

	r, err := d.src.GetRecipe(ctx, id)
	switch {
	case errors.Is(err, source.ErrNotFound):
		d.notFound = true
		return nil, source.ErrNotFound
	case err != nil:
		d.err = fmt.Errorf("load recipe %q: %w", id, err)
		return nil, d.err
	case r == nil || r.ID == "":
		d.notFound = true
		return nil, source.ErrNotFound
	}

	r.Normalize()
	d.recipe = r
	return r, nil
}

// Recipe returns the loaded recipe, or nil.
func (d *DetailView) Recipe() *models.Recipe { return d.recipe }

// NotFound reports whether the last Load found no recipe.
func (d *DetailView) NotFound() bool { return d.notFound }

// Err returns the last non-not-found error.
func (d *DetailView) Err() error { return d.err }
