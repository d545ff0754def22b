package browse

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/HerbHall/gutwise/pkg/models"
	"github.com/HerbHall/gutwise/pkg/source"
)

// FeaturedLimit is the number of recipes shown on the home page.
const FeaturedLimit = 3

// Home is the data behind the home page.
type Home struct {
	Featured []models.Recipe
	Story    *models.PersonalStory // nil when the backend has no story
}

// LoadHome fetches the featured recipes and the personal story concurrently.
// A missing story is not an error.
func LoadHome(ctx context.Context, src source.DataSource) (*Home, error) {
	var home Home
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		recipes, err := src.ListRecipes(gctx, source.ListOptions{Limit: FeaturedLimit})
		if err != nil {
			return fmt.Errorf("featured recipes: %w", err)
		}
		valid, _ := models.ValidateCollection(recipes)
		home.Featured = valid
		return nil
	})

	g.Go(func() error {
		story, err := src.GetPersonalStory(gctx)
		if errors.Is(err, source.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("personal story: %w", err)
		}
		home.Story = story
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &home, nil
}
