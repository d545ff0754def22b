package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/HerbHall/gutwise/pkg/catalog"
)

// SeedResult reports what Seed inserted.
type SeedResult struct {
	Recipes int
	Stories int
}

// Seed inserts the catalog's recipes when the recipes table is empty and its
// story when the stories table is empty. Populated tables are left alone.
func Seed(ctx context.Context, cat *catalog.Catalog, recipes RecipeRepository, stories StoryRepository, logger *zap.Logger) (SeedResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var res SeedResult

	n, err := recipes.Count(ctx)
	if err != nil {
		return res, err
	}
	if n == 0 {
		seed, err := cat.Recipes()
		if err != nil {
			return res, fmt.Errorf("load seed recipes: %w", err)
		}
		for i := range seed {
			err := recipes.Create(ctx, &seed[i])
			if errors.Is(err, ErrAlreadyExists) {
				continue
			}
			if err != nil {
				return res, fmt.Errorf("seed recipe %q: %w", seed[i].ID, err)
			}
			res.Recipes++
		}
		logger.Info("seeded recipes", zap.Int("count", res.Recipes))
	}

	n, err = stories.Count(ctx)
	if err != nil {
		return res, err
	}
	if n == 0 {
		story, err := cat.PersonalStory()
		if err != nil {
			return res, fmt.Errorf("load seed story: %w", err)
		}
		if err := stories.Create(ctx, &story); err != nil {
			return res, fmt.Errorf("seed personal story: %w", err)
		}
		res.Stories = 1
		logger.Info("seeded personal story", zap.String("id", story.ID))
	}

	return res, nil
}
