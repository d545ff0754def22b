package testutil

import (
	"github.com/google/uuid"

	"github.com/HerbHall/gutwise/pkg/models"
)

// NewRecipe returns a valid Recipe with a fresh ID. Override fields with
// options.
func NewRecipe(opts ...func(*models.Recipe)) models.Recipe {
	r := models.Recipe{
		ID:           uuid.New().String(),
		Title:        "Test Recipe",
		Description:  "A plain test dish.",
		Image:        "https://example.com/test.jpg",
		PrepTime:     "5 min",
		CookTime:     "10 min",
		Servings:     2,
		Difficulty:   models.DifficultyEasy,
		DietaryTags:  []string{},
		Ingredients:  []string{"1 cup water"},
		Instructions: []string{"Boil the water."},
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithID sets the recipe ID.
func WithID(id string) func(*models.Recipe) {
	return func(r *models.Recipe) { r.ID = id }
}

// WithTitle sets the recipe title.
func WithTitle(title string) func(*models.Recipe) {
	return func(r *models.Recipe) { r.Title = title }
}

// WithDescription sets the recipe description.
func WithDescription(desc string) func(*models.Recipe) {
	return func(r *models.Recipe) { r.Description = desc }
}

// WithTags sets the dietary tags.
func WithTags(tags ...string) func(*models.Recipe) {
	return func(r *models.Recipe) { r.DietaryTags = tags }
}

// WithIngredients sets the ingredient list.
func WithIngredients(items ...string) func(*models.Recipe) {
	return func(r *models.Recipe) { r.Ingredients = items }
}

// NewRecipeCreate returns a create payload that passes validation.
func NewRecipeCreate(opts ...func(*models.RecipeCreate)) models.RecipeCreate {
	c := models.RecipeCreate{
		Title:        "Carrot Ginger Soup",
		Description:  "Warm and gentle on the stomach.",
		Image:        "https://example.com/soup.jpg",
		PrepTime:     "10 min",
		CookTime:     "30 min",
		Servings:     4,
		Difficulty:   models.DifficultyEasy,
		DietaryTags:  []string{models.TagVegan, models.TagGlutenFree},
		Ingredients:  []string{"6 carrots", "1 inch ginger"},
		Instructions: []string{"Simmer the carrots.", "Blend with ginger."},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
