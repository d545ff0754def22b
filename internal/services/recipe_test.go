package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/HerbHall/gutwise/internal/services"
	"github.com/HerbHall/gutwise/internal/testutil"
	"github.com/HerbHall/gutwise/pkg/catalog"
	"github.com/HerbHall/gutwise/pkg/models"
)

func newRecipeRepo(t *testing.T) *services.SQLiteRecipeRepository {
	t.Helper()
	repo, err := services.NewSQLiteRecipeRepository(context.Background(), testutil.NewStore(t))
	if err != nil {
		t.Fatalf("NewSQLiteRecipeRepository: %v", err)
	}
	return repo
}

func newStoryRepo(t *testing.T) *services.SQLiteStoryRepository {
	t.Helper()
	repo, err := services.NewSQLiteStoryRepository(context.Background(), testutil.NewStore(t))
	if err != nil {
		t.Fatalf("NewSQLiteStoryRepository: %v", err)
	}
	return repo
}

func mustCreate(t *testing.T, repo services.RecipeRepository, recipes ...models.Recipe) {
	t.Helper()
	for i := range recipes {
		if err := repo.Create(context.Background(), &recipes[i]); err != nil {
			t.Fatalf("Create(%q): %v", recipes[i].ID, err)
		}
	}
}

func TestRecipeRepository_CreateAndGet(t *testing.T) {
	clock := testutil.NewClock()
	repo := newRecipeRepo(t).WithClock(clock.Now)
	ctx := context.Background()

	r := testutil.NewRecipe(testutil.WithID(""), testutil.WithTags(models.TagVegan, models.TagPaleo))
	if err := repo.Create(ctx, &r); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.ID == "" {
		t.Fatal("Create did not assign an ID")
	}
	if !r.CreatedAt.Equal(clock.Now()) || !r.UpdatedAt.Equal(clock.Now()) {
		t.Errorf("timestamps = %v / %v, want %v", r.CreatedAt, r.UpdatedAt, clock.Now())
	}

	got, err := repo.Get(ctx, r.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != r.Title {
		t.Errorf("Title = %q, want %q", got.Title, r.Title)
	}
	if len(got.DietaryTags) != 2 || got.DietaryTags[0] != models.TagVegan {
		t.Errorf("DietaryTags = %v, want [vegan paleo]", got.DietaryTags)
	}
	if len(got.Instructions) != 1 {
		t.Errorf("Instructions = %v", got.Instructions)
	}
	if !got.CreatedAt.Equal(clock.Now()) {
		t.Errorf("stored CreatedAt = %v, want %v", got.CreatedAt, clock.Now())
	}
}

func TestRecipeRepository_GetNotFound(t *testing.T) {
	repo := newRecipeRepo(t)
	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestRecipeRepository_DuplicateID(t *testing.T) {
	repo := newRecipeRepo(t)
	mustCreate(t, repo, testutil.NewRecipe(testutil.WithID("dup")))

	r := testutil.NewRecipe(testutil.WithID("dup"))
	if err := repo.Create(context.Background(), &r); !errors.Is(err, services.ErrAlreadyExists) {
		t.Errorf("second Create error = %v, want ErrAlreadyExists", err)
	}
}

func TestRecipeRepository_List(t *testing.T) {
	repo := newRecipeRepo(t)
	mustCreate(t, repo,
		testutil.NewRecipe(testutil.WithID("a"), testutil.WithTitle("Chicken Soup"), testutil.WithTags(models.TagGlutenFree)),
		testutil.NewRecipe(testutil.WithID("b"), testutil.WithTitle("Vegan Bowl"), testutil.WithTags(models.TagVegan, models.TagGlutenFree)),
		testutil.NewRecipe(testutil.WithID("c"), testutil.WithTitle("Rice"), testutil.WithIngredients("chicken stock")),
		testutil.NewRecipe(testutil.WithID("d"), testutil.WithTitle("Plain Tea")),
	)
	ctx := context.Background()

	tests := []struct {
		name      string
		filter    services.RecipeFilter
		opts      services.ListOptions
		wantIDs   []string
		wantTotal int
	}{
		{"all in insertion order", services.RecipeFilter{}, services.ListOptions{}, []string{"a", "b", "c", "d"}, 4},
		{"limit", services.RecipeFilter{}, services.ListOptions{Limit: 2}, []string{"a", "b"}, 4},
		{"limit beyond collection", services.RecipeFilter{}, services.ListOptions{Limit: 5000}, []string{"a", "b", "c", "d"}, 4},
		{"negative limit is unlimited", services.RecipeFilter{}, services.ListOptions{Limit: -1}, []string{"a", "b", "c", "d"}, 4},
		{"offset", services.RecipeFilter{}, services.ListOptions{Offset: 3}, []string{"d"}, 4},
		{"offset past end", services.RecipeFilter{}, services.ListOptions{Offset: 10}, []string{}, 4},
		{"search title and ingredient", services.RecipeFilter{Search: "CHICKEN"}, services.ListOptions{}, []string{"a", "c"}, 2},
		{"single tag", services.RecipeFilter{Tags: []string{models.TagGlutenFree}}, services.ListOptions{}, []string{"a", "b"}, 2},
		{"tags are AND", services.RecipeFilter{Tags: []string{models.TagGlutenFree, models.TagVegan}}, services.ListOptions{}, []string{"b"}, 1},
		{"search and tag", services.RecipeFilter{Search: "bowl", Tags: []string{models.TagVegan}}, services.ListOptions{}, []string{"b"}, 1},
		{"no match", services.RecipeFilter{Tags: []string{models.TagKeto}}, services.ListOptions{}, []string{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := repo.List(ctx, tt.filter, tt.opts)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if res.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", res.Total, tt.wantTotal)
			}
			if res.Items == nil {
				t.Fatal("Items is nil, want empty slice")
			}
			if len(res.Items) != len(tt.wantIDs) {
				t.Fatalf("got %d items, want %d", len(res.Items), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if res.Items[i].ID != id {
					t.Errorf("Items[%d].ID = %q, want %q", i, res.Items[i].ID, id)
				}
			}
		})
	}
}

func TestRecipeRepository_TagCounts(t *testing.T) {
	repo := newRecipeRepo(t)
	mustCreate(t, repo,
		testutil.NewRecipe(testutil.WithTags(models.TagVegan, models.TagGlutenFree)),
		testutil.NewRecipe(testutil.WithTags(models.TagGlutenFree)),
		testutil.NewRecipe(testutil.WithTags("nut-free")),
	)

	filters, err := services.DietaryFilters(context.Background(), repo)
	if err != nil {
		t.Fatalf("DietaryFilters: %v", err)
	}
	want := []models.DietaryFilter{
		{ID: models.TagGlutenFree, Label: "Gluten-Free", Count: 2},
		{ID: "nut-free", Label: "Nut-Free", Count: 1},
		{ID: models.TagVegan, Label: "Vegan", Count: 1},
	}
	if len(filters) != len(want) {
		t.Fatalf("got %d filters, want %d: %+v", len(filters), len(want), filters)
	}
	for i := range want {
		if filters[i] != want[i] {
			t.Errorf("filters[%d] = %+v, want %+v", i, filters[i], want[i])
		}
	}
}

func TestDietaryLabel(t *testing.T) {
	tests := map[string]string{
		models.TagLowFODMAP: "Low-FODMAP",
		models.TagKeto:      "Keto",
		"whole30":           "Whole30",
		"sugar-free":        "Sugar-Free",
	}
	for id, want := range tests {
		if got := services.DietaryLabel(id); got != want {
			t.Errorf("DietaryLabel(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestStoryRepository(t *testing.T) {
	repo := newStoryRepo(t)
	ctx := context.Background()

	if _, err := repo.Get(ctx); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("Get on empty table error = %v, want ErrNotFound", err)
	}

	s := models.PersonalStory{Title: "Journey", Content: []string{"one", "two"}}
	if err := repo.Create(ctx, &s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != s.ID || len(got.Content) != 2 || got.Content[1] != "two" {
		t.Errorf("Get = %+v", got)
	}
	if got.CreatedAt.IsZero() || time.Since(got.CreatedAt) > time.Hour {
		t.Errorf("CreatedAt = %v, want now", got.CreatedAt)
	}
}

func TestSeed_OnlyWhenEmpty(t *testing.T) {
	st := testutil.NewStore(t)
	ctx := context.Background()
	recipes, err := services.NewSQLiteRecipeRepository(ctx, st)
	if err != nil {
		t.Fatal(err)
	}
	stories, err := services.NewSQLiteStoryRepository(ctx, st)
	if err != nil {
		t.Fatal(err)
	}
	cat := catalog.NewCatalog()

	res, err := services.Seed(ctx, cat, recipes, stories, testutil.Logger())
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if res.Recipes != 5 || res.Stories != 1 {
		t.Errorf("first Seed = %+v, want 5 recipes and 1 story", res)
	}

	res, err = services.Seed(ctx, cat, recipes, stories, testutil.Logger())
	if err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if res.Recipes != 0 || res.Stories != 0 {
		t.Errorf("second Seed = %+v, want nothing inserted", res)
	}

	n, _ := recipes.Count(ctx)
	if n != 5 {
		t.Errorf("recipe count = %d, want 5", n)
	}
	r, err := recipes.Get(ctx, "1")
	if err != nil {
		t.Fatalf("Get seeded recipe: %v", err)
	}
	if r.Title != "Gentle Chicken and Rice Bowl" {
		t.Errorf("seeded recipe 1 title = %q", r.Title)
	}
}
