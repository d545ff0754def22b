package catalog

import (
	"strings"
	"testing"
)

func TestCatalog_SeedRecipes(t *testing.T) {
	c := NewCatalog()
	recipes, err := c.Recipes()
	if err != nil {
		t.Fatalf("Recipes() error = %v", err)
	}
	if len(recipes) != 5 {
		t.Fatalf("len(recipes) = %d, want 5", len(recipes))
	}

	wantTitles := []string{
		"Gentle Chicken and Rice Bowl",
		"Healing Bone Broth",
		"Simple Baked Sweet Potato",
		"Gentle Ginger Tea",
		"Quinoa Porridge Bowl",
	}
	for i, want := range wantTitles {
		if recipes[i].Title != want {
			t.Errorf("recipes[%d].Title = %q, want %q", i, recipes[i].Title, want)
		}
		if recipes[i].ID == "" {
			t.Errorf("recipes[%d] has empty id", i)
		}
		if len(recipes[i].Instructions) == 0 {
			t.Errorf("recipes[%d] has no instructions", i)
		}
	}
}

func TestCatalog_RecipesReturnsCopy(t *testing.T) {
	c := NewCatalog()
	first, _ := c.Recipes()
	first[0].Title = "mutated"
	first[0].DietaryTags[0] = "mutated"

	second, _ := c.Recipes()
	if second[0].Title == "mutated" || second[0].DietaryTags[0] == "mutated" {
		t.Error("Recipes() must return an independent copy")
	}
}

func TestCatalog_PersonalStory(t *testing.T) {
	s, err := NewCatalog().PersonalStory()
	if err != nil {
		t.Fatalf("PersonalStory() error = %v", err)
	}
	if s.ID != "main-story" {
		t.Errorf("ID = %q, want main-story", s.ID)
	}
	if len(s.Content) != 4 {
		t.Errorf("len(Content) = %d, want 4", len(s.Content))
	}
}

func TestCatalog_DietaryFilters(t *testing.T) {
	filters, err := NewCatalog().DietaryFilters()
	if err != nil {
		t.Fatalf("DietaryFilters() error = %v", err)
	}
	if len(filters) != 6 {
		t.Fatalf("len(filters) = %d, want 6", len(filters))
	}
	if filters[0].ID != "gluten-free" || filters[0].Label != "Gluten-Free" || filters[0].Count != 5 {
		t.Errorf("filters[0] = %+v", filters[0])
	}
}

func TestCatalog_InvalidYAML(t *testing.T) {
	c := NewCatalogFromYAML([]byte("recipes: [unterminated"))
	if _, err := c.Recipes(); err == nil || !strings.Contains(err.Error(), "parse yaml") {
		t.Errorf("Recipes() error = %v, want parse error", err)
	}
}

func TestCatalog_RejectsRecipeWithoutID(t *testing.T) {
	c := NewCatalogFromYAML([]byte("recipes:\n  - title: Nameless\n"))
	if _, err := c.Recipes(); err == nil || !strings.Contains(err.Error(), "has no id") {
		t.Errorf("Recipes() error = %v, want missing id error", err)
	}
}

func TestCatalog_RejectsDuplicateIDs(t *testing.T) {
	c := NewCatalogFromYAML([]byte("recipes:\n  - id: a\n    title: One\n  - id: a\n    title: Two\n"))
	if _, err := c.Recipes(); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("Recipes() error = %v, want duplicate error", err)
	}
}
