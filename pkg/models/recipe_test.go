package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRecipe_HasTag(t *testing.T) {
	r := Recipe{DietaryTags: []string{TagGlutenFree, TagVegan}}
	if !r.HasTag(TagVegan) {
		t.Error("HasTag(vegan) = false, want true")
	}
	if r.HasTag("Vegan") {
		t.Error("HasTag is case-sensitive; Vegan should not match")
	}
	if r.HasTag(TagKeto) {
		t.Error("HasTag(keto) = true, want false")
	}
}

func TestRecipe_NormalizeEncodesEmptyArrays(t *testing.T) {
	r := Recipe{ID: "1", Title: "Plain Rice"}
	r.Normalize()

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{`"dietary_tags":[]`, `"ingredients":[]`, `"instructions":[]`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("encoded recipe missing %s: %s", field, data)
		}
	}
	if strings.Contains(string(data), `"story"`) {
		t.Error("empty story should be omitted")
	}
}

func TestRecipeCreate_Recipe(t *testing.T) {
	c := RecipeCreate{
		Title:        "Simple Baked Sweet Potato",
		Servings:     1,
		Difficulty:   DifficultyEasy,
		DietaryTags:  []string{TagVegan, TagGlutenFree, TagVegan},
		Ingredients:  []string{"1 sweet potato"},
		Instructions: []string{"Bake until soft."},
	}
	r := c.Recipe()

	if r.ID != "" || !r.CreatedAt.IsZero() {
		t.Error("Recipe() must not assign an id or timestamps")
	}
	if got := strings.Join(r.DietaryTags, ","); got != "vegan,gluten-free" {
		t.Errorf("DietaryTags = %q, want vegan,gluten-free", got)
	}
	if r.Title != c.Title || r.Servings != 1 {
		t.Errorf("fields not copied: %+v", r)
	}

	c.DietaryTags = nil
	if r := c.Recipe(); r.DietaryTags == nil {
		t.Error("nil tags should normalize to an empty slice")
	}
}

func TestValidateCollection(t *testing.T) {
	in := []Recipe{
		{ID: "1", Title: "first"},
		{Title: "no id"},
		{ID: "2"},
		{ID: "1", Title: "duplicate"},
	}
	out, dropped := ValidateCollection(in)

	if len(out) != 2 || out[0].Title != "first" || out[1].ID != "2" {
		t.Errorf("out = %+v", out)
	}
	if len(dropped) != 2 || dropped[0] != 1 || dropped[1] != 3 {
		t.Errorf("dropped = %v, want [1 3]", dropped)
	}
}

func TestValidateCollection_Empty(t *testing.T) {
	out, dropped := ValidateCollection(nil)
	if len(out) != 0 || dropped != nil {
		t.Errorf("got %v, %v", out, dropped)
	}
}
