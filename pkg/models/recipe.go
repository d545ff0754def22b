package models

import "time"

// Difficulty labels used by the seed data. The set is open; any string is
// accepted on create.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Known dietary tag identifiers.
const (
	TagGlutenFree = "gluten-free"
	TagDairyFree  = "dairy-free"
	TagLowFODMAP  = "low-fodmap"
	TagVegan      = "vegan"
	TagPaleo      = "paleo"
	TagKeto       = "keto"
)

// Recipe is a single dish with display metadata, ingredients, and ordered
// instructions. JSON field names are the snake_case wire names.
type Recipe struct {
	ID           string    `json:"id" yaml:"id" example:"1"`
	Title        string    `json:"title" yaml:"title" example:"Gentle Chicken and Rice Bowl"`
	Description  string    `json:"description" yaml:"description"`
	Image        string    `json:"image" yaml:"image"`
	PrepTime     string    `json:"prep_time" yaml:"prep_time" example:"15 min"`
	CookTime     string    `json:"cook_time" yaml:"cook_time" example:"25 min"`
	Servings     int       `json:"servings" yaml:"servings" example:"4"`
	Difficulty   string    `json:"difficulty" yaml:"difficulty" example:"Easy"`
	DietaryTags  []string  `json:"dietary_tags" yaml:"dietary_tags"`
	Ingredients  []string  `json:"ingredients" yaml:"ingredients"`
	Instructions []string  `json:"instructions" yaml:"instructions"`
	Story        string    `json:"story,omitempty" yaml:"story"`
	CreatedAt    time.Time `json:"created_at" yaml:"-"`
	UpdatedAt    time.Time `json:"updated_at" yaml:"-"`
}

// HasTag reports whether tag is among the recipe's dietary tags.
func (r *Recipe) HasTag(tag string) bool {
	for i := range r.DietaryTags {
		if r.DietaryTags[i] == tag {
			return true
		}
	}
	return false
}

// Normalize replaces nil slices with empty ones so the record always encodes
// as JSON arrays.
func (r *Recipe) Normalize() {
	if r.DietaryTags == nil {
		r.DietaryTags = []string{}
	}
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}
}

// RecipeCreate is the payload accepted by POST /api/recipes.
// @Description Request body for creating a recipe.
type RecipeCreate struct {
	Title        string   `json:"title" validate:"required,max=200" example:"Simple Baked Sweet Potato"`
	Description  string   `json:"description" validate:"required"`
	Image        string   `json:"image" validate:"required"`
	PrepTime     string   `json:"prep_time" validate:"required" example:"5 min"`
	CookTime     string   `json:"cook_time" validate:"required" example:"45 min"`
	Servings     int      `json:"servings" validate:"min=1" example:"1"`
	Difficulty   string   `json:"difficulty" validate:"required" example:"Easy"`
	DietaryTags  []string `json:"dietary_tags" validate:"dive,required"`
	Ingredients  []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Instructions []string `json:"instructions" validate:"required,min=1,dive,required"`
	Story        string   `json:"story"`
}

// Recipe converts the payload into a Recipe without an ID or timestamps.
func (c *RecipeCreate) Recipe() Recipe {
	r := Recipe{
		Title:        c.Title,
		Description:  c.Description,
		Image:        c.Image,
		PrepTime:     c.PrepTime,
		CookTime:     c.CookTime,
		Servings:     c.Servings,
		Difficulty:   c.Difficulty,
		DietaryTags:  dedupe(c.DietaryTags),
		Ingredients:  c.Ingredients,
		Instructions: c.Instructions,
		Story:        c.Story,
	}
	r.Normalize()
	return r
}

// DietaryFilter describes a selectable dietary tag. Count is informational
// metadata supplied by the data source; it is not kept in sync with any
// particular recipe collection.
type DietaryFilter struct {
	ID    string `json:"id" yaml:"id" example:"gluten-free"`
	Label string `json:"label" yaml:"label" example:"Gluten-Free"`
	Count int    `json:"count" yaml:"count" example:"5"`
}

// PersonalStory is the narrative record shown on the home page.
type PersonalStory struct {
	ID        string    `json:"id" yaml:"id" example:"main-story"`
	Title     string    `json:"title" yaml:"title"`
	Subtitle  string    `json:"subtitle" yaml:"subtitle"`
	Content   []string  `json:"content" yaml:"content"`
	Image     string    `json:"image" yaml:"image"`
	CreatedAt time.Time `json:"created_at" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}

// ValidateCollection returns recipes with id-less and duplicate-id records
// removed, keeping the first occurrence of each id. The second return value
// holds the indexes of the dropped records.
func ValidateCollection(recipes []Recipe) ([]Recipe, []int) {
	seen := make(map[string]struct{}, len(recipes))
	out := make([]Recipe, 0, len(recipes))
	var dropped []int
	for i := range recipes {
		id := recipes[i].ID
		if id == "" {
			dropped = append(dropped, i)
			continue
		}
		if _, dup := seen[id]; dup {
			dropped = append(dropped, i)
			continue
		}
		seen[id] = struct{}{}
		out = append(out, recipes[i])
	}
	return out, dropped
}

// dedupe drops repeated tags while keeping encounter order.
func dedupe(tags []string) []string {
	if tags == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
