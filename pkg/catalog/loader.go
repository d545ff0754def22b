// Package catalog provides the embedded seed data set: the starter recipes,
// the personal story, and the dietary filter descriptors with their static
// counts.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/HerbHall/gutwise/pkg/models"
)

//go:embed seed.yaml
var seedRawData []byte

// seedFile is the top-level structure of the embedded YAML.
type seedFile struct {
	Recipes        []models.Recipe        `yaml:"recipes"`
	PersonalStory  models.PersonalStory   `yaml:"personal_story"`
	DietaryFilters []models.DietaryFilter `yaml:"dietary_filters"`
}

// Catalog provides lazy-loaded access to the embedded seed data.
type Catalog struct {
	once sync.Once
	data seedFile
	err  error
	raw  []byte
}

// NewCatalog creates a Catalog that parses the embedded YAML on first access.
func NewCatalog() *Catalog {
	return &Catalog{raw: seedRawData}
}

// NewCatalogFromYAML creates a Catalog over caller-supplied YAML in the same
// layout as the embedded seed file.
func NewCatalogFromYAML(raw []byte) *Catalog {
	return &Catalog{raw: raw}
}

// Recipes returns a copy of all seed recipes in file order.
func (c *Catalog) Recipes() ([]models.Recipe, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	cp := make([]models.Recipe, len(c.data.Recipes))
	for i := range c.data.Recipes {
		cp[i] = cloneRecipe(c.data.Recipes[i])
	}
	return cp, nil
}

// PersonalStory returns a copy of the seed story.
func (c *Catalog) PersonalStory() (models.PersonalStory, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return models.PersonalStory{}, c.err
	}
	s := c.data.PersonalStory
	s.Content = append([]string(nil), s.Content...)
	return s, nil
}

// DietaryFilters returns a copy of the dietary filter descriptors.
func (c *Catalog) DietaryFilters() ([]models.DietaryFilter, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	cp := make([]models.DietaryFilter, len(c.data.DietaryFilters))
	copy(cp, c.data.DietaryFilters)
	return cp, nil
}

// load parses the seed YAML and rejects records without an id.
func (c *Catalog) load() {
	var f seedFile
	if err := yaml.Unmarshal(c.raw, &f); err != nil {
		c.err = fmt.Errorf("catalog: parse yaml: %w", err)
		return
	}
	for i := range f.Recipes {
		if f.Recipes[i].ID == "" {
			c.err = fmt.Errorf("catalog: recipe %d (%q) has no id", i, f.Recipes[i].Title)
			return
		}
		f.Recipes[i].Normalize()
	}
	if valid, dropped := models.ValidateCollection(f.Recipes); len(dropped) > 0 {
		c.err = fmt.Errorf("catalog: %d duplicate recipe id(s)", len(f.Recipes)-len(valid))
		return
	}
	c.data = f
}

func cloneRecipe(r models.Recipe) models.Recipe {
	r.DietaryTags = append([]string{}, r.DietaryTags...)
	r.Ingredients = append([]string{}, r.Ingredients...)
	r.Instructions = append([]string{}, r.Instructions...)
	return r
}
