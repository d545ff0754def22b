package services

import (
	"context"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/HerbHall/gutwise/pkg/models"
)

// dietaryLabels holds display labels for the known tags.
var dietaryLabels = map[string]string{
	models.TagGlutenFree: "Gluten-Free",
	models.TagDairyFree:  "Dairy-Free",
	models.TagLowFODMAP:  "Low-FODMAP",
	models.TagVegan:      "Vegan",
	models.TagPaleo:      "Paleo",
	models.TagKeto:       "Keto",
}

// DietaryLabel returns the display label for a tag id. Unknown ids are title
// cased, so "nut-free" becomes "Nut-Free".
func DietaryLabel(id string) string {
	if l, ok := dietaryLabels[id]; ok {
		return l
	}
	return cases.Title(language.English).String(id)
}

// DietaryFilters aggregates the stored recipes into filter descriptors, most
// used tag first.
func DietaryFilters(ctx context.Context, repo RecipeRepository) ([]models.DietaryFilter, error) {
	counts, err := repo.TagCounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.DietaryFilter, 0, len(counts))
	for _, tc := range counts {
		out = append(out, models.DietaryFilter{ID: tc.Tag, Label: DietaryLabel(tc.Tag), Count: tc.Count})
	}
	return out, nil
}
