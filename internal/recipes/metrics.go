package recipes

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recipeQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gutwise_recipe_queries_total",
			Help: "Recipe list requests by which filters were applied",
		},
		[]string{"filter"},
	)

	recipesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gutwise_recipes_created_total",
			Help: "Recipes created through the API",
		},
	)
)

func filterLabel(search string, tags []string) string {
	switch {
	case search != "" && len(tags) > 0:
		return "search_and_tags"
	case search != "":
		return "search"
	case len(tags) > 0:
		return "tags"
	default:
		return "none"
	}
}
