// Package recipes provides the HTTP handlers for the recipe, dietary filter,
// and personal story endpoints.
package recipes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/HerbHall/gutwise/internal/server"
	"github.com/HerbHall/gutwise/internal/services"
	"github.com/HerbHall/gutwise/pkg/models"
)

// maxBodyBytes caps a create request body.
const maxBodyBytes = 1 << 20

// Handler serves the /api recipe routes.
type Handler struct {
	recipes      services.RecipeRepository
	stories      services.StoryRepository
	logger       *zap.Logger
	defaultLimit int
}

// Option configures a Handler.
type Option func(*Handler)

// WithDefaultLimit sets the page size used when a list request has no limit.
// Zero means unlimited.
func WithDefaultLimit(n int) Option {
	return func(h *Handler) { h.defaultLimit = n }
}

// NewHandler creates a recipes Handler.
func NewHandler(recipes services.RecipeRepository, stories services.StoryRepository, logger *zap.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{recipes: recipes, stories: stories, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes registers the recipe routes on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/recipes", h.handleListRecipes)
	mux.HandleFunc("POST /api/recipes", h.handleCreateRecipe)
	mux.HandleFunc("GET /api/recipes/{id}", h.handleGetRecipe)
	mux.HandleFunc("GET /api/dietary-filters", h.handleListDietaryFilters)
	mux.HandleFunc("GET /api/personal-story", h.handleGetPersonalStory)
}

// handleListRecipes returns recipes matching the optional search and tags.
//
//	@Summary		List recipes
//	@Description	List recipes in insertion order, optionally filtered by a search term and dietary tags.
//	@Tags			recipes
//	@Produce		json
//	@Param			search			query		string	false	"Case-insensitive substring of title, description, or an ingredient"
//	@Param			dietary_tags	query		string	false	"Comma-separated dietary tags; all must match"
//	@Param			limit			query		int		false	"Maximum number of results"
//	@Param			offset			query		int		false	"Number of results to skip"
//	@Success		200				{array}		models.Recipe
//	@Failure		400				{object}	server.Problem	"Invalid query"
//	@Router			/recipes [get]
func (h *Handler) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := services.ListOptions{Limit: h.defaultLimit}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			server.BadRequest(w, "limit must be a non-negative integer", r.URL.Path)
			return
		}
		opts.Limit = n
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			server.BadRequest(w, "offset must be a non-negative integer", r.URL.Path)
			return
		}
		opts.Offset = n
	}

	f := services.RecipeFilter{
		Search: strings.TrimSpace(q.Get("search")),
		Tags:   parseTags(q.Get("dietary_tags")),
	}
	recipeQueries.WithLabelValues(filterLabel(f.Search, f.Tags)).Inc()

	res, err := h.recipes.List(r.Context(), f, opts)
	if err != nil {
		h.logger.Error("failed to list recipes", zap.Error(err), zap.String("request_id", server.RequestID(r.Context())))
		server.InternalError(w, "failed to list recipes", r.URL.Path)
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(res.Total))
	server.WriteJSON(w, http.StatusOK, res.Items)
}

// handleGetRecipe returns one recipe.
//
//	@Summary		Get recipe
//	@Tags			recipes
//	@Produce		json
//	@Param			id	path		string	true	"Recipe ID"
//	@Success		200	{object}	models.Recipe
//	@Failure		404	{object}	server.Problem	"Recipe not found"
//	@Router			/recipes/{id} [get]
func (h *Handler) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rec, err := h.recipes.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			server.NotFound(w, "Recipe not found", r.URL.Path)
			return
		}
		h.logger.Error("failed to get recipe", zap.String("id", id), zap.Error(err))
		server.InternalError(w, "failed to get recipe", r.URL.Path)
		return
	}
	server.WriteJSON(w, http.StatusOK, rec)
}

// handleCreateRecipe stores a new recipe.
//
//	@Summary		Create recipe
//	@Description	Create a recipe. The server assigns the id and timestamps.
//	@Tags			recipes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.RecipeCreate	true	"Recipe to create"
//	@Success		201		{object}	models.Recipe
//	@Failure		400		{object}	server.Problem	"Invalid payload"
//	@Router			/recipes [post]
func (h *Handler) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req models.RecipeCreate
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		server.BadRequest(w, "invalid request body", r.URL.Path)
		return
	}
	if fields := validateStruct(req); fields != nil {
		server.ValidationFailed(w, fields, r.URL.Path)
		return
	}

	rec := req.Recipe()
	if err := h.recipes.Create(r.Context(), &rec); err != nil {
		if errors.Is(err, services.ErrAlreadyExists) {
			server.Conflict(w, "recipe already exists", r.URL.Path)
			return
		}
		h.logger.Error("failed to create recipe", zap.Error(err))
		server.InternalError(w, "failed to create recipe", r.URL.Path)
		return
	}

	recipesCreated.Inc()
	h.logger.Info("recipe created", zap.String("id", rec.ID), zap.String("title", rec.Title))
	w.Header().Set("Location", "/api/recipes/"+rec.ID)
	server.WriteJSON(w, http.StatusCreated, rec)
}

// handleListDietaryFilters returns the dietary tags in use with their counts.
//
//	@Summary		List dietary filters
//	@Description	Dietary tags in use with recipe counts, most used first.
//	@Tags			recipes
//	@Produce		json
//	@Success		200	{array}	models.DietaryFilter
//	@Router			/dietary-filters [get]
func (h *Handler) handleListDietaryFilters(w http.ResponseWriter, r *http.Request) {
	filters, err := services.DietaryFilters(r.Context(), h.recipes)
	if err != nil {
		h.logger.Error("failed to aggregate dietary filters", zap.Error(err))
		server.InternalError(w, "failed to list dietary filters", r.URL.Path)
		return
	}
	server.WriteJSON(w, http.StatusOK, filters)
}

// handleGetPersonalStory returns the personal story.
//
//	@Summary		Get personal story
//	@Tags			story
//	@Produce		json
//	@Success		200	{object}	models.PersonalStory
//	@Failure		404	{object}	server.Problem	"Personal story not found"
//	@Router			/personal-story [get]
func (h *Handler) handleGetPersonalStory(w http.ResponseWriter, r *http.Request) {
	story, err := h.stories.Get(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			server.NotFound(w, "Personal story not found", r.URL.Path)
			return
		}
		h.logger.Error("failed to get personal story", zap.Error(err))
		server.InternalError(w, "failed to get personal story", r.URL.Path)
		return
	}
	server.WriteJSON(w, http.StatusOK, story)
}

// parseTags splits a comma-separated tag list, trimming blanks.
func parseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
