package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"

	"github.com/HerbHall/gutwise/internal/store"
	"github.com/HerbHall/gutwise/pkg/filter"
	"github.com/HerbHall/gutwise/pkg/models"
)

// RecipeFilter narrows List results. Search and Tags follow the filter
// engine's semantics so server and client agree on what matches.
type RecipeFilter struct {
	Search string   // Case-insensitive substring of title, description, or an ingredient.
	Tags   []string // Every tag must be present.
}

// RecipeRepository provides access to stored recipes.
type RecipeRepository interface {
	// Get returns a single recipe by ID.
	Get(ctx context.Context, id string) (*models.Recipe, error)

	// List returns the matching recipes in insertion order, paginated.
	List(ctx context.Context, f RecipeFilter, opts ListOptions) (*ListResult[models.Recipe], error)

	// Create inserts a recipe. If recipe.ID is empty, a UUID is generated.
	Create(ctx context.Context, recipe *models.Recipe) error

	// Count returns the number of stored recipes.
	Count(ctx context.Context) (int, error)

	// TagCounts returns how many recipes carry each dietary tag, ordered by
	// count descending then tag ascending.
	TagCounts(ctx context.Context) ([]TagCount, error)
}

// TagCount is one row of the dietary tag aggregation.
type TagCount struct {
	Tag   string
	Count int
}

// Compile-time interface guard.
var _ RecipeRepository = (*SQLiteRecipeRepository)(nil)

// SQLiteRecipeRepository implements RecipeRepository on the recipes table.
type SQLiteRecipeRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteRecipeRepository creates a RecipeRepository and runs the recipes
// migrations.
func NewSQLiteRecipeRepository(ctx context.Context, s *store.SQLiteStore) (*SQLiteRecipeRepository, error) {
	if err := s.Migrate(ctx, "recipes", recipeMigrations); err != nil {
		return nil, fmt.Errorf("recipes migrations: %w", err)
	}
	return &SQLiteRecipeRepository{db: s.DB(), now: func() time.Time { return time.Now().UTC() }}, nil
}

// WithClock replaces the time source used for created_at and updated_at.
func (r *SQLiteRecipeRepository) WithClock(now func() time.Time) *SQLiteRecipeRepository {
	r.now = now
	return r
}

// recipeMigrations create the recipes table. Array fields are stored as JSON
// text; seq preserves insertion order.
var recipeMigrations = []store.Migration{
	{
		Version:     1,
		Description: "create recipes table",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE recipes (
					seq          INTEGER PRIMARY KEY AUTOINCREMENT,
					id           TEXT    NOT NULL UNIQUE,
					title        TEXT    NOT NULL,
					description  TEXT    NOT NULL DEFAULT '',
					image        TEXT    NOT NULL DEFAULT '',
					prep_time    TEXT    NOT NULL DEFAULT '',
					cook_time    TEXT    NOT NULL DEFAULT '',
					servings     INTEGER NOT NULL DEFAULT 1,
					difficulty   TEXT    NOT NULL DEFAULT '',
					dietary_tags TEXT    NOT NULL DEFAULT '[]',
					ingredients  TEXT    NOT NULL DEFAULT '[]',
					instructions TEXT    NOT NULL DEFAULT '[]',
					story        TEXT    NOT NULL DEFAULT '',
					created_at   DATETIME NOT NULL,
					updated_at   DATETIME NOT NULL
				)`)
			return err
		},
	},
}

const recipeColumns = `id, title, description, image, prep_time, cook_time,
	servings, difficulty, dietary_tags, ingredients, instructions, story,
	created_at, updated_at`

func (r *SQLiteRecipeRepository) Get(ctx context.Context, id string) (*models.Recipe, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	rec, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get recipe %q: %w", id, err)
	}
	return rec, nil
}

func (r *SQLiteRecipeRepository) List(ctx context.Context, f RecipeFilter, opts ListOptions) (*ListResult[models.Recipe], error) {
	opts = normalizeListOptions(opts)

	// Tags narrow the scan in SQL; the filter engine then applies the full
	// search and tag predicate.
	where := "1=1"
	var args []any
	for _, tag := range f.Tags {
		where += " AND EXISTS (SELECT 1 FROM json_each(recipes.dietary_tags) WHERE json_each.value = ?)"
		args = append(args, tag)
	}

	//nolint:gosec // where uses parameterized placeholders only
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+recipeColumns+" FROM recipes WHERE "+where+" ORDER BY seq ASC", args...)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var all []models.Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}

	matched := filter.FilterRecipes(all, f.Search, f.Tags)
	return &ListResult[models.Recipe]{Items: paginate(matched, opts), Total: len(matched)}, nil
}

func (r *SQLiteRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	now := r.now()
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = now
	}
	if recipe.UpdatedAt.IsZero() {
		recipe.UpdatedAt = recipe.CreatedAt
	}
	recipe.Normalize()

	tags, _ := json.Marshal(recipe.DietaryTags)
	ingredients, _ := json.Marshal(recipe.Ingredients)
	instructions, _ := json.Marshal(recipe.Instructions)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO recipes (`+recipeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		recipe.ID, recipe.Title, recipe.Description, recipe.Image, recipe.PrepTime, recipe.CookTime,
		recipe.Servings, recipe.Difficulty, string(tags), string(ingredients), string(instructions), recipe.Story,
		recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

func (r *SQLiteRecipeRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM recipes").Scan(&n); err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	return n, nil
}

func (r *SQLiteRecipeRepository) TagCounts(ctx context.Context) ([]TagCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.value, COUNT(*) AS n
		FROM recipes, json_each(recipes.dietary_tags) AS t
		GROUP BY t.value
		ORDER BY n DESC, t.value ASC`)
	if err != nil {
		return nil, fmt.Errorf("aggregate dietary tags: %w", err)
	}
	defer rows.Close()

	out := []TagCount{}
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan tag count: %w", err)
		}
		out = append(out, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tag counts: %w", err)
	}
	return out, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(s scanner) (*models.Recipe, error) {
	var (
		rec                             models.Recipe
		tags, ingredients, instructions string
	)
	err := s.Scan(
		&rec.ID, &rec.Title, &rec.Description, &rec.Image, &rec.PrepTime, &rec.CookTime,
		&rec.Servings, &rec.Difficulty, &tags, &ingredients, &instructions, &rec.Story,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan recipe: %w", err)
	}

	// A malformed array column degrades to an empty list.
	_ = json.Unmarshal([]byte(tags), &rec.DietaryTags)
	_ = json.Unmarshal([]byte(ingredients), &rec.Ingredients)
	_ = json.Unmarshal([]byte(instructions), &rec.Instructions)
	rec.Normalize()
	return &rec, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		return code == 2067 || code == 1555 // SQLITE_CONSTRAINT_UNIQUE, SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
