package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/HerbHall/gutwise/internal/store"
	"github.com/HerbHall/gutwise/pkg/models"
)

// StoryRepository provides access to the personal story.
type StoryRepository interface {
	// Get returns the first stored story, or ErrNotFound when there is none.
	Get(ctx context.Context) (*models.PersonalStory, error)

	// Create inserts a story. If story.ID is empty, a UUID is generated.
	Create(ctx context.Context, story *models.PersonalStory) error

	// Count returns the number of stored stories.
	Count(ctx context.Context) (int, error)
}

// Compile-time interface guard.
var _ StoryRepository = (*SQLiteStoryRepository)(nil)

// SQLiteStoryRepository implements StoryRepository on the personal_stories
// table.
type SQLiteStoryRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStoryRepository creates a StoryRepository and runs its migrations.
func NewSQLiteStoryRepository(ctx context.Context, s *store.SQLiteStore) (*SQLiteStoryRepository, error) {
	if err := s.Migrate(ctx, "stories", storyMigrations); err != nil {
		return nil, fmt.Errorf("stories migrations: %w", err)
	}
	return &SQLiteStoryRepository{db: s.DB(), now: func() time.Time { return time.Now().UTC() }}, nil
}

var storyMigrations = []store.Migration{
	{
		Version:     1,
		Description: "create personal_stories table",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE personal_stories (
					seq        INTEGER PRIMARY KEY AUTOINCREMENT,
					id         TEXT    NOT NULL UNIQUE,
					title      TEXT    NOT NULL,
					subtitle   TEXT    NOT NULL DEFAULT '',
					content    TEXT    NOT NULL DEFAULT '[]',
					image      TEXT    NOT NULL DEFAULT '',
					created_at DATETIME NOT NULL,
					updated_at DATETIME NOT NULL
				)`)
			return err
		},
	},
}

func (r *SQLiteStoryRepository) Get(ctx context.Context) (*models.PersonalStory, error) {
	var (
		s       models.PersonalStory
		content string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, subtitle, content, image, created_at, updated_at
		FROM personal_stories ORDER BY seq ASC LIMIT 1`,
	).Scan(&s.ID, &s.Title, &s.Subtitle, &content, &s.Image, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get personal story: %w", err)
	}
	_ = json.Unmarshal([]byte(content), &s.Content)
	if s.Content == nil {
		s.Content = []string{}
	}
	return &s, nil
}

func (r *SQLiteStoryRepository) Create(ctx context.Context, story *models.PersonalStory) error {
	if story.ID == "" {
		story.ID = uuid.New().String()
	}
	if story.CreatedAt.IsZero() {
		story.CreatedAt = r.now()
	}
	if story.UpdatedAt.IsZero() {
		story.UpdatedAt = story.CreatedAt
	}
	if story.Content == nil {
		story.Content = []string{}
	}
	content, _ := json.Marshal(story.Content)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO personal_stories (id, title, subtitle, content, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		story.ID, story.Title, story.Subtitle, string(content), story.Image, story.CreatedAt, story.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create personal story: %w", err)
	}
	return nil
}

func (r *SQLiteStoryRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM personal_stories").Scan(&n); err != nil {
		return 0, fmt.Errorf("count personal stories: %w", err)
	}
	return n, nil
}
