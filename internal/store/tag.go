// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"pressroom/internal/blog"
	"pressroom/internal/models"
)

// TagStore handles all tag-related database operations.
type TagStore struct {
	db *sql.DB
}

// NewTagStore creates a new TagStore with the given database connection.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

const tagColumns = `
	SELECT t.id, t.name, t.slug, t.created_at,
	       (SELECT COUNT(*) FROM post_tags pt WHERE pt.tag_id = t.id) AS post_count
	FROM tags t`

func scanTag(row interface{ Scan(...any) error }) (*models.Tag, error) {
	t := &models.Tag{}
	if err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.PostCount); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TagStore) findOne(ctx context.Context, where string, arg any) (*models.Tag, error) {
	t, err := scanTag(s.db.QueryRowContext(ctx, tagColumns+" WHERE "+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tag: %w", err)
	}
	return t, nil
}

// FindByID retrieves a tag by its UUID. Returns nil if not found.
func (s *TagStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	return s.findOne(ctx, "t.id = $1", id)
}

// FindBySlug retrieves a tag by slug.
func (s *TagStore) FindBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	return s.findOne(ctx, "t.slug = $1", slug)
}

// FindByName retrieves a tag by its name, case-insensitively. Used by the
// get-or-create tagging path.
func (s *TagStore) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	return s.findOne(ctx, "LOWER(t.name) = LOWER($1)", name)
}

// Create inserts a new tag and returns it with generated fields.
func (s *TagStore) Create(ctx context.Context, t *models.Tag) (*models.Tag, error) {
	result := *t
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO tags (name, slug) VALUES ($1, $2)
		RETURNING id, created_at
	`, t.Name, t.Slug).Scan(&result.ID, &result.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, blog.ErrSlugTaken
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return &result, nil
}

// Update modifies an existing tag.
func (s *TagStore) Update(ctx context.Context, t *models.Tag) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tags SET name = $1, slug = $2 WHERE id = $3
	`, t.Name, t.Slug, t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return blog.ErrSlugTaken
		}
		return fmt.Errorf("update tag: %w", err)
	}
	return requireRow(res, "update tag")
}

// Delete removes a tag. Post links go with it via ON DELETE CASCADE.
func (s *TagStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return requireRow(res, "delete tag")
}

// List returns all tags with their usage counts, ordered by name.
func (s *TagStore) List(ctx context.Context) ([]models.Tag, error) {
	return s.queryTags(ctx, tagColumns+` ORDER BY t.name`)
}

// Popular returns the most used tags, busiest first.
func (s *TagStore) Popular(ctx context.Context, limit int) ([]models.Tag, error) {
	return s.queryTags(ctx, tagColumns+` ORDER BY post_count DESC, t.name LIMIT $1`, limit)
}

func (s *TagStore) queryTags(ctx context.Context, query string, args ...any) ([]models.Tag, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, *t)
	}
	return tags, rows.Err()
}

// Count returns the total number of tags.
func (s *TagStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tags`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tags: %w", err)
	}
	return n, nil
}
