// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"pressroom/internal/access"
	"pressroom/internal/models"
	"pressroom/internal/slug"
)

const maxTagNameLen = 50

// TagService manages tags. Mutations are admin-gated; BulkCreate is the
// get-or-create path used when tagging posts.
type TagService struct {
	tags TagRepo
}

// NewTagService creates a TagService over the given repository.
func NewTagService(tags TagRepo) *TagService {
	return &TagService{tags: tags}
}

func validateTagName(name string) error {
	if strings.TrimSpace(name) == "" {
		return validation("name", "is required")
	}
	if utf8.RuneCountInString(name) > maxTagNameLen {
		return validation("name", fmt.Sprintf("must be at most %d characters", maxTagNameLen))
	}
	return nil
}

// Create adds a tag with a slug derived from its name.
func (s *TagService) Create(ctx context.Context, actor access.Actor, name string) (*models.Tag, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validateTagName(name); err != nil {
		return nil, err
	}

	tagSlug := slug.Generate(name)
	if tagSlug == "" {
		return nil, validation("name", "must contain at least one letter or digit")
	}

	created, err := s.tags.Create(ctx, &models.Tag{Name: name, Slug: tagSlug})
	if err != nil {
		if isSlugTaken(err) {
			return nil, fmt.Errorf("tag slug %q already exists: %w", tagSlug, ErrConflict)
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return created, nil
}

// BulkCreate resolves a list of tag names, creating any that do not exist
// yet, and returns the full set in input order. Existing tags are reused,
// not duplicated.
func (s *TagService) BulkCreate(ctx context.Context, actor access.Actor, names []string) ([]models.Tag, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	var result []models.Tag
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := validateTagName(name); err != nil {
			return nil, err
		}

		existing, err := s.tags.FindByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("find tag: %w", err)
		}
		if existing != nil {
			result = append(result, *existing)
			continue
		}

		created, err := s.tags.Create(ctx, &models.Tag{Name: name, Slug: slug.Generate(name)})
		if err != nil {
			return nil, fmt.Errorf("create tag %q: %w", name, err)
		}
		result = append(result, *created)
	}
	return result, nil
}

// Update renames a tag, re-deriving the slug only when the name changed.
func (s *TagService) Update(ctx context.Context, actor access.Actor, id uuid.UUID, name string) (*models.Tag, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validateTagName(name); err != nil {
		return nil, err
	}

	tag, err := s.tags.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find tag: %w", err)
	}
	if tag == nil {
		return nil, ErrNotFound
	}

	if name != tag.Name {
		newSlug := slug.Generate(name)
		if newSlug == "" {
			return nil, validation("name", "must contain at least one letter or digit")
		}
		tag.Slug = newSlug
	}
	tag.Name = name

	if err := s.tags.Update(ctx, tag); err != nil {
		if isSlugTaken(err) {
			return nil, fmt.Errorf("tag slug %q already exists: %w", tag.Slug, ErrConflict)
		}
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return tag, nil
}

// Delete removes a tag. Post associations are cleaned up by the store.
func (s *TagService) Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	tag, err := s.tags.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find tag: %w", err)
	}
	if tag == nil {
		return ErrNotFound
	}

	if err := s.tags.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

// Get returns a tag by id.
func (s *TagService) Get(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	tag, err := s.tags.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find tag: %w", err)
	}
	if tag == nil {
		return nil, ErrNotFound
	}
	return tag, nil
}

// GetBySlug returns a tag by slug.
func (s *TagService) GetBySlug(ctx context.Context, slugParam string) (*models.Tag, error) {
	tag, err := s.tags.FindBySlug(ctx, slugParam)
	if err != nil {
		return nil, fmt.Errorf("find tag by slug: %w", err)
	}
	if tag == nil {
		return nil, ErrNotFound
	}
	return tag, nil
}

// List returns all tags ordered by name.
func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	return s.tags.List(ctx)
}

// Popular returns the tags attached to the most visible posts.
func (s *TagService) Popular(ctx context.Context, limit int) ([]models.Tag, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.tags.Popular(ctx, limit)
}
