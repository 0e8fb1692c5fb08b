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

const (
	maxCategoryNameLen = 100
	maxCategoryDescLen = 500
)

// CategoryService manages categories. All mutations are admin-gated; a
// category cannot be deleted while posts still reference it.
type CategoryService struct {
	categories CategoryRepo
	posts      PostRepo
}

// NewCategoryService creates a CategoryService over the given repositories.
func NewCategoryService(categories CategoryRepo, posts PostRepo) *CategoryService {
	return &CategoryService{categories: categories, posts: posts}
}

// CategoryInput carries the caller-supplied category fields.
type CategoryInput struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	MetaDescription string `json:"meta_description"`
}

func (in *CategoryInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validation("name", "is required")
	}
	if utf8.RuneCountInString(in.Name) > maxCategoryNameLen {
		return validation("name", fmt.Sprintf("must be at most %d characters", maxCategoryNameLen))
	}
	if utf8.RuneCountInString(in.Description) > maxCategoryDescLen {
		return validation("description", fmt.Sprintf("must be at most %d characters", maxCategoryDescLen))
	}
	if utf8.RuneCountInString(in.MetaDescription) > maxMetaDescLen {
		return validation("meta_description", fmt.Sprintf("must be at most %d characters", maxMetaDescLen))
	}
	return nil
}

// Create adds a category with a slug derived from its name.
func (s *CategoryService) Create(ctx context.Context, actor access.Actor, in CategoryInput) (*models.Category, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	catSlug := slug.Generate(in.Name)
	if catSlug == "" {
		return nil, validation("name", "must contain at least one letter or digit")
	}

	created, err := s.categories.Create(ctx, &models.Category{
		Name:            in.Name,
		Slug:            catSlug,
		Description:     in.Description,
		MetaDescription: in.MetaDescription,
	})
	if err != nil {
		if isSlugTaken(err) {
			return nil, fmt.Errorf("category slug %q already exists: %w", catSlug, ErrConflict)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

// Update modifies a category, re-deriving the slug only when the name
// changed.
func (s *CategoryService) Update(ctx context.Context, actor access.Actor, id uuid.UUID, in CategoryInput) (*models.Category, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	cat, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	if cat == nil {
		return nil, ErrNotFound
	}

	if in.Name != cat.Name {
		newSlug := slug.Generate(in.Name)
		if newSlug == "" {
			return nil, validation("name", "must contain at least one letter or digit")
		}
		cat.Slug = newSlug
	}
	cat.Name = in.Name
	cat.Description = in.Description
	cat.MetaDescription = in.MetaDescription

	if err := s.categories.Update(ctx, cat); err != nil {
		if isSlugTaken(err) {
			return nil, fmt.Errorf("category slug %q already exists: %w", cat.Slug, ErrConflict)
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return cat, nil
}

// Delete removes a category. Referential guard, not a cascade: the delete
// is refused with ErrConflict while any post references the category.
func (s *CategoryService) Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	cat, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find category: %w", err)
	}
	if cat == nil {
		return ErrNotFound
	}

	n, err := s.posts.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("count category posts: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("category %q still has %d posts: %w", cat.Name, n, ErrConflict)
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// Get returns a category by id.
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	cat, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	if cat == nil {
		return nil, ErrNotFound
	}
	return cat, nil
}

// GetBySlug returns a category by slug.
func (s *CategoryService) GetBySlug(ctx context.Context, slugParam string) (*models.Category, error) {
	cat, err := s.categories.FindBySlug(ctx, slugParam)
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	if cat == nil {
		return nil, ErrNotFound
	}
	return cat, nil
}

// List returns all categories with their post counts, ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}
