// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"pressroom/internal/access"
	"pressroom/internal/models"
	"pressroom/internal/seo"
	"pressroom/internal/slug"
)

// Field limits for post input, enforced before any persistence.
const (
	maxTitleLen    = 200
	maxContentLen  = 100_000
	maxExcerptLen  = 500
	maxMetaDescLen = 160
	maxMetaKwLen   = 100
)

// maxSlugAttempts bounds the numeric-suffix retry when a generated slug
// collides: base, base-2 .. base-5, then ErrConflict.
const maxSlugAttempts = 5

// PostService implements the content lifecycle state machine:
// Draft → Published → {Draft, Archived}. Creation and all status
// transitions are an editorial gate (admin only); updates follow the
// owner-or-admin policy.
type PostService struct {
	posts      PostRepo
	categories CategoryRepo
	tags       TagRepo
}

// NewPostService creates a PostService over the given repositories.
func NewPostService(posts PostRepo, categories CategoryRepo, tags TagRepo) *PostService {
	return &PostService{posts: posts, categories: categories, tags: tags}
}

// PostInput carries the caller-supplied fields for creating or updating a
// post. Optional fields left empty are derived: slug from the title,
// excerpt from the content.
type PostInput struct {
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	Excerpt          string    `json:"excerpt"`
	CategoryID       uuid.UUID `json:"category_id"`
	MetaDescription  string    `json:"meta_description"`
	MetaKeywords     string    `json:"meta_keywords"`
	FeaturedImageURL string    `json:"featured_image_url"`
	IsFeatured       bool      `json:"is_featured"`
	TagNames         []string  `json:"tags"`
}

// validate checks field presence and limits. Runs before any repository
// call so invalid input is never persisted.
func (in *PostInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return validation("title", "is required")
	}
	if utf8.RuneCountInString(in.Title) > maxTitleLen {
		return validation("title", fmt.Sprintf("must be at most %d characters", maxTitleLen))
	}
	if strings.TrimSpace(in.Content) == "" {
		return validation("content", "is required")
	}
	if utf8.RuneCountInString(in.Content) > maxContentLen {
		return validation("content", fmt.Sprintf("must be at most %d characters", maxContentLen))
	}
	if utf8.RuneCountInString(in.Excerpt) > maxExcerptLen {
		return validation("excerpt", fmt.Sprintf("must be at most %d characters", maxExcerptLen))
	}
	if utf8.RuneCountInString(in.MetaDescription) > maxMetaDescLen {
		return validation("meta_description", fmt.Sprintf("must be at most %d characters", maxMetaDescLen))
	}
	if utf8.RuneCountInString(in.MetaKeywords) > maxMetaKwLen {
		return validation("meta_keywords", fmt.Sprintf("must be at most %d characters", maxMetaKwLen))
	}
	return nil
}

// Create adds a new post as a draft owned by the acting admin. The slug is
// derived from the title with a bounded numeric-suffix retry on collision;
// a missing excerpt is derived from the content.
func (s *PostService) Create(ctx context.Context, actor access.Actor, in PostInput) (*models.Post, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	cat, err := s.categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	if cat == nil {
		return nil, fmt.Errorf("category %s: %w", in.CategoryID, ErrNotFound)
	}

	excerpt := in.Excerpt
	if strings.TrimSpace(excerpt) == "" {
		excerpt = seo.Excerpt(in.Content, seo.DefaultExcerptLength)
	}

	post := &models.Post{
		Title:            in.Title,
		Content:          in.Content,
		Excerpt:          excerpt,
		Status:           models.PostStatusDraft,
		IsFeatured:       in.IsFeatured,
		CategoryID:       in.CategoryID,
		AuthorID:         actor.ID,
		MetaDescription:  in.MetaDescription,
		MetaKeywords:     in.MetaKeywords,
		FeaturedImageURL: in.FeaturedImageURL,
	}

	created, err := s.createWithSlug(ctx, post)
	if err != nil {
		return nil, err
	}

	if err := s.applyTags(ctx, created, in.TagNames); err != nil {
		return nil, err
	}
	return created, nil
}

// createWithSlug derives the slug from the title and inserts the post,
// retrying with base-2..base-N on unique-index collisions.
func (s *PostService) createWithSlug(ctx context.Context, post *models.Post) (*models.Post, error) {
	base := slug.Generate(post.Title)
	if base == "" {
		return nil, validation("title", "must contain at least one letter or digit")
	}

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		post.Slug = base
		if attempt > 1 {
			post.Slug = fmt.Sprintf("%s-%d", base, attempt)
		}
		created, err := s.posts.Create(ctx, post)
		if errors.Is(err, ErrSlugTaken) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create post: %w", err)
		}
		return created, nil
	}
	return nil, fmt.Errorf("slug %q exhausted after %d attempts: %w", base, maxSlugAttempts, ErrConflict)
}

// Update modifies a post's content and metadata. The slug is re-derived
// only when the title actually changed, keeping published URLs stable.
// Status is not touched here; transitions have their own operations.
func (s *PostService) Update(ctx context.Context, actor access.Actor, id uuid.UUID, in PostInput) (*models.Post, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if !access.CanMutate(actor, post.AuthorID) {
		return nil, ErrForbidden
	}

	cat, err := s.categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	if cat == nil {
		return nil, fmt.Errorf("category %s: %w", in.CategoryID, ErrNotFound)
	}

	titleChanged := in.Title != post.Title

	post.Title = in.Title
	post.Content = in.Content
	post.Excerpt = in.Excerpt
	if strings.TrimSpace(post.Excerpt) == "" {
		post.Excerpt = seo.Excerpt(in.Content, seo.DefaultExcerptLength)
	}
	post.CategoryID = in.CategoryID
	post.MetaDescription = in.MetaDescription
	post.MetaKeywords = in.MetaKeywords
	post.FeaturedImageURL = in.FeaturedImageURL
	post.IsFeatured = in.IsFeatured

	if titleChanged {
		if err := s.updateWithSlug(ctx, post); err != nil {
			return nil, err
		}
	} else {
		if err := s.posts.Update(ctx, post); err != nil {
			return nil, fmt.Errorf("update post: %w", err)
		}
	}

	if in.TagNames != nil {
		if err := s.applyTags(ctx, post, in.TagNames); err != nil {
			return nil, err
		}
	}
	return post, nil
}

// updateWithSlug re-derives the slug after a title change, with the same
// bounded collision retry as creation.
func (s *PostService) updateWithSlug(ctx context.Context, post *models.Post) error {
	base := slug.Generate(post.Title)
	if base == "" {
		return validation("title", "must contain at least one letter or digit")
	}

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		post.Slug = base
		if attempt > 1 {
			post.Slug = fmt.Sprintf("%s-%d", base, attempt)
		}
		err := s.posts.Update(ctx, post)
		if errors.Is(err, ErrSlugTaken) {
			continue
		}
		if err != nil {
			return fmt.Errorf("update post: %w", err)
		}
		return nil
	}
	return fmt.Errorf("slug %q exhausted after %d attempts: %w", base, maxSlugAttempts, ErrConflict)
}

// applyTags resolves tag names to ids, creating missing tags, and replaces
// the post's tag set.
func (s *PostService) applyTags(ctx context.Context, post *models.Post, names []string) error {
	tagIDs := make([]uuid.UUID, 0, len(names))
	seen := make(map[string]bool)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true

		tag, err := s.tags.FindByName(ctx, name)
		if err != nil {
			return fmt.Errorf("find tag: %w", err)
		}
		if tag == nil {
			tag, err = s.tags.Create(ctx, &models.Tag{Name: name, Slug: slug.Generate(name)})
			if err != nil {
				return fmt.Errorf("create tag: %w", err)
			}
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	if err := s.posts.SetTags(ctx, post.ID, tagIDs); err != nil {
		return fmt.Errorf("set post tags: %w", err)
	}
	return nil
}

// Publish transitions a post to published. The first publish stamps
// published_at; repeated calls are a no-op success and never move the
// original timestamp.
func (s *PostService) Publish(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.posts.Publish(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("publish post: %w", err)
	}
	return nil
}

// Unpublish returns a published post to draft. The published_at timestamp
// is retained so the first-publish time survives re-drafting.
func (s *PostService) Unpublish(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.posts.SetStatus(ctx, id, models.PostStatusDraft); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("unpublish post: %w", err)
	}
	return nil
}

// Archive moves a post to the archived state.
func (s *PostService) Archive(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.posts.SetStatus(ctx, id, models.PostStatusArchived); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("archive post: %w", err)
	}
	return nil
}

// Delete permanently removes a post and, through the store, its comments.
func (s *PostService) Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// Get returns a post by id regardless of status. Intended for admin and
// owner tooling; public reads go through GetVisibleBySlug.
func (s *PostService) Get(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// GetVisibleBySlug returns a post by slug through the public visibility
// rule: published status and a publish date that is not in the future.
func (s *PostService) GetVisibleBySlug(ctx context.Context, slugParam string) (*models.Post, error) {
	post, err := s.posts.FindVisibleBySlug(ctx, slugParam)
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// ListVisible returns all publicly visible posts, newest first.
func (s *PostService) ListVisible(ctx context.Context) ([]models.Post, error) {
	return s.posts.ListVisible(ctx)
}

// ListAll returns every post regardless of status, for the admin listing.
func (s *PostService) ListAll(ctx context.Context, actor access.Actor) ([]models.Post, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.posts.ListAll(ctx)
}

// ListFeatured returns visible posts flagged as featured.
func (s *PostService) ListFeatured(ctx context.Context) ([]models.Post, error) {
	return s.posts.ListFeatured(ctx)
}

// ListByCategory returns visible posts in a category.
func (s *PostService) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Post, error) {
	return s.posts.ListByCategory(ctx, categoryID)
}

// ListByTag returns visible posts carrying a tag.
func (s *PostService) ListByTag(ctx context.Context, tagID uuid.UUID) ([]models.Post, error) {
	return s.posts.ListByTag(ctx, tagID)
}

// Search finds visible posts matching the term across title, content,
// excerpt, category, and tags. An empty term returns all visible posts.
func (s *PostService) Search(ctx context.Context, term string) ([]models.Post, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.posts.ListVisible(ctx)
	}
	return s.posts.Search(ctx, term)
}

// IncrementViewCount bumps the monotonic view counter for a post.
func (s *PostService) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	if err := s.posts.IncrementViewCount(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}
