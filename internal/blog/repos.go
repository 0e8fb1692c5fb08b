// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pressroom/internal/models"
)

// Repository contracts consumed by the services. The Postgres
// implementations live in internal/store. Lookup methods return (nil, nil)
// when the entity does not exist; write methods affecting zero rows return
// ErrNotFound; writes violating the slug unique index return ErrSlugTaken.

// PostRepo is the post persistence contract. "Visible" methods apply the
// public visibility rule (published status and publish date not in the
// future) inside the query, so scheduled posts never leak into public
// listings.
type PostRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	FindBySlug(ctx context.Context, slug string) (*models.Post, error)
	FindVisibleBySlug(ctx context.Context, slug string) (*models.Post, error)

	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	Update(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Publish atomically marks the post published, assigning published_at
	// only if it was never set before.
	Publish(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status models.PostStatus) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	SetTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error

	ListAll(ctx context.Context) ([]models.Post, error)
	ListVisible(ctx context.Context) ([]models.Post, error)
	ListFeatured(ctx context.Context) ([]models.Post, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Post, error)
	ListByTag(ctx context.Context, tagID uuid.UUID) ([]models.Post, error)
	Search(ctx context.Context, term string) ([]models.Post, error)
	Recent(ctx context.Context, limit int) ([]models.Post, error)
	Popular(ctx context.Context, limit int) ([]models.Post, error)

	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status models.PostStatus) (int, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error)
	CountCreatedSince(ctx context.Context, cutoff time.Time) (int, error)
	PublishedCountByCategory(ctx context.Context) ([]CategoryCount, error)
	PublishedCountByMonth(ctx context.Context) ([]MonthCount, error)
}

// CommentRepo is the comment persistence contract.
type CommentRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) error
	Delete(ctx context.Context, id uuid.UUID) error

	SetStatus(ctx context.Context, id uuid.UUID, status models.CommentStatus) error
	// BulkSetStatus applies the status to every existing comment in ids and
	// reports how many rows it actually touched; missing ids are skipped.
	BulkSetStatus(ctx context.Context, ids []uuid.UUID, status models.CommentStatus) (int, error)

	ListApprovedByPost(ctx context.Context, postID uuid.UUID) ([]models.Comment, error)
	ListPending(ctx context.Context) ([]models.Comment, error)
	ListAll(ctx context.Context) ([]models.Comment, error)
	Recent(ctx context.Context, limit int) ([]models.Comment, error)

	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status models.CommentStatus) (int, error)
	CountCreatedSince(ctx context.Context, cutoff time.Time) (int, error)
}

// CategoryRepo is the category persistence contract.
type CategoryRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]models.Category, error)
	Count(ctx context.Context) (int, error)
}

// TagRepo is the tag persistence contract.
type TagRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tag, error)
	FindBySlug(ctx context.Context, slug string) (*models.Tag, error)
	FindByName(ctx context.Context, name string) (*models.Tag, error)
	Create(ctx context.Context, t *models.Tag) (*models.Tag, error)
	Update(ctx context.Context, t *models.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]models.Tag, error)
	Popular(ctx context.Context, limit int) ([]models.Tag, error)
	Count(ctx context.Context) (int, error)
}

// UserRepo is the slice of user persistence the blog core needs: actor
// lookup for the auth edge and registration counts for the dashboard.
type UserRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	Count(ctx context.Context) (int, error)
	CountCreatedSince(ctx context.Context, cutoff time.Time) (int, error)
}

// ImageRepo is the uploaded-image metadata contract. The binaries live in
// the storage backend, keyed by Image.StorageKey.
type ImageRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Image, error)
	Create(ctx context.Context, img *models.Image) (*models.Image, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Image, error)
}

// CategoryCount is a published-post count grouped by category name.
type CategoryCount struct {
	CategoryName string `json:"category_name"`
	PostCount    int    `json:"post_count"`
}

// MonthCount is a published-post count grouped by a zero-padded
// "YYYY-MM" bucket.
type MonthCount struct {
	Month     string `json:"month"`
	PostCount int    `json:"post_count"`
}
