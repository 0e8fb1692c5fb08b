// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the blog repository contracts on PostgreSQL
// through database/sql. Lookups return (nil, nil) when the row does not
// exist; writes affecting zero rows return blog.ErrNotFound; writes that
// hit a slug unique index return blog.ErrSlugTaken.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"pressroom/internal/blog"
	"pressroom/internal/models"
)

// uniqueViolation is the PostgreSQL error code for a unique index hit.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// PostStore handles all post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// postColumns is the shared select list. Every post read joins the
// category and author so listings carry display names without extra
// round trips.
const postColumns = `
	SELECT p.id, p.title, p.slug, p.content, p.excerpt, p.status, p.is_featured,
	       p.category_id, p.author_id, p.meta_description, p.meta_keywords,
	       p.featured_image_url, p.view_count, p.published_at, p.created_at, p.updated_at,
	       c.name, u.username, u.first_name, u.last_name
	FROM posts p
	JOIN categories c ON c.id = p.category_id
	JOIN users u ON u.id = p.author_id`

// visibleWhere is the public visibility predicate: published status and a
// publish date that has already passed. Scheduled posts stay hidden.
const visibleWhere = `p.status = 'published' AND p.published_at IS NOT NULL AND p.published_at <= NOW()`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	author := models.User{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Status, &p.IsFeatured,
		&p.CategoryID, &p.AuthorID, &p.MetaDescription, &p.MetaKeywords,
		&p.FeaturedImageURL, &p.ViewCount, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName, &author.Username, &author.FirstName, &author.LastName,
	)
	if err != nil {
		return nil, err
	}
	p.AuthorName = author.DisplayName()
	return p, nil
}

func (s *PostStore) queryPosts(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (s *PostStore) findOne(ctx context.Context, where string, args ...any) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRowContext(ctx, postColumns+" WHERE "+where, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if err := s.loadTags(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// loadTags attaches the tag set to a single post. List queries skip tags;
// only detail reads carry them.
func (s *PostStore) loadTags(ctx context.Context, p *models.Post) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.slug, t.created_at
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = $1
		ORDER BY t.name
	`, p.ID)
	if err != nil {
		return fmt.Errorf("load post tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return fmt.Errorf("scan post tag: %w", err)
		}
		p.Tags = append(p.Tags, t)
	}
	return rows.Err()
}

// FindByID retrieves a post by its UUID regardless of status. Returns nil
// if not found.
func (s *PostStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.findOne(ctx, "p.id = $1", id)
}

// FindBySlug retrieves a post by slug regardless of status.
func (s *PostStore) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return s.findOne(ctx, "p.slug = $1", slug)
}

// FindVisibleBySlug retrieves a publicly visible post by slug. Used for
// the public detail page.
func (s *PostStore) FindVisibleBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return s.findOne(ctx, "p.slug = $1 AND "+visibleWhere, slug)
}

// Create inserts a new post and returns it with generated fields filled in.
func (s *PostStore) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	result := *p
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (title, slug, content, excerpt, status, is_featured,
		                   category_id, author_id, meta_description, meta_keywords,
		                   featured_image_url, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, view_count, created_at, updated_at
	`, p.Title, p.Slug, p.Content, p.Excerpt, p.Status, p.IsFeatured,
		p.CategoryID, p.AuthorID, p.MetaDescription, p.MetaKeywords,
		p.FeaturedImageURL, p.PublishedAt,
	).Scan(&result.ID, &result.ViewCount, &result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, blog.ErrSlugTaken
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &result, nil
}

// Update modifies an existing post. Status and view count are managed by
// their own statements and are not touched here.
func (s *PostStore) Update(ctx context.Context, p *models.Post) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE posts SET
			title = $1, slug = $2, content = $3, excerpt = $4, is_featured = $5,
			category_id = $6, meta_description = $7, meta_keywords = $8,
			featured_image_url = $9, updated_at = NOW()
		WHERE id = $10
	`, p.Title, p.Slug, p.Content, p.Excerpt, p.IsFeatured,
		p.CategoryID, p.MetaDescription, p.MetaKeywords,
		p.FeaturedImageURL, p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return blog.ErrSlugTaken
		}
		return fmt.Errorf("update post: %w", err)
	}
	return requireRow(res, "update post")
}

// Delete removes a post. Its comments and tag links go with it via
// ON DELETE CASCADE.
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return requireRow(res, "delete post")
}

// Publish transitions a post to published in a single statement. The
// COALESCE keeps the original publish timestamp across republishes, so the
// first publish is the only one that stamps it.
func (s *PostStore) Publish(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE posts SET
			status = 'published',
			published_at = COALESCE(published_at, NOW()),
			updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("publish post: %w", err)
	}
	return requireRow(res, "publish post")
}

// SetStatus moves a post to the given lifecycle state without touching
// published_at.
func (s *PostStore) SetStatus(ctx context.Context, id uuid.UUID, status models.PostStatus) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE posts SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("set post status: %w", err)
	}
	return requireRow(res, "set post status")
}

// IncrementViewCount bumps the view counter atomically.
func (s *PostStore) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE posts SET view_count = view_count + 1 WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return requireRow(res, "increment view count")
}

// SetTags replaces the post's tag set inside a transaction.
func (s *PostStore) SetTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set tags: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, postID, tagID); err != nil {
			return fmt.Errorf("insert post tag: %w", err)
		}
	}
	return tx.Commit()
}

// ListAll returns every post regardless of status, newest first.
func (s *PostStore) ListAll(ctx context.Context) ([]models.Post, error) {
	return s.queryPosts(ctx, postColumns+` ORDER BY p.created_at DESC`)
}

// ListVisible returns publicly visible posts, newest publish first.
func (s *PostStore) ListVisible(ctx context.Context) ([]models.Post, error) {
	return s.queryPosts(ctx, postColumns+` WHERE `+visibleWhere+` ORDER BY p.published_at DESC`)
}

// ListFeatured returns visible posts flagged as featured.
func (s *PostStore) ListFeatured(ctx context.Context) ([]models.Post, error) {
	return s.queryPosts(ctx, postColumns+` WHERE `+visibleWhere+` AND p.is_featured ORDER BY p.published_at DESC`)
}

// ListByCategory returns visible posts in the given category.
func (s *PostStore) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Post, error) {
	return s.queryPosts(ctx, postColumns+` WHERE `+visibleWhere+` AND p.category_id = $1 ORDER BY p.published_at DESC`, categoryID)
}

// ListByTag returns visible posts carrying the given tag.
func (s *PostStore) ListByTag(ctx context.Context, tagID uuid.UUID) ([]models.Post, error) {
	return s.queryPosts(ctx, postColumns+`
		JOIN post_tags pt ON pt.post_id = p.id
		WHERE `+visibleWhere+` AND pt.tag_id = $1
		ORDER BY p.published_at DESC`, tagID)
}

// Search finds visible posts matching the term in the title, body,
// excerpt, category name, or any tag name.
func (s *PostStore) Search(ctx context.Context, term string) ([]models.Post, error) {
	pattern := "%" + strings.ReplaceAll(strings.ReplaceAll(term, "%", `\%`), "_", `\_`) + "%"
	return s.queryPosts(ctx, postColumns+`
		WHERE `+visibleWhere+` AND (
			p.title ILIKE $1 OR p.content ILIKE $1 OR p.excerpt ILIKE $1
			OR c.name ILIKE $1
			OR EXISTS (
				SELECT 1 FROM post_tags pt
				JOIN tags t ON t.id = pt.tag_id
				WHERE pt.post_id = p.id AND t.name ILIKE $1
			)
		)
		ORDER BY p.published_at DESC`, pattern)
}

// Recent returns the newest visible posts.
func (s *PostStore) Recent(ctx context.Context, limit int) ([]models.Post, error) {
	return s.queryPosts(ctx, postColumns+` WHERE `+visibleWhere+` ORDER BY p.published_at DESC LIMIT $1`, limit)
}

// Popular returns visible posts ordered by view count.
func (s *PostStore) Popular(ctx context.Context, limit int) ([]models.Post, error) {
	return s.queryPosts(ctx, postColumns+` WHERE `+visibleWhere+` ORDER BY p.view_count DESC, p.published_at DESC LIMIT $1`, limit)
}

// CountAll returns the total number of posts.
func (s *PostStore) CountAll(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM posts`)
}

// CountByStatus returns the number of posts in a lifecycle state.
func (s *PostStore) CountByStatus(ctx context.Context, status models.PostStatus) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM posts WHERE status = $1`, status)
}

// CountByCategory returns the number of posts referencing a category,
// in any status. Used by the category delete guard.
func (s *PostStore) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM posts WHERE category_id = $1`, categoryID)
}

// CountCreatedSince returns the number of posts created at or after the
// cutoff.
func (s *PostStore) CountCreatedSince(ctx context.Context, cutoff time.Time) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM posts WHERE created_at >= $1`, cutoff)
}

func (s *PostStore) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

// PublishedCountByCategory groups published posts by category name,
// busiest category first.
func (s *PostStore) PublishedCountByCategory(ctx context.Context) ([]blog.CategoryCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.name, COUNT(*)
		FROM posts p
		JOIN categories c ON c.id = p.category_id
		WHERE p.status = 'published'
		GROUP BY c.name
		ORDER BY COUNT(*) DESC, c.name
	`)
	if err != nil {
		return nil, fmt.Errorf("count posts by category: %w", err)
	}
	defer rows.Close()

	var counts []blog.CategoryCount
	for rows.Next() {
		var c blog.CategoryCount
		if err := rows.Scan(&c.CategoryName, &c.PostCount); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// PublishedCountByMonth groups published posts into YYYY-MM buckets,
// newest month first.
func (s *PostStore) PublishedCountByMonth(ctx context.Context) ([]blog.MonthCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT TO_CHAR(published_at, 'YYYY-MM') AS month, COUNT(*)
		FROM posts
		WHERE status = 'published' AND published_at IS NOT NULL
		GROUP BY month
		ORDER BY month DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("count posts by month: %w", err)
	}
	defer rows.Close()

	var counts []blog.MonthCount
	for rows.Next() {
		var m blog.MonthCount
		if err := rows.Scan(&m.Month, &m.PostCount); err != nil {
			return nil, fmt.Errorf("scan month count: %w", err)
		}
		counts = append(counts, m)
	}
	return counts, rows.Err()
}

// requireRow converts a zero-row write into blog.ErrNotFound.
func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return blog.ErrNotFound
	}
	return nil
}
