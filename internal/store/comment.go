// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pressroom/internal/models"
)

// CommentStore handles all comment-related database operations.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// commentColumns joins the author so registered comments carry a display
// name. Guest comments resolve their name from the guest fields instead.
const commentColumns = `
	SELECT c.id, c.post_id, c.content, c.status, c.user_id,
	       c.guest_name, c.guest_email, c.created_at, c.updated_at,
	       u.username, u.first_name, u.last_name
	FROM comments c
	LEFT JOIN users u ON u.id = c.user_id`

func scanComment(row interface{ Scan(...any) error }) (*models.Comment, error) {
	c := &models.Comment{}
	var username, firstName, lastName sql.NullString
	err := row.Scan(
		&c.ID, &c.PostID, &c.Content, &c.Status, &c.UserID,
		&c.GuestName, &c.GuestEmail, &c.CreatedAt, &c.UpdatedAt,
		&username, &firstName, &lastName,
	)
	if err != nil {
		return nil, err
	}
	if c.UserID != nil {
		author := models.User{
			Username:  username.String,
			FirstName: firstName.String,
			LastName:  lastName.String,
		}
		c.AuthorName = author.DisplayName()
	} else {
		c.AuthorName = c.GuestName
	}
	return c, nil
}

func (s *CommentStore) queryComments(ctx context.Context, query string, args ...any) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

// FindByID retrieves a comment by its UUID. Returns nil if not found.
func (s *CommentStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	c, err := scanComment(s.db.QueryRowContext(ctx, commentColumns+" WHERE c.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return c, nil
}

// Create inserts a new comment and returns it with generated fields.
func (s *CommentStore) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	result := *c
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO comments (post_id, content, status, user_id, guest_name, guest_email)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, c.PostID, c.Content, c.Status, c.UserID, c.GuestName, c.GuestEmail,
	).Scan(&result.ID, &result.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &result, nil
}

// UpdateContent replaces a comment's text, leaving its status alone.
func (s *CommentStore) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE comments SET content = $1, updated_at = NOW() WHERE id = $2
	`, content, id)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return requireRow(res, "update comment")
}

// Delete removes a comment.
func (s *CommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return requireRow(res, "delete comment")
}

// SetStatus moves a comment to the given moderation state.
func (s *CommentStore) SetStatus(ctx context.Context, id uuid.UUID, status models.CommentStatus) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE comments SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("set comment status: %w", err)
	}
	return requireRow(res, "set comment status")
}

// BulkSetStatus applies the status to every existing comment in ids and
// reports the number of rows touched. Unknown ids are skipped.
func (s *CommentStore) BulkSetStatus(ctx context.Context, ids []uuid.UUID, status models.CommentStatus) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)+1)
	args = append(args, status)
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE comments SET status = $1, updated_at = NOW() WHERE id IN (`+strings.Join(placeholders, ", ")+`)`,
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("bulk set comment status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk set comment status rows: %w", err)
	}
	return int(n), nil
}

// ListApprovedByPost returns the approved comments on a post, oldest
// first, matching reading order.
func (s *CommentStore) ListApprovedByPost(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	return s.queryComments(ctx, commentColumns+`
		WHERE c.post_id = $1 AND c.status = 'approved'
		ORDER BY c.created_at ASC`, postID)
}

// ListPending returns the moderation queue, oldest first.
func (s *CommentStore) ListPending(ctx context.Context) ([]models.Comment, error) {
	return s.queryComments(ctx, commentColumns+`
		WHERE c.status = 'pending'
		ORDER BY c.created_at ASC`)
}

// ListAll returns every comment, newest first.
func (s *CommentStore) ListAll(ctx context.Context) ([]models.Comment, error) {
	return s.queryComments(ctx, commentColumns+` ORDER BY c.created_at DESC`)
}

// Recent returns the newest comments in any state.
func (s *CommentStore) Recent(ctx context.Context, limit int) ([]models.Comment, error) {
	return s.queryComments(ctx, commentColumns+` ORDER BY c.created_at DESC LIMIT $1`, limit)
}

// CountAll returns the total number of comments.
func (s *CommentStore) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return n, nil
}

// CountByStatus returns the number of comments in a moderation state.
func (s *CommentStore) CountByStatus(ctx context.Context, status models.CommentStatus) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("count comments by status: %w", err)
	}
	return n, nil
}

// CountCreatedSince returns the number of comments created at or after
// the cutoff.
func (s *CommentStore) CountCreatedSince(ctx context.Context, cutoff time.Time) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE created_at >= $1`, cutoff).Scan(&n); err != nil {
		return 0, fmt.Errorf("count recent comments: %w", err)
	}
	return n, nil
}
