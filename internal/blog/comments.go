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
	"github.com/microcosm-cc/bluemonday"

	"pressroom/internal/access"
	"pressroom/internal/models"
)

const (
	maxCommentLen    = 10_000
	maxGuestFieldLen = 100
)

// commentPolicy sanitizes user-generated comment markup before it is
// stored. Post bodies are trusted editorial input and are not run through
// this policy.
var commentPolicy = bluemonday.UGCPolicy()

// CommentService implements the moderation engine. Comments start pending
// for every creator, admins included; approval and rejection are reversible
// admin decisions; edit and delete follow the ownership policy, with guest
// comments mutable only by admins.
type CommentService struct {
	comments CommentRepo
	posts    PostRepo
}

// NewCommentService creates a CommentService over the given repositories.
func NewCommentService(comments CommentRepo, posts PostRepo) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// CommentInput carries the fields for creating a comment. Guest fields are
// required for anonymous actors and rejected for authenticated ones.
type CommentInput struct {
	PostID     uuid.UUID `json:"post_id"`
	Content    string    `json:"content"`
	GuestName  string    `json:"guest_name"`
	GuestEmail string    `json:"guest_email"`
}

// validateContent checks comment text presence and length.
func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return validation("content", "is required")
	}
	if utf8.RuneCountInString(content) > maxCommentLen {
		return validation("content", fmt.Sprintf("must be at most %d characters", maxCommentLen))
	}
	return nil
}

// Create adds a comment to a post. Comment creation is the one
// public-create exception to the mutation policy: anonymous actors may
// comment by supplying a guest name and email. Every new comment starts
// pending regardless of the creator's privileges.
func (s *CommentService) Create(ctx context.Context, actor access.Actor, in CommentInput) (*models.Comment, error) {
	if err := validateContent(in.Content); err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, in.PostID)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("post %s: %w", in.PostID, ErrNotFound)
	}

	comment := &models.Comment{
		PostID:  in.PostID,
		Content: commentPolicy.Sanitize(strings.TrimSpace(in.Content)),
		Status:  models.CommentStatusPending,
	}

	if actor.Anonymous {
		name := strings.TrimSpace(in.GuestName)
		email := strings.TrimSpace(in.GuestEmail)
		if name == "" {
			return nil, validation("guest_name", "is required for anonymous comments")
		}
		if email == "" {
			return nil, validation("guest_email", "is required for anonymous comments")
		}
		if utf8.RuneCountInString(name) > maxGuestFieldLen {
			return nil, validation("guest_name", fmt.Sprintf("must be at most %d characters", maxGuestFieldLen))
		}
		if utf8.RuneCountInString(email) > maxGuestFieldLen {
			return nil, validation("guest_email", fmt.Sprintf("must be at most %d characters", maxGuestFieldLen))
		}
		comment.GuestName = name
		comment.GuestEmail = email
	} else {
		userID := actor.ID
		comment.UserID = &userID
	}

	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return created, nil
}

// canMutateComment applies the ownership rule: registered authors own
// their comments; guest comments are ownerless and admin-only.
func canMutateComment(actor access.Actor, c *models.Comment) bool {
	if c.UserID == nil {
		return access.CanMutateOwnerless(actor)
	}
	return access.CanMutate(actor, *c.UserID)
}

// Edit replaces a comment's content. The approval state is deliberately
// untouched: an edit does not re-enter moderation.
func (s *CommentService) Edit(ctx context.Context, actor access.Actor, id uuid.UUID, content string) (*models.Comment, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	if !canMutateComment(actor, comment) {
		return nil, ErrForbidden
	}

	sanitized := commentPolicy.Sanitize(strings.TrimSpace(content))
	if err := s.comments.UpdateContent(ctx, id, sanitized); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	comment.Content = sanitized
	return comment, nil
}

// Delete removes a comment under the same ownership rule as Edit.
func (s *CommentService) Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find comment: %w", err)
	}
	if comment == nil {
		return ErrNotFound
	}
	if !canMutateComment(actor, comment) {
		return ErrForbidden
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// Approve marks a comment approved. Approving an already-approved comment
// is a no-op success; a rejected comment can be re-approved.
func (s *CommentService) Approve(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	return s.setStatus(ctx, actor, id, models.CommentStatusApproved)
}

// Reject marks a comment rejected. Reversible, like Approve.
func (s *CommentService) Reject(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	return s.setStatus(ctx, actor, id, models.CommentStatusRejected)
}

func (s *CommentService) setStatus(ctx context.Context, actor access.Actor, id uuid.UUID, status models.CommentStatus) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.comments.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("set comment status: %w", err)
	}
	return nil
}

// BulkApprove approves every existing comment in ids and returns how many
// were actually mutated. Unknown ids are skipped, not errored: the batch
// reports partial success instead of failing.
func (s *CommentService) BulkApprove(ctx context.Context, actor access.Actor, ids []uuid.UUID) (int, error) {
	return s.bulkSetStatus(ctx, actor, ids, models.CommentStatusApproved)
}

// BulkReject is the rejection counterpart of BulkApprove.
func (s *CommentService) BulkReject(ctx context.Context, actor access.Actor, ids []uuid.UUID) (int, error) {
	return s.bulkSetStatus(ctx, actor, ids, models.CommentStatusRejected)
}

func (s *CommentService) bulkSetStatus(ctx context.Context, actor access.Actor, ids []uuid.UUID, status models.CommentStatus) (int, error) {
	if !actor.IsAdmin() {
		return 0, ErrForbidden
	}
	if len(ids) == 0 {
		return 0, validation("ids", "at least one comment id is required")
	}
	n, err := s.comments.BulkSetStatus(ctx, ids, status)
	if err != nil {
		return 0, fmt.Errorf("bulk set comment status: %w", err)
	}
	return n, nil
}

// Get returns a single comment by id.
func (s *CommentService) Get(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	return comment, nil
}

// ListApprovedByPost is the public read path: only approved comments for
// the post are exposed.
func (s *CommentService) ListApprovedByPost(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	return s.comments.ListApprovedByPost(ctx, postID)
}

// ListPending returns the moderation queue.
func (s *CommentService) ListPending(ctx context.Context, actor access.Actor) ([]models.Comment, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.comments.ListPending(ctx)
}

// ListAll returns every comment in every state.
func (s *CommentService) ListAll(ctx context.Context, actor access.Actor) ([]models.Comment, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.comments.ListAll(ctx)
}
