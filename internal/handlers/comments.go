// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"pressroom/internal/access"
	"pressroom/internal/blog"
	"pressroom/internal/middleware"
)

// Comments groups the public comment endpoints and the admin moderation
// queue.
type Comments struct {
	comments *blog.CommentService
	posts    *blog.PostService
}

// NewComments creates the comments handler group.
func NewComments(comments *blog.CommentService, posts *blog.PostService) *Comments {
	return &Comments{comments: comments, posts: posts}
}

// ListByPost returns the approved comments on a visible post, oldest
// first.
func (h *Comments) ListByPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetVisibleBySlug(r.Context(), urlSlug(r))
	if err != nil {
		respondServiceError(w, r, access.Anonymous(), err)
		return
	}

	comments, err := h.comments.ListApprovedByPost(r.Context(), post.ID)
	if err != nil {
		respondServiceError(w, r, access.Anonymous(), err)
		return
	}
	respond(w, r, http.StatusOK, comments)
}

// Create submits a comment on a visible post. Authenticated callers
// comment under their account; anonymous callers must supply guest
// details. Either way the comment starts in the moderation queue.
func (h *Comments) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	post, err := h.posts.GetVisibleBySlug(r.Context(), urlSlug(r))
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}

	var in blog.CommentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.PostID = post.ID

	comment, err := h.comments.Create(r.Context(), actor, in)
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusCreated, comment)
}

type editCommentRequest struct {
	Content string `json:"content"`
}

// Edit rewrites a comment's text. Owner or admin only; the moderation
// status is untouched.
func (h *Comments) Edit(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	id, ok := urlUUID(r, "id")
	if !ok {
		respondErrorMsg(w, r, http.StatusBadRequest, "invalid comment id")
		return
	}

	var req editCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.comments.Edit(r.Context(), actor, id, req.Content)
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusOK, comment)
}

// Delete removes a comment. Owner or admin only.
func (h *Comments) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	id, ok := urlUUID(r, "id")
	if !ok {
		respondErrorMsg(w, r, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.comments.Delete(r.Context(), actor, id); err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Moderation (admin) ---

// Pending returns the moderation queue, oldest first.
func (h *Comments) Pending(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	comments, err := h.comments.ListPending(r.Context(), actor)
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusOK, comments)
}

// AdminList returns every comment regardless of status, newest first.
func (h *Comments) AdminList(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	comments, err := h.comments.ListAll(r.Context(), actor)
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusOK, comments)
}

// Approve marks a comment approved. Repeatable and reversible.
func (h *Comments) Approve(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.comments.Approve)
}

// Reject marks a comment rejected. Repeatable and reversible.
func (h *Comments) Reject(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.comments.Reject)
}

func (h *Comments) moderate(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, actor access.Actor, id uuid.UUID) error) {
	actor := middleware.ActorFromContext(r.Context())

	id, ok := urlUUID(r, "id")
	if !ok {
		respondErrorMsg(w, r, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := op(r.Context(), actor, id); err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

type bulkModerateRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type bulkModerateResponse struct {
	Updated int `json:"updated"`
}

// BulkApprove approves every listed comment that exists and reports the
// count actually updated.
func (h *Comments) BulkApprove(w http.ResponseWriter, r *http.Request) {
	h.bulkModerate(w, r, h.comments.BulkApprove)
}

// BulkReject rejects every listed comment that exists and reports the
// count actually updated.
func (h *Comments) BulkReject(w http.ResponseWriter, r *http.Request) {
	h.bulkModerate(w, r, h.comments.BulkReject)
}

func (h *Comments) bulkModerate(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, actor access.Actor, ids []uuid.UUID) (int, error)) {
	actor := middleware.ActorFromContext(r.Context())

	var req bulkModerateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	n, err := op(r.Context(), actor, req.IDs)
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusOK, bulkModerateResponse{Updated: n})
}
