// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pressroom/internal/access"
	"pressroom/internal/blog"
	"pressroom/internal/cache"
	"pressroom/internal/middleware"
)

// Posts groups the public and admin post endpoints. Public reads go
// through the Valkey response cache; every mutation flushes it.
type Posts struct {
	posts      *blog.PostService
	categories *blog.CategoryService
	tags       *blog.TagService
	respCache  *cache.ResponseCache
}

// NewPosts creates the posts handler group. respCache may be nil when
// Valkey is not configured; caching is then skipped.
func NewPosts(posts *blog.PostService, categories *blog.CategoryService, tags *blog.TagService, respCache *cache.ResponseCache) *Posts {
	return &Posts{posts: posts, categories: categories, tags: tags, respCache: respCache}
}

// serveCached writes a cached JSON body if present and reports whether it
// did.
func serveCached(w http.ResponseWriter, r *http.Request, rc *cache.ResponseCache, key string) bool {
	body, ok := rc.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(body)
	return true
}

// respondCached marshals v, stores it under key, and writes it.
func respondCached(w http.ResponseWriter, r *http.Request, rc *cache.ResponseCache, key string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("response marshal failed", "path", r.URL.Path, "error", err)
		respondErrorMsg(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	rc.Set(r.Context(), key, body)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(body)
}

// --- Public reads ---

// List returns all publicly visible posts, newest first.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	key := "posts:list"
	if serveCached(w, r, h.respCache, key) {
		return
	}

	posts, err := h.posts.ListVisible(r.Context())
	if err != nil {
		respondServiceError(w, r, access.Anonymous(), err)
		return
	}
	respondCached(w, r, h.respCache, key, posts)
}

// Featured returns visible posts flagged as featured.
func (h *Posts) Featured(w http.ResponseWriter, r *http.Request) {
	key := "posts:featured"
	if serveCached(w, r, h.respCache, key) {
		return
	}

	posts, err := h.posts.ListFeatured(r.Context())
	if err != nil {
		respondServiceError(w, r, access.Anonymous(), err)
		return
	}
	respondCached(w, r, h.respCache, key, posts)
}

// GetBySlug returns a single visible post and counts the view. Draft,
// archived, and scheduled posts are indistinguishable from missing ones.
func (h *Posts) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	post, err := h.posts.GetVisibleBySlug(r.Context(), slugParam)
	if err != nil {
		respondServiceError(w, r, access.Anonymous(), err)
		return
	}

	if err := h.posts.IncrementViewCount(r.Context(), post.ID); err != nil {
		slog.Warn("view count increment failed", "post_id", post.ID, "error", err)
	}

	respond(w, r, http.StatusOK, post)
}

// Search returns visible posts matching the q query parameter. A blank
// query falls back to the full visible listing.
func (h *Posts) Search(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondServiceError(w, r, access.Anonymous(), err)
		return
	}
	respond(w, r, http.StatusOK, posts)
}

// ListByCategory returns visible posts in the category named by slug.
func (h *Posts) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondServiceError(w, r, access.Anonymous(), err)
		return
	}

	posts, err := h.posts.ListByCategory(r.Context(), category.ID)
	if err != nil {
		respondServiceError(w, r, access.Anonymous(), err)
		return
	}
	respond(w, r, http.StatusOK, posts)
}

// ListByTag returns visible posts carrying the tag named by slug.
func (h *Posts) ListByTag(w http.ResponseWriter, r *http.Request) {
	tag, err := h.tags.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondServiceError(w, r, access.Anonymous(), err)
		return
	}

	posts, err := h.posts.ListByTag(r.Context(), tag.ID)
	if err != nil {
		respondServiceError(w, r, access.Anonymous(), err)
		return
	}
	respond(w, r, http.StatusOK, posts)
}

// --- Admin ---

// AdminList returns every post regardless of status.
func (h *Posts) AdminList(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	posts, err := h.posts.ListAll(r.Context(), actor)
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusOK, posts)
}

// AdminGet returns a single post by id, any status.
func (h *Posts) AdminGet(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	id, ok := urlUUID(r, "id")
	if !ok {
		respondErrorMsg(w, r, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusOK, post)
}

// Create creates a new draft post.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	var in blog.PostInput
	if !decodeJSON(w, r, &in) {
		return
	}

	post, err := h.posts.Create(r.Context(), actor, in)
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}

	h.respCache.InvalidateAll(r.Context())
	respond(w, r, http.StatusCreated, post)
}

// Update rewrites a post's editable fields.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	id, ok := urlUUID(r, "id")
	if !ok {
		respondErrorMsg(w, r, http.StatusBadRequest, "invalid post id")
		return
	}

	var in blog.PostInput
	if !decodeJSON(w, r, &in) {
		return
	}

	post, err := h.posts.Update(r.Context(), actor, id, in)
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}

	h.respCache.InvalidateAll(r.Context())
	respond(w, r, http.StatusOK, post)
}

// Delete removes a post and, through the schema, its comments.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.posts.Delete)
}

// Publish moves a post to published, stamping published_at on first
// publish only.
func (h *Posts) Publish(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.posts.Publish)
}

// Unpublish moves a post back to draft, keeping its published_at.
func (h *Posts) Unpublish(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.posts.Unpublish)
}

// Archive retires a post from public view.
func (h *Posts) Archive(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.posts.Archive)
}

// lifecycle runs a status transition shared by the delete and status
// endpoints.
func (h *Posts) lifecycle(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, actor access.Actor, id uuid.UUID) error) {
	actor := middleware.ActorFromContext(r.Context())

	id, ok := urlUUID(r, "id")
	if !ok {
		respondErrorMsg(w, r, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := op(r.Context(), actor, id); err != nil {
		respondServiceError(w, r, actor, err)
		return
	}

	h.respCache.InvalidateAll(r.Context())
	respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
