// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"pressroom/internal/access"
	"pressroom/internal/blog"
	"pressroom/internal/cache"
	"pressroom/internal/middleware"
)

// Categories groups the public category listing and the admin CRUD
// endpoints.
type Categories struct {
	categories *blog.CategoryService
	respCache  *cache.ResponseCache
}

// NewCategories creates the categories handler group.
func NewCategories(categories *blog.CategoryService, respCache *cache.ResponseCache) *Categories {
	return &Categories{categories: categories, respCache: respCache}
}

// List returns all categories with their post counts.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	key := "categories:list"
	if serveCached(w, r, h.respCache, key) {
		return
	}

	categories, err := h.categories.List(r.Context())
	if err != nil {
		respondServiceError(w, r, access.Anonymous(), err)
		return
	}
	respondCached(w, r, h.respCache, key, categories)
}

// Get returns a single category by slug.
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.GetBySlug(r.Context(), urlSlug(r))
	if err != nil {
		respondServiceError(w, r, access.Anonymous(), err)
		return
	}
	respond(w, r, http.StatusOK, category)
}

// Create adds a category.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	var in blog.CategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}

	category, err := h.categories.Create(r.Context(), actor, in)
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}

	h.respCache.InvalidateAll(r.Context())
	respond(w, r, http.StatusCreated, category)
}

// Update renames or re-describes a category. The slug only changes when
// the name does.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	id, ok := urlUUID(r, "id")
	if !ok {
		respondErrorMsg(w, r, http.StatusBadRequest, "invalid category id")
		return
	}

	var in blog.CategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}

	category, err := h.categories.Update(r.Context(), actor, id, in)
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}

	h.respCache.InvalidateAll(r.Context())
	respond(w, r, http.StatusOK, category)
}

// Delete removes a category. Fails with 409 while posts still reference
// it.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	id, ok := urlUUID(r, "id")
	if !ok {
		respondErrorMsg(w, r, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.categories.Delete(r.Context(), actor, id); err != nil {
		respondServiceError(w, r, actor, err)
		return
	}

	h.respCache.InvalidateAll(r.Context())
	respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
