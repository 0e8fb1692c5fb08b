// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"pressroom/internal/access"
	"pressroom/internal/blog"
	"pressroom/internal/middleware"
)

// Tags groups the public tag listings and the admin CRUD endpoints.
type Tags struct {
	tags *blog.TagService
}

// NewTags creates the tags handler group.
func NewTags(tags *blog.TagService) *Tags {
	return &Tags{tags: tags}
}

// List returns all tags with their post counts.
func (h *Tags) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.List(r.Context())
	if err != nil {
		respondServiceError(w, r, access.Anonymous(), err)
		return
	}
	respond(w, r, http.StatusOK, tags)
}

// Popular returns the most-used tags, limited by the count query
// parameter.
func (h *Tags) Popular(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("count"))

	tags, err := h.tags.Popular(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, access.Anonymous(), err)
		return
	}
	respond(w, r, http.StatusOK, tags)
}

// Get returns a single tag by slug.
func (h *Tags) Get(w http.ResponseWriter, r *http.Request) {
	tag, err := h.tags.GetBySlug(r.Context(), urlSlug(r))
	if err != nil {
		respondServiceError(w, r, access.Anonymous(), err)
		return
	}
	respond(w, r, http.StatusOK, tag)
}

type tagRequest struct {
	Name string `json:"name"`
}

type bulkTagRequest struct {
	Names []string `json:"names"`
}

// Create adds a tag.
func (h *Tags) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	var req tagRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tag, err := h.tags.Create(r.Context(), actor, req.Name)
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusCreated, tag)
}

// BulkCreate resolves a list of names into tags, creating the missing
// ones and reusing existing ones case-insensitively.
func (h *Tags) BulkCreate(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	var req bulkTagRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tags, err := h.tags.BulkCreate(r.Context(), actor, req.Names)
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusOK, tags)
}

// Update renames a tag. The slug only changes when the name does.
func (h *Tags) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	id, ok := urlUUID(r, "id")
	if !ok {
		respondErrorMsg(w, r, http.StatusBadRequest, "invalid tag id")
		return
	}

	var req tagRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tag, err := h.tags.Update(r.Context(), actor, id, req.Name)
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusOK, tag)
}

// Delete removes a tag and its post associations.
func (h *Tags) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	id, ok := urlUUID(r, "id")
	if !ok {
		respondErrorMsg(w, r, http.StatusBadRequest, "invalid tag id")
		return
	}

	if err := h.tags.Delete(r.Context(), actor, id); err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
