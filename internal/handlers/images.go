// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"pressroom/internal/blog"
	"pressroom/internal/middleware"
)

// maxUploadMemory bounds how much of a multipart upload is buffered in
// memory before spilling to disk.
const maxUploadMemory = 8 << 20

// Images groups the authenticated image upload and management endpoints.
type Images struct {
	images *blog.ImageService
}

// NewImages creates the images handler group.
func NewImages(images *blog.ImageService) *Images {
	return &Images{images: images}
}

// Upload accepts a multipart form with a "file" part and an optional
// "alt_text" field, stores the binary in the configured backend, and
// records its metadata.
func (h *Images) Upload(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondErrorMsg(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondErrorMsg(w, r, http.StatusBadRequest, "file part is required")
		return
	}
	defer file.Close()

	img, err := h.images.Upload(r.Context(), actor, blog.ImageInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		AltText:     r.FormValue("alt_text"),
		Body:        file,
	})
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusCreated, img)
}

// Delete removes an image record and its stored binary. Owner or admin
// only.
func (h *Images) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	id, ok := urlUUID(r, "id")
	if !ok {
		respondErrorMsg(w, r, http.StatusBadRequest, "invalid image id")
		return
	}

	if err := h.images.Delete(r.Context(), actor, id); err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// ListMine returns the calling user's uploads, newest first.
func (h *Images) ListMine(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	images, err := h.images.ListByUser(r.Context(), actor, actor.ID)
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusOK, images)
}
