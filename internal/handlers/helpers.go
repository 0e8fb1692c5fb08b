package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"pressroom/internal/access"
	"pressroom/internal/blog"
)

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respond writes a JSON response with the given status.
func respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// respondErrorMsg writes a plain error message with the given status.
func respondErrorMsg(w http.ResponseWriter, r *http.Request, status int, msg string) {
	respond(w, r, status, errorResponse{Error: msg})
}

// respondServiceError maps service-layer errors onto HTTP statuses. A
// forbidden error becomes 401 for anonymous callers and 403 for
// authenticated ones.
func respondServiceError(w http.ResponseWriter, r *http.Request, actor access.Actor, err error) {
	var ve *blog.ValidationError
	switch {
	case errors.As(err, &ve):
		respond(w, r, http.StatusBadRequest, errorResponse{Error: ve.Message, Field: ve.Field})
	case errors.Is(err, blog.ErrForbidden):
		if actor.Anonymous {
			respondErrorMsg(w, r, http.StatusUnauthorized, "authentication required")
			return
		}
		respondErrorMsg(w, r, http.StatusForbidden, "forbidden")
	case errors.Is(err, blog.ErrNotFound):
		respondErrorMsg(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, blog.ErrSlugTaken), errors.Is(err, blog.ErrConflict):
		respondErrorMsg(w, r, http.StatusConflict, "conflict")
	default:
		slog.Error("request failed", "path", r.URL.Path, "method", r.Method, "error", err)
		respondErrorMsg(w, r, http.StatusInternalServerError, "internal error")
	}
}

// urlSlug reads the slug chi route parameter.
func urlSlug(r *http.Request) string {
	return chi.URLParam(r, "slug")
}

// urlUUID parses a UUID chi route parameter.
func urlUUID(r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	return id, err == nil
}

// decodeJSON decodes the request body into v, rejecting unreadable input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		respondErrorMsg(w, r, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
