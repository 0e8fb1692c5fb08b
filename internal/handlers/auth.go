// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the Pressroom API.
// Handlers are grouped by concern and receive their dependencies through
// the handler struct.
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"pressroom/internal/blog"
	"pressroom/internal/middleware"
	"pressroom/internal/models"
)

// tokenTTL is how long issued login tokens stay valid.
const tokenTTL = 24 * time.Hour

// Auth handles login and token issuance.
type Auth struct {
	users blog.UserRepo
	auth  *middleware.Auth
}

// NewAuth creates the auth handler group.
func NewAuth(users blog.UserRepo, auth *middleware.Auth) *Auth {
	return &Auth{users: users, auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login verifies credentials and returns a signed bearer token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		respondErrorMsg(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil {
		// Burn a bcrypt comparison so missing and wrong-password logins
		// take comparable time.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$N9qo8uLOickgx2ZMRZoMye"), []byte(req.Password))
		respondErrorMsg(w, r, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondErrorMsg(w, r, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.auth.IssueToken(user.ID, user.Role, tokenTTL)
	if err != nil {
		slog.Error("token issue failed", "error", err)
		respondErrorMsg(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.users.UpdateLastLogin(r.Context(), user.ID, time.Now()); err != nil {
		slog.Warn("last login update failed", "user_id", user.ID, "error", err)
	}

	respond(w, r, http.StatusOK, loginResponse{Token: token, User: user})
}
