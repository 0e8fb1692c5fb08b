// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"pressroom/internal/blog"
	"pressroom/internal/middleware"
)

// Dashboard groups the admin stats endpoints. These are never cached so
// moderation counters stay live.
type Dashboard struct {
	stats *blog.StatsService
}

// NewDashboard creates the dashboard handler group.
func NewDashboard(stats *blog.StatsService) *Dashboard {
	return &Dashboard{stats: stats}
}

// Overview returns the headline totals for the admin dashboard.
func (h *Dashboard) Overview(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	overview, err := h.stats.Overview(r.Context())
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusOK, overview)
}

// Analytics returns windowed creation counts and published-post
// groupings. The days query parameter defaults to 30.
func (h *Dashboard) Analytics(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	analytics, err := h.stats.Analytics(r.Context(), days)
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusOK, analytics)
}

// RecentPosts returns the newest posts for the dashboard sidebar.
func (h *Dashboard) RecentPosts(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	count, _ := strconv.Atoi(r.URL.Query().Get("count"))

	posts, err := h.stats.RecentPosts(r.Context(), count)
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusOK, posts)
}

// PopularPosts returns the most-viewed posts.
func (h *Dashboard) PopularPosts(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	count, _ := strconv.Atoi(r.URL.Query().Get("count"))

	posts, err := h.stats.PopularPosts(r.Context(), count)
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusOK, posts)
}

// RecentComments returns the latest comments across all posts.
func (h *Dashboard) RecentComments(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	count, _ := strconv.Atoi(r.URL.Query().Get("count"))

	comments, err := h.stats.RecentComments(r.Context(), count)
	if err != nil {
		respondServiceError(w, r, actor, err)
		return
	}
	respond(w, r, http.StatusOK, comments)
}
