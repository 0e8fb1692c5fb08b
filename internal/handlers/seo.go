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
	"pressroom/internal/seo"
)

// SEO groups the crawler-facing artifacts (sitemap, robots) and the SEO
// inspection endpoints.
type SEO struct {
	posts     *blog.PostService
	respCache *cache.ResponseCache
	site      seo.Site
}

// NewSEO creates the SEO handler group.
func NewSEO(posts *blog.PostService, respCache *cache.ResponseCache, site seo.Site) *SEO {
	return &SEO{posts: posts, respCache: respCache, site: site}
}

// Sitemap serves the XML sitemap over all visible posts.
func (h *SEO) Sitemap(w http.ResponseWriter, r *http.Request) {
	const key = "seo:sitemap"

	if body, ok := h.respCache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		_, _ = w.Write(body)
		return
	}

	posts, err := h.posts.ListVisible(r.Context())
	if err != nil {
		respondServiceError(w, r, access.Anonymous(), err)
		return
	}

	body := []byte(seo.Sitemap(h.site, posts))
	h.respCache.Set(r.Context(), key, body)

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(body)
}

// Robots serves robots.txt pointing crawlers at the sitemap.
func (h *SEO) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.RobotsTxt(h.site)))
}

// StructuredData serves the schema.org BlogPosting JSON-LD for a visible
// post.
func (h *SEO) StructuredData(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetVisibleBySlug(r.Context(), urlSlug(r))
	if err != nil {
		respondServiceError(w, r, access.Anonymous(), err)
		return
	}

	body, err := seo.StructuredData(post, post.AuthorName, h.site)
	if err != nil {
		respondServiceError(w, r, access.Anonymous(), err)
		return
	}

	w.Header().Set("Content-Type", "application/ld+json; charset=utf-8")
	_, _ = w.Write(body)
}

type seoReport struct {
	Suggestions []string `json:"suggestions"`
	Description string   `json:"meta_description"`
	Keywords    []string `json:"keywords"`
}

// Analyze returns SEO suggestions plus derived metadata for any post,
// draft included. Admin only.
func (h *SEO) Analyze(w http.ResponseWriter, r *http.Request) {
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

	report := seoReport{
		Suggestions: seo.Analyze(post),
		Description: seo.MetaDescription(post.Content, 0),
		Keywords:    seo.Keywords(post.Content, 0),
	}
	respond(w, r, http.StatusOK, report)
}
