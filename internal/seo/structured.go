// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package seo

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pressroom/internal/models"
)

// Site carries the publisher-level settings embedded in SEO artifacts.
type Site struct {
	BaseURL string
	Name    string
	LogoURL string
}

// CanonicalURL returns the canonical public URL for a post slug.
func (s Site) CanonicalURL(slug string) string {
	return fmt.Sprintf("%s/blog/%s", strings.TrimRight(s.BaseURL, "/"), slug)
}

// BlogPosting is the schema.org structured-data payload for a post.
// Timestamp fields are pointers so that unpublished or never-updated posts
// omit them instead of emitting empty strings.
type BlogPosting struct {
	Context          string    `json:"@context"`
	Type             string    `json:"@type"`
	MainEntityOfPage WebPage   `json:"mainEntityOfPage"`
	Headline         string    `json:"headline"`
	Description      string    `json:"description"`
	Image            string    `json:"image,omitempty"`
	Author           Person    `json:"author"`
	Publisher        Publisher `json:"publisher"`
	DatePublished    *string   `json:"datePublished,omitempty"`
	DateModified     *string   `json:"dateModified,omitempty"`
}

// WebPage identifies the canonical page for a BlogPosting.
type WebPage struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

// Person is the post author in structured data.
type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// Publisher is the site organization in structured data.
type Publisher struct {
	Type string      `json:"@type"`
	Name string      `json:"name"`
	Logo ImageObject `json:"logo"`
}

// ImageObject wraps the publisher logo URL.
type ImageObject struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

// isoTimestamp formats an optional time as ISO-8601 UTC, passing nil through.
func isoTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format("2006-01-02T15:04:05Z")
	return &s
}

// StructuredData builds the serialized schema.org BlogPosting document for
// a post. The output is deterministic for a given post, author name, and
// site configuration.
func StructuredData(p *models.Post, authorName string, site Site) ([]byte, error) {
	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		updatedAt = &p.UpdatedAt
	}

	doc := BlogPosting{
		Context: "https://schema.org",
		Type:    "BlogPosting",
		MainEntityOfPage: WebPage{
			Type: "WebPage",
			ID:   site.CanonicalURL(p.Slug),
		},
		Headline:    p.Title,
		Description: p.MetaDescription,
		Image:       p.FeaturedImageURL,
		Author:      Person{Type: "Person", Name: authorName},
		Publisher: Publisher{
			Type: "Organization",
			Name: site.Name,
			Logo: ImageObject{Type: "ImageObject", URL: site.LogoURL},
		},
		DatePublished: isoTimestamp(p.PublishedAt),
		DateModified:  isoTimestamp(updatedAt),
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal structured data: %w", err)
	}
	return out, nil
}
