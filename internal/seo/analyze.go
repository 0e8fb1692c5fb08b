// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package seo

import (
	"strings"
	"unicode/utf8"

	"pressroom/internal/models"
)

// Analyze runs the content checklist over a post and returns the
// recommendations for anything out of range. Checks run in a fixed order
// so the output ordering is stable: title length, meta description,
// content length, image markup, heading markup.
func Analyze(p *models.Post) []string {
	var recommendations []string

	titleLen := utf8.RuneCountInString(p.Title)
	if titleLen < 30 || titleLen > 60 {
		recommendations = append(recommendations, "Title should be between 30 and 60 characters")
	}

	descLen := utf8.RuneCountInString(p.MetaDescription)
	if p.MetaDescription == "" || descLen < 120 || descLen > 160 {
		recommendations = append(recommendations, "Meta description should be between 120 and 160 characters")
	}

	if utf8.RuneCountInString(p.Content) < 300 {
		recommendations = append(recommendations, "Content should be at least 300 characters long")
	}

	if !strings.Contains(p.Content, "<img") {
		recommendations = append(recommendations, "Consider adding images to improve engagement")
	}

	if !strings.Contains(p.Content, "<h1") || !strings.Contains(p.Content, "<h2") {
		recommendations = append(recommendations, "Use proper heading hierarchy (H1, H2, etc.)")
	}

	return recommendations
}
