// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package seo

import (
	"fmt"
	"strings"

	"pressroom/internal/models"
)

// Sitemap renders a sitemap XML document: the homepage plus one entry per
// post. Callers are responsible for passing only publicly visible posts;
// the visibility rule lives with the post listing, not here.
func Sitemap(site Site, posts []models.Post) string {
	base := strings.TrimRight(site.BaseURL, "/")

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n")

	b.WriteString("  <url>\n")
	fmt.Fprintf(&b, "    <loc>%s</loc>\n", base)
	b.WriteString("    <changefreq>daily</changefreq>\n")
	b.WriteString("    <priority>1.0</priority>\n")
	b.WriteString("  </url>\n")

	for _, p := range posts {
		b.WriteString("  <url>\n")
		fmt.Fprintf(&b, "    <loc>%s</loc>\n", site.CanonicalURL(p.Slug))
		fmt.Fprintf(&b, "    <lastmod>%s</lastmod>\n", p.UpdatedAt.UTC().Format("2006-01-02"))
		b.WriteString("    <changefreq>weekly</changefreq>\n")
		b.WriteString("    <priority>0.8</priority>\n")
		b.WriteString("  </url>\n")
	}

	b.WriteString("</urlset>\n")
	return b.String()
}

// RobotsTxt renders the robots.txt body with a Sitemap directive pointing
// at the site's sitemap.
func RobotsTxt(site Site) string {
	base := strings.TrimRight(site.BaseURL, "/")

	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	fmt.Fprintf(&b, "Sitemap: %s/sitemap.xml\n", base)
	return b.String()
}
