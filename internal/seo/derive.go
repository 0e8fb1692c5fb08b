// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package seo derives canonical text artifacts from free-form post content:
// excerpts, meta descriptions, keyword sets, schema.org structured data,
// sitemap and robots.txt output, and a rule-based content checklist.
// Everything in this package is a pure transform over its inputs.
package seo

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Default lengths and limits used when callers pass a non-positive value.
const (
	DefaultExcerptLength  = 300
	DefaultMetaDescLength = 160
	DefaultKeywordLimit   = 10
)

// htmlTag matches an HTML tag, opening or closing.
var htmlTag = regexp.MustCompile(`<[^>]+>`)

// StripTags removes HTML tags from content, leaving the plain text.
func StripTags(content string) string {
	return htmlTag.ReplaceAllString(content, "")
}

// Excerpt produces a plain-text excerpt of at most maxLength characters.
// HTML tags are stripped first. When truncation is needed the cut happens
// at the last whitespace boundary at or before the limit, and an ellipsis
// marker is appended; content without any whitespace before the limit is
// hard-truncated. Empty content yields an empty string.
func Excerpt(content string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultExcerptLength
	}

	plain := strings.TrimSpace(StripTags(content))
	r := []rune(plain)
	if len(r) <= maxLength {
		return plain
	}

	// Search backwards from the limit for a whitespace boundary.
	last := -1
	for i := maxLength; i >= 0; i-- {
		if unicode.IsSpace(r[i]) {
			last = i
			break
		}
	}
	if last > 0 {
		return strings.TrimRight(string(r[:last]), " \t\n") + "..."
	}
	return string(r[:maxLength]) + "..."
}

// MetaDescription produces a meta description from content. Same algorithm
// as Excerpt with a shorter default length.
func MetaDescription(content string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMetaDescLength
	}
	return Excerpt(content, maxLength)
}

// keywordSeparator reports whether a rune splits tokens for keyword
// extraction: any whitespace plus sentence punctuation.
func keywordSeparator(r rune) bool {
	switch r {
	case '.', ',', '!', '?':
		return true
	}
	return unicode.IsSpace(r)
}

// Keywords extracts the limit most frequent words from content, tags
// stripped, case-folded, tokens of three characters or fewer discarded.
// Results are ordered by descending frequency; ties keep first-occurrence
// order.
func Keywords(content string, limit int) []string {
	if limit <= 0 {
		limit = DefaultKeywordLimit
	}

	tokens := strings.FieldsFunc(StripTags(content), keywordSeparator)

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) <= 3 {
			continue
		}
		word := strings.ToLower(tok)
		if _, ok := counts[word]; !ok {
			firstSeen[word] = len(firstSeen)
		}
		counts[word]++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return firstSeen[words[i]] < firstSeen[words[j]]
	})

	if len(words) > limit {
		words = words[:limit]
	}
	return words
}
