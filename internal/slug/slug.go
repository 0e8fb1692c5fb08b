// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// whitespaceRun matches one or more consecutive whitespace characters.
	whitespaceRun = regexp.MustCompile(`\s+`)
	// nonSlugChars matches anything that isn't a lowercase letter, digit, or hyphen.
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)

	// stripMarks decomposes characters and removes combining marks, so
	// accented letters fall back to their base letterform.
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Generate creates a URL-friendly slug from the given string.
// Diacritics are reduced to their base letters, "&" becomes "and", and
// anything outside [a-z0-9-] is dropped. An input that is already a valid
// slug comes back unchanged.
// Example: "Héllo, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result, _, err := transform.String(stripMarks, s)
	if err != nil {
		// Malformed UTF-8: keep the raw input; invalid bytes are dropped
		// by the character filter below.
		result = s
	}

	result = strings.ToLower(strings.TrimSpace(result))
	result = strings.ReplaceAll(result, "&", "and")
	result = whitespaceRun.ReplaceAllString(result, "-")
	result = nonSlugChars.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}
