// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// whitespace matches any run of whitespace characters.
	whitespace = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)

	// stripMarks decomposes accented characters and removes the
	// combining marks, so "café" transliterates to "cafe".
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Generate creates a URL-friendly slug from the given string.
// Accented latin characters are transliterated to their ASCII base form.
// Example: "Héllo, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	if ascii, _, err := transform.String(stripMarks, s); err == nil {
		s = ascii
	}
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// WithSuffix appends a numeric disambiguation suffix to a slug.
// Used when the base slug collides with an existing item whose title
// differs. WithSuffix("hello-world", 2) → "hello-world-2".
func WithSuffix(slug string, n int) string {
	return fmt.Sprintf("%s-%d", slug, n)
}
