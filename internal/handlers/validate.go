package handlers

import "unicode/utf8"

// Validation limits for catalog item fields. Semantic validation (title
// presence, price format, category) lives in the service pipeline; these
// are transport-level size bounds only.
const (
	maxTitleLen       = 300
	maxContentLen     = 100_000
	maxDescriptionLen = 1_000
)

// validateCreateForm checks field sizes and returns the first error found.
func validateCreateForm(title, content, description string) string {
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "Description is too long (max 1,000 characters)."
	}
	return ""
}
