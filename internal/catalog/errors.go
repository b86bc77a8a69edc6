// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import "errors"

// Kind identifies one failure class in the catalog validation pipeline.
// Kinds are stable strings exposed to API clients.
type Kind string

const (
	KindTitleRequired    Kind = "TITLE_REQUIRED"
	KindCategoryInvalid  Kind = "CATEGORY_VALIDATION"
	KindAlreadyExists    Kind = "ALREADY_EXISTS"
	KindPriceInvalid     Kind = "PRICE_VALIDATION"
	KindFileRequired     Kind = "FILE_REQUIRED"
	KindFileUploadFailed Kind = "FILE_UPLOAD_FAILED"
	KindInvalidStatus    Kind = "INVALID_STATUS"
	KindInvalidViewCount Kind = "INVALID_VIEWS"
	KindNotFound         Kind = "NOT_FOUND"
)

// Error is a structured domain failure: a kind plus a human message.
// Infrastructure failures are never wrapped in an Error; they propagate
// as ordinary wrapped errors and surface to clients as a generic 500.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// fail builds a domain error.
func fail(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the domain failure kind from an error chain.
// Returns ("", false) for infrastructure errors.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsKind reports whether err is a domain failure of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
