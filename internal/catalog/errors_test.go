package catalog

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := fail(KindNotFound, "item not found")

	kind, ok := KindOf(err)
	if !ok || kind != KindNotFound {
		t.Errorf("KindOf = (%q, %v), want (NOT_FOUND, true)", kind, ok)
	}

	// Wrapping preserves the kind.
	wrapped := fmt.Errorf("handling request: %w", err)
	kind, ok = KindOf(wrapped)
	if !ok || kind != KindNotFound {
		t.Errorf("KindOf wrapped = (%q, %v), want (NOT_FOUND, true)", kind, ok)
	}

	// Infrastructure errors carry no kind.
	if _, ok := KindOf(errors.New("connection refused")); ok {
		t.Error("KindOf reported a kind for a plain error")
	}
}

func TestIsKind(t *testing.T) {
	err := fail(KindPriceInvalid, "price must be a valid non-negative number")

	if !IsKind(err, KindPriceInvalid) {
		t.Error("IsKind did not match the error's own kind")
	}
	if IsKind(err, KindNotFound) {
		t.Error("IsKind matched a different kind")
	}
	if IsKind(nil, KindNotFound) {
		t.Error("IsKind matched nil")
	}
}

func TestErrorMessage(t *testing.T) {
	err := fail(KindFileRequired, "at least one file is required")
	want := "FILE_REQUIRED: at least one file is required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
