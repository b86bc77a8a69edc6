package store

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"storepress/internal/models"
)

func TestCategoryCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	ctx := context.Background()

	created := makeCategory(t, db, "cat-test-find", models.CategoryKindProduct, models.CategoryStatusActive)

	found, err := s.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.Slug != "cat-test-find" {
		t.Errorf("FindByID = %+v", found)
	}

	missing, err := s.FindByID(ctx, uuid.New())
	if err != nil {
		t.Fatalf("FindByID missing: %v", err)
	}
	if missing != nil {
		t.Errorf("FindByID for unknown id = %+v, want nil", missing)
	}
}

func TestCategoryIsUsable(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	ctx := context.Background()

	tests := []struct {
		name   string
		slug   string
		kind   models.CategoryKind
		status models.CategoryStatus
		want   bool
	}{
		{"active product", "cat-usable-active", models.CategoryKindProduct, models.CategoryStatusActive, true},
		{"hidden product", "cat-usable-hidden", models.CategoryKindProduct, models.CategoryStatusHidden, false},
		{"active service", "cat-usable-service", models.CategoryKindService, models.CategoryStatusActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := makeCategory(t, db, tt.slug, tt.kind, tt.status)
			ok, err := s.IsUsable(ctx, c.ID)
			if err != nil {
				t.Fatalf("IsUsable: %v", err)
			}
			if ok != tt.want {
				t.Errorf("IsUsable = %v, want %v", ok, tt.want)
			}
		})
	}

	// Unknown category is not usable and not an error.
	ok, err := s.IsUsable(ctx, uuid.New())
	if err != nil {
		t.Fatalf("IsUsable unknown: %v", err)
	}
	if ok {
		t.Error("IsUsable for unknown category = true, want false")
	}
}

func TestCategoryList(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	ctx := context.Background()

	makeCategory(t, db, "cat-test-list", models.CategoryKindProduct, models.CategoryStatusActive)

	items, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	found := false
	for _, c := range items {
		if c.Slug == "cat-test-list" {
			found = true
		}
	}
	if !found {
		t.Error("List did not include the created category")
	}
}
