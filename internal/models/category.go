// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryKind distinguishes which resource type a category applies to.
type CategoryKind string

const (
	CategoryKindProduct CategoryKind = "product"
	CategoryKindService CategoryKind = "service"
	CategoryKindPost    CategoryKind = "post"
)

// CategoryStatus represents the visibility state of a category.
type CategoryStatus string

const (
	CategoryStatusActive CategoryStatus = "active"
	CategoryStatusHidden CategoryStatus = "hidden"
)

// Category groups catalog items. Items reference a category by ID; the
// reference is validated at item write time, not enforced as a live
// foreign key.
type Category struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Slug      string         `json:"slug"`
	Kind      CategoryKind   `json:"kind"`
	Status    CategoryStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// UsableForItems returns true if items may be created under this category.
func (c *Category) UsableForItems() bool {
	return c.Status == CategoryStatusActive && c.Kind == CategoryKindProduct
}
