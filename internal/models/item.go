// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ItemStatus represents the publishing state of a catalog item.
type ItemStatus string

const (
	ItemStatusDraft   ItemStatus = "draft"
	ItemStatusShow    ItemStatus = "show"
	ItemStatusHide    ItemStatus = "hide"
	ItemStatusPopular ItemStatus = "popular"
)

// ParseItemStatus validates a raw status string against the closed set.
// Returns false for anything outside it, including the empty string.
func ParseItemStatus(s string) (ItemStatus, bool) {
	switch ItemStatus(s) {
	case ItemStatusDraft, ItemStatusShow, ItemStatusHide, ItemStatusPopular:
		return ItemStatus(s), true
	}
	return "", false
}

// Author is an immutable snapshot of the user who created an item,
// embedded at creation time. It is deliberately not kept in sync with
// later changes to the user's profile.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Item represents one catalog entry (product, service, or post).
type Item struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	ContentHTML string     `json:"content_html,omitempty"`
	Description string     `json:"description"`
	Files       []string   `json:"files"`
	CategoryID  uuid.UUID  `json:"category_id"`
	Price       *float64   `json:"price,omitempty"`
	Views       int64      `json:"views"`
	Status      ItemStatus `json:"status"`
	Author      Author     `json:"author"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsVisible returns true if the item should appear on public listings.
func (i *Item) IsVisible() bool {
	return i.Status == ItemStatusShow || i.Status == ItemStatusPopular
}

// ItemFilter is the predicate consumed by the item store's list and
// count queries. Zero-value fields mean "no constraint on that field".
type ItemFilter struct {
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Statuses      []ItemStatus
	Categories    []uuid.UUID
}

// IsEmpty returns true if the filter places no constraint at all.
func (f ItemFilter) IsEmpty() bool {
	return f.CreatedAfter == nil && f.CreatedBefore == nil &&
		len(f.Statuses) == 0 && len(f.Categories) == 0
}
