// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Page is one page of catalog list results. Pages are derived data:
// they are cached as JSON and can always be rebuilt from the store.
type Page struct {
	Items       []Item `json:"items"`
	Total       int    `json:"total"`
	TotalPages  int    `json:"total_pages"`
	PageSize    int    `json:"page_size"`
	CurrentPage int    `json:"current_page"`
}

// NewPage assembles a result page, computing the page count from the
// total and page size.
func NewPage(items []Item, total, page, pageSize int) *Page {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	if items == nil {
		items = []Item{}
	}
	return &Page{
		Items:       items,
		Total:       total,
		TotalPages:  totalPages,
		PageSize:    pageSize,
		CurrentPage: page,
	}
}
