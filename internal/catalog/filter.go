// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"storepress/internal/models"
)

// dateLayout is the wire format for list date-range bounds.
const dateLayout = "2006-01-02"

// BuildFilter turns raw query parameters into a store predicate.
// It is pure and total: malformed input degrades to "no filter for that
// field", never to an error.
//
// A date range applies only when both bounds parse; the range is
// inclusive of the whole end day. Status and category are comma-separated
// lists; tokens outside the respective closed sets are silently dropped,
// and a list with no valid tokens places no constraint.
func BuildFilter(start, end, status, category string) models.ItemFilter {
	var f models.ItemFilter

	if start != "" && end != "" {
		from, errFrom := time.Parse(dateLayout, start)
		to, errTo := time.Parse(dateLayout, end)
		if errFrom == nil && errTo == nil {
			// Push the upper bound to the last instant of the end day so
			// the calendar range is inclusive.
			to = to.Add(24*time.Hour - time.Nanosecond)
			f.CreatedAfter = &from
			f.CreatedBefore = &to
		}
	}

	if status != "" {
		for _, token := range strings.Split(status, ",") {
			if s, ok := models.ParseItemStatus(strings.TrimSpace(token)); ok {
				f.Statuses = append(f.Statuses, s)
			}
		}
	}

	if category != "" {
		for _, token := range strings.Split(category, ",") {
			if id, err := uuid.Parse(strings.TrimSpace(token)); err == nil {
				f.Categories = append(f.Categories, id)
			}
		}
	}

	return f
}
