// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"fmt"
	"strconv"
)

// paramAll is the sentinel for an absent list parameter. Using a fixed
// sentinel keeps keys for "no filter" and "filter absent" identical.
const paramAll = "all"

// ListParams are the parameters a list-page cache key is built from.
// Empty strings mean "not supplied".
type ListParams struct {
	Page     int
	Limit    int
	Start    string
	End      string
	Status   string
	Category string
}

// ListKey builds the cache key for one page of list results. The
// parameter order is fixed here, so two logically identical queries
// always produce the same key, and keys are built from exact field
// values rather than hashes so distinct queries never collide.
// Example: "products:page=1:limit=10:start=all:end=all:status=all:category=all"
func ListKey(namespace string, p ListParams) string {
	return namespace +
		":page=" + strconv.Itoa(p.Page) +
		":limit=" + strconv.Itoa(p.Limit) +
		":start=" + orAll(p.Start) +
		":end=" + orAll(p.End) +
		":status=" + orAll(p.Status) +
		":category=" + orAll(p.Category)
}

// DetailKey builds the cache key for a single item looked up by slug.
func DetailKey(namespace, slug string) string {
	return fmt.Sprintf("%s_%s", namespace, slug)
}

func orAll(v string) string {
	if v == "" {
		return paramAll
	}
	return v
}
