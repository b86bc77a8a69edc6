// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// catalog.go provides the Valkey-backed read-through cache for catalog
// pages and item details. Cache failures are never fatal: a backend error
// on read degrades to a miss and the store is queried instead, and a
// backend error on write or invalidation is logged and swallowed.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// opTimeout bounds a single get/set/delete round trip. A cache call
	// slower than this is worth less than going straight to the store.
	opTimeout = 500 * time.Millisecond

	// scanTimeout bounds pattern invalidation, which may iterate many keys.
	scanTimeout = 5 * time.Second
)

// Catalog caches serialized list pages and item details in Valkey under
// a single namespace. Two TTL classes apply: list pages expire sooner
// because they are keyed by many filter/page combinations.
type Catalog struct {
	client    *redis.Client
	listTTL   time.Duration
	detailTTL time.Duration
}

// NewCatalog creates a catalog cache backed by the given Valkey client.
func NewCatalog(client *redis.Client, listTTL, detailTTL time.Duration) *Catalog {
	if listTTL == 0 {
		listTTL = time.Hour
	}
	if detailTTL == 0 {
		detailTTL = 3 * time.Hour
	}
	return &Catalog{client: client, listTTL: listTTL, detailTTL: detailTTL}
}

// Get retrieves and decodes a cached value into dest. Returns false on
// miss, on any backend error, and on undecodable payloads.
func (c *Catalog) Get(ctx context.Context, key string, dest any) bool {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		slog.Warn("cache get error", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		slog.Warn("cache decode error", "key", key, "error", err)
		return false
	}
	slog.Debug("cache hit", "key", key)
	return true
}

// SetList stores a list page under the list TTL class.
func (c *Catalog) SetList(ctx context.Context, key string, v any) {
	c.set(ctx, key, v, c.listTTL)
}

// SetDetail stores an item detail under the detail TTL class.
func (c *Catalog) SetDetail(ctx context.Context, key string, v any) {
	c.set(ctx, key, v, c.detailTTL)
}

func (c *Catalog) set(ctx context.Context, key string, v any, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		slog.Warn("cache encode error", "key", key, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		slog.Warn("cache set error", "key", key, "error", err)
	}
}

// Delete removes a single key. Deleting an absent key is a no-op.
func (c *Catalog) Delete(ctx context.Context, key string) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := c.client.Del(ctx, key).Err(); err != nil {
		slog.Warn("cache delete error", "key", key, "error", err)
	}
	slog.Debug("cache invalidated", "key", key)
}

// DeleteByPattern removes all keys matching a glob pattern by scanning.
// Used to clear every cached list-page variant of a resource at once.
func (c *Catalog) DeleteByPattern(ctx context.Context, pattern string) {
	ctx, cancel := context.WithTimeout(ctx, scanTimeout)
	defer cancel()

	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("cache scan error", "pattern", pattern, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("cache bulk delete error", "pattern", pattern, "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("cache pattern invalidated", "pattern", pattern, "deleted", deleted)
	}
}

// Reset clears an entire resource namespace, list pages and details
// alike. The Valkey DB is shared with other concerns, so this scans the
// namespace prefix rather than flushing the whole DB.
func (c *Catalog) Reset(ctx context.Context, namespace string) {
	c.DeleteByPattern(ctx, namespace+"*")
}
