// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "testcatalog*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCatalogSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	c := NewCatalog(client, time.Minute, time.Minute)

	ctx := context.Background()
	key := DetailKey("testcatalog", "widget")

	// Miss.
	var out payload
	if c.Get(ctx, key, &out) {
		t.Error("expected cache miss")
	}

	// Set then hit.
	c.SetDetail(ctx, key, payload{Name: "widget", Count: 3})
	if !c.Get(ctx, key, &out) {
		t.Fatal("expected cache hit")
	}
	if out.Name != "widget" || out.Count != 3 {
		t.Errorf("decoded %+v, want {widget 3}", out)
	}
}

func TestCatalogGetUndecodableIsMiss(t *testing.T) {
	client := testValkeyClient(t)
	c := NewCatalog(client, time.Minute, time.Minute)

	ctx := context.Background()
	key := DetailKey("testcatalog", "corrupt")
	client.Set(ctx, key, "{not json", time.Minute)

	var out payload
	if c.Get(ctx, key, &out) {
		t.Error("expected undecodable payload to degrade to a miss")
	}
}

func TestCatalogDelete(t *testing.T) {
	client := testValkeyClient(t)
	c := NewCatalog(client, time.Minute, time.Minute)

	ctx := context.Background()
	key := DetailKey("testcatalog", "delete-me")
	c.SetDetail(ctx, key, payload{Name: "x"})

	c.Delete(ctx, key)

	var out payload
	if c.Get(ctx, key, &out) {
		t.Error("expected miss after delete")
	}

	// Deleting an absent key is a harmless no-op.
	c.Delete(ctx, key)
}

func TestCatalogDeleteByPattern(t *testing.T) {
	client := testValkeyClient(t)
	c := NewCatalog(client, time.Minute, time.Minute)

	ctx := context.Background()
	for page := 1; page <= 3; page++ {
		key := ListKey("testcatalog", ListParams{Page: page, Limit: 10})
		c.SetList(ctx, key, payload{Count: page})
	}
	other := DetailKey("othercatalog-test", "kept")
	c.SetDetail(ctx, other, payload{Name: "kept"})
	t.Cleanup(func() { client.Del(ctx, other) })

	c.DeleteByPattern(ctx, "testcatalog*")

	var out payload
	for page := 1; page <= 3; page++ {
		key := ListKey("testcatalog", ListParams{Page: page, Limit: 10})
		if c.Get(ctx, key, &out) {
			t.Errorf("key %q survived pattern delete", key)
		}
	}
	if !c.Get(ctx, other, &out) {
		t.Error("pattern delete removed a key outside the pattern")
	}
}

func TestCatalogReset(t *testing.T) {
	client := testValkeyClient(t)
	c := NewCatalog(client, time.Minute, time.Minute)

	ctx := context.Background()
	list := ListKey("testcatalog", ListParams{Page: 1, Limit: 10})
	detail := DetailKey("testcatalog", "widget")
	c.SetList(ctx, list, payload{Count: 1})
	c.SetDetail(ctx, detail, payload{Name: "widget"})

	c.Reset(ctx, "testcatalog")

	var out payload
	if c.Get(ctx, list, &out) {
		t.Error("list key survived reset")
	}
	if c.Get(ctx, detail, &out) {
		t.Error("detail key survived reset")
	}
}
