// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testClient returns a Valkey client on DB 15, skipping when unavailable.
func testClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "catalog:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func TestKey(t *testing.T) {
	id := uuid.New()

	if got := Key(id, ""); got != id.String() {
		t.Errorf("empty filter: got %q, want %q", got, id.String())
	}
	// "all" is the client's explicit no-filter value; same cache entry.
	if got := Key(id, "all"); got != id.String() {
		t.Errorf("all filter: got %q, want %q", got, id.String())
	}
	if got := Key(id, "abc"); got != id.String()+":abc" {
		t.Errorf("category filter: got %q", got)
	}
}

func TestCatalogCacheGetSet(t *testing.T) {
	client := testClient(t)
	cc := NewCatalogCache(client, 1*time.Minute)
	ctx := context.Background()

	key := Key(uuid.New(), "")

	if _, ok := cc.Get(ctx, key); ok {
		t.Fatal("expected miss for fresh key")
	}

	payload := []byte(`{"business":{"name":"Cacheada"}}`)
	cc.Set(ctx, key, payload)

	got, ok := cc.Get(ctx, key)
	if !ok {
		t.Fatal("expected hit after set")
	}
	if string(got) != string(payload) {
		t.Errorf("payload: got %q, want %q", got, payload)
	}
}

func TestCatalogCacheInvalidate(t *testing.T) {
	client := testClient(t)
	cc := NewCatalogCache(client, 1*time.Minute)
	ctx := context.Background()

	businessID := uuid.New()
	otherID := uuid.New()

	// Every variant of the business, plus an unrelated business.
	cc.Set(ctx, Key(businessID, ""), []byte("a"))
	cc.Set(ctx, Key(businessID, "cat-1"), []byte("b"))
	cc.Set(ctx, Key(businessID, "cat-2"), []byte("c"))
	cc.Set(ctx, Key(otherID, ""), []byte("d"))

	cc.Invalidate(ctx, businessID)

	for _, key := range []string{Key(businessID, ""), Key(businessID, "cat-1"), Key(businessID, "cat-2")} {
		if _, ok := cc.Get(ctx, key); ok {
			t.Errorf("key %q survived invalidation", key)
		}
	}

	// The other business's cache is untouched.
	if _, ok := cc.Get(ctx, Key(otherID, "")); !ok {
		t.Error("unrelated business was invalidated")
	}
}

func TestCatalogCacheTTL(t *testing.T) {
	client := testClient(t)
	cc := NewCatalogCache(client, 100*time.Millisecond)
	ctx := context.Background()

	key := Key(uuid.New(), "")
	cc.Set(ctx, key, []byte("ephemeral"))

	if _, ok := cc.Get(ctx, key); !ok {
		t.Fatal("expected hit before expiry")
	}

	time.Sleep(150 * time.Millisecond)

	if _, ok := cc.Get(ctx, key); ok {
		t.Error("expected miss after TTL expiry")
	}
}
