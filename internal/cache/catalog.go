// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// catalog.go provides a Valkey-backed cache for public catalog responses.
// The catalog is the hottest read path and changes only when an owner
// edits their storefront, so responses are cached per business (and per
// category filter) and invalidated on any write to that business's data.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// catalogKeyPrefix is the Valkey key prefix for cached catalogs.
	catalogKeyPrefix = "catalog:"

	// DefaultCatalogTTL is how long a catalog response stays cached.
	DefaultCatalogTTL = 5 * time.Minute
)

// CatalogCache manages public catalog JSON caching in Valkey.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a catalog cache backed by the given Valkey client.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl == 0 {
		ttl = DefaultCatalogTTL
	}
	return &CatalogCache{client: client, ttl: ttl}
}

// Key builds the cache key for a business catalog with an optional
// category filter ("" or "all" means unfiltered).
func Key(businessID uuid.UUID, category string) string {
	if category == "" || category == "all" {
		return businessID.String()
	}
	return businessID.String() + ":" + category
}

// Get retrieves a cached catalog response. Returns false on miss.
func (cc *CatalogCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := cc.client.Get(ctx, catalogKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("catalog cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("catalog cache hit", "key", key)
	return val, true
}

// Set stores a catalog response with the configured TTL.
func (cc *CatalogCache) Set(ctx context.Context, key string, payload []byte) {
	if err := cc.client.Set(ctx, catalogKeyPrefix+key, payload, cc.ttl).Err(); err != nil {
		slog.Warn("catalog cache set error", "key", key, "error", err)
	}
}

// Invalidate removes every cached variant of one business's catalog
// (unfiltered plus all category filters) by scanning for its prefix.
func (cc *CatalogCache) Invalidate(ctx context.Context, businessID uuid.UUID) {
	pattern := catalogKeyPrefix + businessID.String() + "*"
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := cc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("catalog cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := cc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("catalog cache delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("catalog cache invalidated", "business_id", businessID, "deleted", deleted)
	}
}
