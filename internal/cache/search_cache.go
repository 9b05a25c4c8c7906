// Package cache adds a Redis-backed cache in front of the listing search
// call. Cache trouble is never fatal: every failure degrades to a direct
// upstream call.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MaximEdogawa/pengui-sub000/internal/market"
	"github.com/MaximEdogawa/pengui-sub000/internal/model"
)

const keyPrefix = "offersearch:"

// SearchCache decorates a SearchFunc with read-through caching.
type SearchCache struct {
	client *redis.Client
	search market.SearchFunc
	ttl    time.Duration
	logger *slog.Logger
}

// NewSearchCache connects to Redis and wraps the given search function.
func NewSearchCache(addr, password string, db int, ttl time.Duration, search market.SearchFunc, logger *slog.Logger) *SearchCache {
	if logger == nil {
		logger = slog.Default()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &SearchCache{
		client: client,
		search: search,
		ttl:    ttl,
		logger: logger,
	}
}

// Search returns a cached response when one exists, otherwise calls upstream
// and stores the result for the configured TTL.
func (c *SearchCache) Search(ctx context.Context, params model.SearchParams) (model.SearchResponse, error) {
	key, err := cacheKey(params)
	if err != nil {
		return c.search(ctx, params)
	}

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var resp model.SearchResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return resp, nil
		}
		// A corrupt entry is dropped and refetched.
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("search cache read failed, going upstream", "error", err)
	}

	resp, err := c.search(ctx, params)
	if err != nil {
		return model.SearchResponse{}, err
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("search cache write failed", "error", err)
		}
	}
	return resp, nil
}

// Invalidate drops the cached response for one parameter set.
func (c *SearchCache) Invalidate(ctx context.Context, params model.SearchParams) error {
	key, err := cacheKey(params)
	if err != nil {
		return err
	}
	return c.client.Del(ctx, key).Err()
}

// Ping verifies the Redis connection.
func (c *SearchCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the Redis connection.
func (c *SearchCache) Close() error {
	return c.client.Close()
}

// cacheKey canonicalizes parameters into a stable key. Struct field order is
// fixed, so JSON marshaling is deterministic.
func cacheKey(params model.SearchParams) (string, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("building cache key: %w", err)
	}
	return keyPrefix + string(data), nil
}
