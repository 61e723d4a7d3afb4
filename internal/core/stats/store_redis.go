// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/inkwellhq/inkwell/internal/platform/constants"
)

// RedisCache implements the Cache interface with JSON values and a fixed TTL.
type RedisCache struct {
	client *redis.Client
}

// NewCache creates a Redis-backed stats cache.
func NewCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get loads a cached aggregate into target. A miss returns (false, nil).
func (cache *RedisCache) Get(ctx context.Context, key string, target any) (bool, error) {
	payload, err := cache.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis_stats_cache_get_failed: %w", err)
	}

	if err := json.Unmarshal(payload, target); err != nil {
		// A corrupt entry is treated as a miss and overwritten by the caller.
		return false, nil
	}

	return true, nil
}

// Set stores an aggregate with the standard stats TTL.
func (cache *RedisCache) Set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis_stats_cache_marshal_failed: %w", err)
	}

	if err := cache.client.Set(ctx, key, payload, constants.StatsCacheTTL).Err(); err != nil {
		return fmt.Errorf("redis_stats_cache_set_failed: %w", err)
	}

	return nil
}
