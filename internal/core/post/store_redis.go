// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package post

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/inkwellhq/inkwell/internal/platform/constants"
)

// # View Registrar

// RedisViewRegistrar implements the ViewRegistrar interface on Redis.
//
// # Mechanics
//
// A SETNX with TTL marks the (post, viewer) pair as seen. The first writer
// of the key wins and counts the view; everyone else inside the dedup window
// is a repeat visit. Expiry reopens the window without any cleanup job.
type RedisViewRegistrar struct {
	client *redis.Client
}

// NewViewRegistrar creates a Redis-backed view deduplicator.
func NewViewRegistrar(client *redis.Client) *RedisViewRegistrar {
	return &RedisViewRegistrar{client: client}
}

// FirstView reports whether this is the viewer's first visit to the post
// within the dedup window.
func (registrar *RedisViewRegistrar) FirstView(ctx context.Context, postID, viewerKey string) (bool, error) {
	key := constants.RedisPrefixPostView + postID + ":" + viewerKey

	first, err := registrar.client.SetNX(ctx, key, 1, constants.PostViewDedupTTL).Result()
	if err != nil {
		return false, fmt.Errorf("redis_view_registrar_setnx_failed: %w", err)
	}

	return first, nil
}
