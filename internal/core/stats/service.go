// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package stats

import (
	"context"
	"fmt"

	"github.com/inkwellhq/inkwell/internal/platform/constants"
)

// Service implements the dashboard use cases with read-through caching.
type Service struct {
	statsRepository Repository
	cache           Cache
}

// NewService constructs a new stats [Service].
func NewService(repo Repository, cache Cache) *Service {
	return &Service{statsRepository: repo, cache: cache}
}

/*
Admin returns the platform-wide dashboard aggregate.

Description: Served from the Redis cache when fresh, recomputed from the
database otherwise. A broken cache degrades to a direct computation, it
never fails the request.
*/
func (service *Service) Admin(ctx context.Context) (*AdminStats, error) {
	key := constants.RedisPrefixStats + "admin"

	cached := &AdminStats{}
	if hit, err := service.cache.Get(ctx, key, cached); err == nil && hit {
		return cached, nil
	}

	computed, err := service.statsRepository.AdminStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats_service_admin_failed: %w", err)
	}

	_ = service.cache.Set(ctx, key, computed)

	return computed, nil
}

// Writer returns the engagement aggregate over the caller's own posts.
func (service *Service) Writer(ctx context.Context, authorID string) (*WriterStats, error) {
	key := constants.RedisPrefixStats + "writer:" + authorID

	cached := &WriterStats{}
	if hit, err := service.cache.Get(ctx, key, cached); err == nil && hit {
		return cached, nil
	}

	computed, err := service.statsRepository.WriterStats(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("stats_service_writer_failed: %w", err)
	}

	_ = service.cache.Set(ctx, key, computed)

	return computed, nil
}
