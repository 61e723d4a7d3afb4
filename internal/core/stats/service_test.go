// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package stats_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/internal/core/stats"
)

// fakeStatsRepository counts how often each aggregate is computed.
type fakeStatsRepository struct {
	adminCalls  int
	writerCalls int
}

func (f *fakeStatsRepository) AdminStats(_ context.Context) (*stats.AdminStats, error) {
	f.adminCalls++
	return &stats.AdminStats{TotalPosts: 7, TotalUsers: 3, TotalComments: 12, PendingApplications: 2}, nil
}

func (f *fakeStatsRepository) WriterStats(_ context.Context, _ string) (*stats.WriterStats, error) {
	f.writerCalls++
	return &stats.WriterStats{Posts: 4, Likes: 9, Comments: 5, Views: 100}, nil
}

// mapCache is an in-memory Cache without expiry.
type mapCache struct {
	entries map[string][]byte
	broken  bool
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string, target any) (bool, error) {
	if c.broken {
		return false, errors.New("cache down")
	}
	payload, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(payload, target)
}

func (c *mapCache) Set(_ context.Context, key string, value any) error {
	if c.broken {
		return errors.New("cache down")
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = payload
	return nil
}

/*
TestAdmin_ReadThrough verifies the aggregate is computed once and then
served from cache, including the pending application count.
*/
func TestAdmin_ReadThrough(t *testing.T) {
	ctx := context.Background()
	repo := &fakeStatsRepository{}
	service := stats.NewService(repo, newMapCache())

	first, err := service.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, first.PendingApplications)
	assert.Equal(t, 7, first.TotalPosts)

	second, err := service.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.adminCalls)
}

/*
TestWriter_ReadThrough verifies per-author caching.
*/
func TestWriter_ReadThrough(t *testing.T) {
	ctx := context.Background()
	repo := &fakeStatsRepository{}
	service := stats.NewService(repo, newMapCache())

	first, err := service.Writer(ctx, "author-1")
	require.NoError(t, err)
	assert.Equal(t, 100, first.Views)

	_, err = service.Writer(ctx, "author-1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.writerCalls)
}

/*
TestAdmin_BrokenCacheDegrades verifies a failing cache falls through to the
database instead of failing the request.
*/
func TestAdmin_BrokenCacheDegrades(t *testing.T) {
	ctx := context.Background()
	repo := &fakeStatsRepository{}
	cache := newMapCache()
	cache.broken = true
	service := stats.NewService(repo, cache)

	result, err := service.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalUsers)

	_, err = service.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.adminCalls)
}
