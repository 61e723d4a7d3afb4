// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package stats

import "context"

// Repository defines the aggregation queries behind the dashboards.
type Repository interface {

	// AdminStats computes the platform-wide aggregate.
	AdminStats(ctx context.Context) (*AdminStats, error)

	// WriterStats computes the engagement aggregate over the author's posts.
	WriterStats(ctx context.Context, authorID string) (*WriterStats, error)
}

// Cache is a short-lived store for computed aggregates.
//
// A miss is reported as (false, nil); errors are reserved for transport
// failures so callers can fall through to the database on either.
type Cache interface {
	Get(ctx context.Context, key string, target any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}
