// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package stats

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// AdminStats computes the platform-wide aggregate in one round trip.
func (repository *PostgresRepository) AdminStats(ctx context.Context) (*AdminStats, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM core.post),
			(SELECT COUNT(*) FROM users.account),
			(SELECT COUNT(*) FROM core.comment),
			(SELECT COUNT(*) FROM core.writerapplication WHERE status = 'pending')`

	result := &AdminStats{}
	err := repository.pool.QueryRow(ctx, query).Scan(
		&result.TotalPosts,
		&result.TotalUsers,
		&result.TotalComments,
		&result.PendingApplications,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_stats_repo_admin_failed: %w", err)
	}

	return result, nil
}

// WriterStats computes the engagement aggregate over the author's posts.
func (repository *PostgresRepository) WriterStats(ctx context.Context, authorID string) (*WriterStats, error) {
	const query = `
		SELECT
			COUNT(p.id),
			COALESCE(SUM((SELECT COUNT(*) FROM core.postreaction r WHERE r.postid = p.id AND r.kind = 'like')), 0),
			COALESCE(SUM((SELECT COUNT(*) FROM core.comment cm WHERE cm.postid = p.id)), 0),
			COALESCE(SUM(p.viewcount), 0)
		FROM core.post p
		WHERE p.authorid = $1`

	result := &WriterStats{}
	err := repository.pool.QueryRow(ctx, query, authorID).Scan(
		&result.Posts,
		&result.Likes,
		&result.Comments,
		&result.Views,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_stats_repo_writer_failed: %w", err)
	}

	return result, nil
}
