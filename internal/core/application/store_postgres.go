// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/dberr"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const applicationColumns = `id, userid, message, status, createdat, updatedat`

// scanApplication hydrates a single WriterApplication from a row.
func scanApplication(row pgx.Row) (*WriterApplication, error) {
	app := &WriterApplication{}
	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.Message,
		&app.Status,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Create persists a new pending application.
func (repository *PostgresRepository) Create(ctx context.Context, app *WriterApplication) error {
	const query = `
		INSERT INTO core.writerapplication (id, userid, message, status, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $5)`

	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query, app.ID, app.UserID, app.Message, app.Status, now)

	// The partial unique index on (userid) WHERE status = 'pending' catches
	// a concurrent submit that slipped past the service-level check.
	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict("You already have a pending application")
	}
	if err != nil {
		return fmt.Errorf("postgres_application_repo_create_failed: %w", err)
	}

	return nil
}

// FindPendingByUser returns the user's pending application, if any.
func (repository *PostgresRepository) FindPendingByUser(ctx context.Context, userID string) (*WriterApplication, error) {
	const query = `
		SELECT ` + applicationColumns + `
		FROM core.writerapplication
		WHERE userid = $1 AND status = 'pending'`

	app, err := scanApplication(repository.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Application")
		}
		return nil, fmt.Errorf("postgres_application_repo_find_pending_failed: %w", err)
	}

	return app, nil
}

// FindLatestByUser returns the user's most recent application.
func (repository *PostgresRepository) FindLatestByUser(ctx context.Context, userID string) (*WriterApplication, error) {
	const query = `
		SELECT ` + applicationColumns + `
		FROM core.writerapplication
		WHERE userid = $1
		ORDER BY createdat DESC
		LIMIT 1`

	app, err := scanApplication(repository.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Application")
		}
		return nil, fmt.Errorf("postgres_application_repo_find_latest_failed: %w", err)
	}

	return app, nil
}

// ListPending returns every pending application, oldest first.
func (repository *PostgresRepository) ListPending(ctx context.Context) ([]*WriterApplication, error) {
	const query = `
		SELECT a.id, a.userid, a.message, a.status, a.createdat, a.updatedat,
		       u.username, u.email
		FROM core.writerapplication a
		JOIN users.account u ON u.id = a.userid
		WHERE a.status = 'pending'
		ORDER BY a.createdat ASC`

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_application_repo_list_pending_failed: %w", err)
	}
	defer rows.Close()

	apps := make([]*WriterApplication, 0)
	for rows.Next() {
		app := &WriterApplication{Applicant: &ApplicantRef{}}
		err := rows.Scan(
			&app.ID,
			&app.UserID,
			&app.Message,
			&app.Status,
			&app.CreatedAt,
			&app.UpdatedAt,
			&app.Applicant.Username,
			&app.Applicant.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_application_repo_list_scan_failed: %w", err)
		}
		app.Applicant.ID = app.UserID
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_application_repo_list_rows_failed: %w", err)
	}

	return apps, nil
}

/*
Approve transitions the user's pending application to approved and promotes
the user to writer.

Description: Both writes run in one transaction. If either fails, neither
is committed, so an approved application with an unpromoted member (or the
reverse) is never observable.
*/
func (repository *PostgresRepository) Approve(ctx context.Context, userID string) (*WriterApplication, error) {

	// Establish Transactional Boundary
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_approve_tx")
	}
	defer transaction.Rollback(ctx)

	// Step 1: Flip the pending application to approved.
	app, err := repository.decide(ctx, transaction, userID, StatusApproved)
	if err != nil {
		return nil, err
	}

	// Step 2: Promote the member in the same changeset.
	tag, err := transaction.Exec(ctx,
		`UPDATE users.account SET role = $2, updatedat = NOW() WHERE id = $1`,
		userID, sec.RoleWriter,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "promote_applicant")
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound("User")
	}

	// Persist Atomic Changeset
	if err := transaction.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "commit_approve_tx")
	}

	return app, nil
}

// Reject transitions the user's pending application to rejected.
func (repository *PostgresRepository) Reject(ctx context.Context, userID string) (*WriterApplication, error) {
	app, err := repository.decide(ctx, repository.pool, userID, StatusRejected)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// decide moves the user's pending application to a terminal status and
// returns the updated row. NotFound when no pending application exists.
func (repository *PostgresRepository) decide(ctx context.Context, querier rowQuerier, userID string, status Status) (*WriterApplication, error) {
	const query = `
		UPDATE core.writerapplication
		SET status = $2, updatedat = NOW()
		WHERE userid = $1 AND status = 'pending'
		RETURNING ` + applicationColumns

	app, err := scanApplication(querier.QueryRow(ctx, query, userID, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Pending application")
		}
		return nil, fmt.Errorf("postgres_application_repo_decide_failed: %w", err)
	}

	return app, nil
}
