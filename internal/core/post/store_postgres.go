// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/dberr"
	"github.com/inkwellhq/inkwell/pkg/pagination"
)

// # Post Repository

// PostgresPostRepository implements the PostRepository interface using pgx.
type PostgresPostRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository creates a new PostgreSQL implementation of the PostRepository.
func NewPostRepository(pool *pgxpool.Pool) *PostgresPostRepository {
	return &PostgresPostRepository{pool: pool}
}

// postSelect is the shared projection for reading posts with author,
// category, and reaction/comment counts populated.
const postSelect = `
	SELECT
		p.id, p.title, p.content, p.excerpt, p.published,
		p.authorid, u.username,
		p.categoryid, c.name, c.slug,
		p.viewcount, p.createdat, p.updatedat,
		(SELECT COUNT(*) FROM core.postreaction r WHERE r.postid = p.id AND r.kind = 'like')    AS likecount,
		(SELECT COUNT(*) FROM core.postreaction r WHERE r.postid = p.id AND r.kind = 'dislike') AS dislikecount,
		(SELECT COUNT(*) FROM core.comment cm WHERE cm.postid = p.id)                           AS commentcount
	FROM core.post p
	JOIN users.account u ON u.id = p.authorid
	JOIN core.category c ON c.id = p.categoryid`

// scanPost hydrates a single Post from a row produced by postSelect.
func scanPost(row pgx.Row) (*Post, error) {
	post := &Post{Author: &AuthorRef{}}
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Excerpt,
		&post.Published,
		&post.AuthorID,
		&post.Author.Username,
		&post.Category.ID,
		&post.Category.Name,
		&post.Category.Slug,
		&post.ViewCount,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.LikeCount,
		&post.DislikeCount,
		&post.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	post.Author.ID = post.AuthorID
	return post, nil
}

// Create persists a brand-new post record.
func (repository *PostgresPostRepository) Create(ctx context.Context, post *Post) error {
	const query = `
		INSERT INTO core.post (id, title, content, excerpt, published, authorid, categoryid, viewcount, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $8)`

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		post.Excerpt,
		post.Published,
		post.AuthorID,
		post.Category.ID,
		now,
	)
	if dberr.IsForeignKeyViolation(err) {
		return apperr.NotFound("Category")
	}
	if err != nil {
		return fmt.Errorf("postgres_post_repo_create_failed: %w", err)
	}

	return nil
}

// FindByID returns a single post with author, category, and counts populated.
func (repository *PostgresPostRepository) FindByID(ctx context.Context, id string) (*Post, error) {
	query := postSelect + ` WHERE p.id = $1`

	post, err := scanPost(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Post")
		}
		return nil, fmt.Errorf("postgres_post_repo_find_failed: %w", err)
	}

	return post, nil
}

// ListPublic returns published posts, newest first.
func (repository *PostgresPostRepository) ListPublic(ctx context.Context, params pagination.Params) ([]*Post, int, error) {
	return repository.list(ctx, `WHERE p.published`, params)
}

// ListByAuthor returns every post owned by authorID, newest first.
func (repository *PostgresPostRepository) ListByAuthor(ctx context.Context, authorID string, params pagination.Params) ([]*Post, int, error) {
	return repository.list(ctx, `WHERE p.authorid = $3`, params, authorID)
}

// ListAll returns every post regardless of visibility, newest first.
func (repository *PostgresPostRepository) ListAll(ctx context.Context, params pagination.Params) ([]*Post, int, error) {
	return repository.list(ctx, ``, params)
}

// list runs postSelect with the given filter, ordering, and paging, then a
// matching COUNT for the pagination metadata. The filter may reference $3+
// for its own arguments; $1 and $2 are reserved for LIMIT and OFFSET.
func (repository *PostgresPostRepository) list(ctx context.Context, filter string, params pagination.Params, args ...any) ([]*Post, int, error) {
	query := postSelect + ` ` + filter + `
		ORDER BY p.createdat DESC
		LIMIT $1 OFFSET $2`

	queryArgs := append([]any{params.Limit, params.Offset()}, args...)

	rows, err := repository.pool.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_list_failed: %w", err)
	}
	defer rows.Close()

	posts := make([]*Post, 0, params.Limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_post_repo_list_scan_failed: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_list_rows_failed: %w", err)
	}

	// Total count over the same filter, without the paging arguments.
	countQuery := `SELECT COUNT(*) FROM core.post p ` + countFilter(filter)

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_count_failed: %w", err)
	}

	return posts, total, nil
}

// countFilter rebinds a list filter's $3+ placeholders to $1+ for the
// standalone COUNT query.
func countFilter(filter string) string {
	switch filter {
	case `WHERE p.authorid = $3`:
		return `WHERE p.authorid = $1`
	default:
		return filter
	}
}

// Update persists changes to the post's content fields.
func (repository *PostgresPostRepository) Update(ctx context.Context, post *Post) error {
	const query = `
		UPDATE core.post
		SET title = $2, content = $3, excerpt = $4, categoryid = $5, updatedat = NOW()
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		post.Excerpt,
		post.Category.ID,
	)
	if dberr.IsForeignKeyViolation(err) {
		return apperr.NotFound("Category")
	}
	if err != nil {
		return fmt.Errorf("postgres_post_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}

	return nil
}

// SetPublished flips the visibility flag and returns the updated post.
func (repository *PostgresPostRepository) SetPublished(ctx context.Context, id string, published bool) (*Post, error) {
	const query = `
		UPDATE core.post
		SET published = $2, updatedat = NOW()
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, id, published)
	if err != nil {
		return nil, fmt.Errorf("postgres_post_repo_set_published_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound("Post")
	}

	return repository.FindByID(ctx, id)
}

// Delete removes the post. Comments and reactions go with it via the
// schema's cascade rules.
func (repository *PostgresPostRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM core.post WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_post")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}

	return nil
}

// IncrementViews bumps the monotonic view counter by one.
func (repository *PostgresPostRepository) IncrementViews(ctx context.Context, id string) error {
	const query = `
		UPDATE core.post
		SET viewcount = viewcount + 1
		WHERE id = $1`

	if _, err := repository.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("postgres_post_repo_increment_views_failed: %w", err)
	}

	return nil
}

/*
ToggleReaction atomically flips the (postID, userID) reaction.

Description: The current reaction row is read under a row lock, then either
deleted (toggle off) or upserted to the requested side. The upsert's
ON CONFLICT clause overwrites the opposite side, so the composite primary
key guarantees a user is never on both sides. All of it commits as one
transaction.

Returns:
  - *Post: Post with reaction counts reflecting the new state
  - error: NotFound (post absent) or storage errors
*/
func (repository *PostgresPostRepository) ToggleReaction(ctx context.Context, postID, userID string, kind ReactionKind) (*Post, error) {

	// Establish Transactional Boundary
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_reaction_tx")
	}
	defer transaction.Rollback(ctx)

	// Step 1: Lock the post row so concurrent toggles serialize.
	var exists bool
	err = transaction.QueryRow(ctx,
		`SELECT true FROM core.post WHERE id = $1 FOR UPDATE`, postID,
	).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Post")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "lock_post")
	}

	// Step 2: Read the user's current reaction, if any.
	var current ReactionKind
	err = transaction.QueryRow(ctx,
		`SELECT kind FROM core.postreaction WHERE postid = $1 AND userid = $2`,
		postID, userID,
	).Scan(&current)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, dberr.Wrap(err, "read_reaction")
	}

	// Step 3: Toggle off, or set the requested side clearing the opposite.
	if current == kind {
		_, err = transaction.Exec(ctx,
			`DELETE FROM core.postreaction WHERE postid = $1 AND userid = $2`,
			postID, userID,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "remove_reaction")
		}
	} else {
		_, err = transaction.Exec(ctx,
			`INSERT INTO core.postreaction (postid, userid, kind, createdat)
			 VALUES ($1, $2, $3, NOW())
			 ON CONFLICT (postid, userid) DO UPDATE SET kind = EXCLUDED.kind, createdat = NOW()`,
			postID, userID, kind,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "set_reaction")
		}
	}

	// Step 4: Read the post back inside the same transaction so the counts
	// reflect the committed state.
	post, err := scanPost(transaction.QueryRow(ctx, postSelect+` WHERE p.id = $1`, postID))
	if err != nil {
		return nil, dberr.Wrap(err, "reread_post")
	}

	// Persist Atomic Changeset
	if err := transaction.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "commit_reaction_tx")
	}

	return post, nil
}

// FindReaction returns the user's current reaction, or "" when absent.
func (repository *PostgresPostRepository) FindReaction(ctx context.Context, postID, userID string) (ReactionKind, error) {
	const query = `SELECT kind FROM core.postreaction WHERE postid = $1 AND userid = $2`

	var kind ReactionKind
	err := repository.pool.QueryRow(ctx, query, postID, userID).Scan(&kind)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("postgres_post_repo_find_reaction_failed: %w", err)
	}

	return kind, nil
}

// # Comment Repository

// PostgresCommentRepository implements the CommentRepository interface using pgx.
type PostgresCommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new PostgreSQL implementation of the CommentRepository.
func NewCommentRepository(pool *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

// Create appends a comment to its post.
func (repository *PostgresCommentRepository) Create(ctx context.Context, comment *Comment) error {
	const query = `
		INSERT INTO core.comment (id, postid, authorid, content, createdat)
		VALUES ($1, $2, $3, $4, $5)`

	comment.CreatedAt = time.Now()

	_, err := repository.pool.Exec(ctx, query,
		comment.ID,
		comment.PostID,
		comment.AuthorID,
		comment.Content,
		comment.CreatedAt,
	)
	if dberr.IsForeignKeyViolation(err) {
		return apperr.NotFound("Post")
	}
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_create_failed: %w", err)
	}

	return nil
}

// ListByPost returns the post's comments in creation order.
func (repository *PostgresCommentRepository) ListByPost(ctx context.Context, postID string) ([]*Comment, error) {
	const query = `
		SELECT cm.id, cm.postid, cm.authorid, u.username, cm.content, cm.createdat
		FROM core.comment cm
		JOIN users.account u ON u.id = cm.authorid
		WHERE cm.postid = $1
		ORDER BY cm.createdat ASC`

	rows, err := repository.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		comment := &Comment{Author: &AuthorRef{}}
		err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.Author.Username,
			&comment.Content,
			&comment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_comment_repo_list_scan_failed: %w", err)
		}
		comment.Author.ID = comment.AuthorID
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_rows_failed: %w", err)
	}

	return comments, nil
}
