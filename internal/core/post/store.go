// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package post

import (
	"context"

	"github.com/inkwellhq/inkwell/pkg/pagination"
)

// # Post Data Access

// PostRepository defines the data access contract for the Post aggregate.
type PostRepository interface {

	// Create persists a brand-new post.
	Create(ctx context.Context, post *Post) error

	// FindByID returns a single post with author, category, and counts
	// populated.
	FindByID(ctx context.Context, id string) (*Post, error)

	// ListPublic returns published posts, newest first, with the total
	// count of the filtered set.
	ListPublic(ctx context.Context, params pagination.Params) ([]*Post, int, error)

	// ListByAuthor returns every post owned by authorID, newest first.
	ListByAuthor(ctx context.Context, authorID string, params pagination.Params) ([]*Post, int, error)

	// ListAll returns every post regardless of visibility, newest first.
	ListAll(ctx context.Context, params pagination.Params) ([]*Post, int, error)

	// Update persists changes to the post's content fields.
	Update(ctx context.Context, post *Post) error

	// SetPublished flips the visibility flag and returns the updated post.
	SetPublished(ctx context.Context, id string, published bool) (*Post, error)

	// Delete removes the post. Comments and reactions are removed by the
	// schema's cascade rules.
	Delete(ctx context.Context, id string) error

	// IncrementViews bumps the monotonic view counter by one.
	IncrementViews(ctx context.Context, id string) error

	// ToggleReaction atomically flips the (postID, userID) reaction:
	// toggling the side the user is already on removes it, any other state
	// sets the requested side and clears the opposite one. Returns the
	// updated post.
	ToggleReaction(ctx context.Context, postID, userID string, kind ReactionKind) (*Post, error)

	// FindReaction returns the user's current reaction on the post, or ""
	// when the user has not reacted.
	FindReaction(ctx context.Context, postID, userID string) (ReactionKind, error)
}

// # Comment Data Access

// CommentRepository defines the data access contract for comments.
type CommentRepository interface {

	// Create appends a comment to its post.
	Create(ctx context.Context, comment *Comment) error

	// ListByPost returns the post's comments in creation order with the
	// author reference populated.
	ListByPost(ctx context.Context, postID string) ([]*Comment, error)
}

// # View Deduplication

// ViewRegistrar decides whether a (post, viewer) pair counts as a fresh view.
//
// # Semantics
//
// FirstView returns true exactly once per pair within the dedup window, so
// reloading a page does not inflate the view counter.
type ViewRegistrar interface {
	FirstView(ctx context.Context, postID, viewerKey string) (bool, error)
}
