// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

/*
Package post implements the publishing core of the Inkwell platform.

It owns the Post aggregate together with its comments and its per-user
like/dislike reactions, and exposes the public reading surface, the writer
workspace, and the administrative moderation operations.

# Architecture

Reactions are stored per (post, user) pair and mutated only through an atomic
toggle, so a reader can never observe a user on both sides at once.
*/
package post

import (
	"time"
)

// # Domain Entities

// ReactionKind identifies which side of the reaction pair a user is on.
type ReactionKind string

const (
	// ReactionLike marks approval of a post.
	ReactionLike ReactionKind = "like"
	// ReactionDislike marks disapproval of a post.
	ReactionDislike ReactionKind = "dislike"
)

// IsValid reports whether the kind is a member of the closed reaction set.
func (kind ReactionKind) IsValid() bool {
	return kind == ReactionLike || kind == ReactionDislike
}

// Opposite returns the other side of the reaction pair.
func (kind ReactionKind) Opposite() ReactionKind {
	if kind == ReactionLike {
		return ReactionDislike
	}
	return ReactionLike
}

// AuthorRef is the embedded author identity attached to posts and comments.
type AuthorRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// CategoryRef is the embedded category attached to posts.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Post is authored content owned by exactly one author and filed under
// exactly one category.
type Post struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Excerpt string `json:"excerpt"`

	// ContentHTML is the sanitized rendering of Content. It is populated
	// only on detail responses, never persisted.
	ContentHTML string `json:"content_html,omitempty"`

	Published bool `json:"published"`

	AuthorID string      `json:"author_id"`
	Author   *AuthorRef  `json:"author,omitempty"`
	Category CategoryRef `json:"category"`

	LikeCount    int `json:"like_count"`
	DislikeCount int `json:"dislike_count"`
	CommentCount int `json:"comment_count"`
	ViewCount    int `json:"view_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment belongs to exactly one post and one authoring user. Comments are
// immutable once created and disappear only when their post (or author) does.
type Comment struct {
	ID        string     `json:"id"`
	PostID    string     `json:"post_id"`
	AuthorID  string     `json:"author_id"`
	Author    *AuthorRef `json:"author,omitempty"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
}

// PostDetail is the full reading view of a single post.
type PostDetail struct {
	Post

	Comments []*Comment `json:"comments"`

	// ViewerReaction is the calling user's current reaction, empty when the
	// viewer is anonymous or has not reacted.
	ViewerReaction ReactionKind `json:"viewer_reaction,omitempty"`
}

// # Field Identifiers

// Global field names for validation in the publishing domain.
const (
	FieldTitle      = "title"
	FieldContent    = "content"
	FieldExcerpt    = "excerpt"
	FieldCategoryID = "category_id"
	FieldPublished  = "published"
)
