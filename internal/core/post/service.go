// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package post

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/markdown"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/internal/platform/validate"
	"github.com/inkwellhq/inkwell/pkg/pagination"
	"github.com/inkwellhq/inkwell/pkg/uuid"
)

// # Service Definition

// Service implements the publishing use cases: reading, reacting,
// commenting, the writer workspace, and administrative moderation.
type Service struct {
	postRepository    PostRepository
	commentRepository CommentRepository
	viewRegistrar     ViewRegistrar
}

// NewService constructs a new post [Service] with necessary dependencies.
func NewService(posts PostRepository, comments CommentRepository, views ViewRegistrar) *Service {
	return &Service{
		postRepository:    posts,
		commentRepository: comments,
		viewRegistrar:     views,
	}
}

// # Public Reading Surface

// ListPublic returns a page of published posts, newest first.
func (service *Service) ListPublic(ctx context.Context, params pagination.Params) ([]*Post, pagination.Meta, error) {
	posts, total, err := service.postRepository.ListPublic(ctx, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("post_service_list_public_failed: %w", err)
	}
	return posts, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
GetPublic returns the full reading view of a published post.

Description: Loads the post with comments, renders the markdown body to
sanitized HTML, reports the viewer's own reaction, and records a
deduplicated view. Unpublished posts are invisible here regardless of the
viewer, so drafts never leak through the public surface.

Parameters:
  - viewerID: authenticated user ID, empty for anonymous viewers
  - viewerKey: dedup identity for the view counter (user ID or client IP)

Returns:
  - *PostDetail: Post with comments, rendered HTML, and viewer reaction
  - error: NotFound or storage errors
*/
func (service *Service) GetPublic(ctx context.Context, postID, viewerID, viewerKey string) (*PostDetail, error) {
	post, err := service.postRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.Published {
		return nil, apperr.NotFound("Post")
	}

	// View recording is best effort. A failed dedup lookup must never turn
	// a successful read into an error response.
	if viewerKey != "" {
		if first, err := service.viewRegistrar.FirstView(ctx, postID, viewerKey); err == nil && first {
			if err := service.postRepository.IncrementViews(ctx, postID); err == nil {
				post.ViewCount++
			}
		}
	}

	comments, err := service.commentRepository.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("post_service_load_comments_failed: %w", err)
	}

	detail := &PostDetail{Post: *post, Comments: comments}
	detail.ContentHTML = markdown.Render(post.Content)

	if viewerID != "" {
		reaction, err := service.postRepository.FindReaction(ctx, postID, viewerID)
		if err != nil {
			return nil, fmt.Errorf("post_service_load_reaction_failed: %w", err)
		}
		detail.ViewerReaction = reaction
	}

	return detail, nil
}

// # Reactions & Comments

/*
ToggleReaction flips the caller's like or dislike on a post.

Description: If the caller is already on the requested side it is removed
(toggle off). Otherwise the requested side is set and the opposite side is
cleared in the same transaction, so the caller is never on both sides.

Returns:
  - *Post: Updated post with fresh reaction counts
  - error: ValidationError (unknown kind), NotFound, or storage errors
*/
func (service *Service) ToggleReaction(ctx context.Context, postID, userID string, kind ReactionKind) (*Post, error) {
	if !kind.IsValid() {
		return nil, validate.RequiredError("reaction", "Must be one of: like, dislike")
	}

	post, err := service.postRepository.ToggleReaction(ctx, postID, userID, kind)
	if err != nil {
		return nil, err
	}

	return post, nil
}

/*
AddComment appends a comment to a post.

Description: Content must be non-empty after trimming whitespace. The
comment does not affect the post's reaction state.

Returns:
  - *Comment: Created comment
  - error: ValidationError (blank content), NotFound, or storage errors
*/
func (service *Service) AddComment(ctx context.Context, postID, authorID, content string) (*Comment, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, validate.RequiredError(FieldContent, "Comment content must not be empty")
	}

	// The post must resolve before anything is written.
	if _, err := service.postRepository.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:       uuid.New(),
		PostID:   postID,
		AuthorID: authorID,
		Content:  trimmed,
	}

	if err := service.commentRepository.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("post_service_add_comment_failed: %w", err)
	}

	return comment, nil
}

// # Writer Workspace

// CreatePostInput holds the fields required to author a new post.
type CreatePostInput struct {
	Title      string
	Content    string
	Excerpt    string
	CategoryID string
	Published  bool
}

// UpdatePostInput holds the mutable content fields of an existing post.
type UpdatePostInput struct {
	Title      string
	Content    string
	Excerpt    string
	CategoryID string
}

// ListByAuthor returns a page of the author's own posts, drafts included.
func (service *Service) ListByAuthor(ctx context.Context, authorID string, params pagination.Params) ([]*Post, pagination.Meta, error) {
	posts, total, err := service.postRepository.ListByAuthor(ctx, authorID, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("post_service_list_by_author_failed: %w", err)
	}
	return posts, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// Create authors a new post owned by authorID.
func (service *Service) Create(ctx context.Context, authorID string, input CreatePostInput) (*Post, error) {
	post := &Post{
		ID:        uuid.New(),
		Title:     input.Title,
		Content:   input.Content,
		Excerpt:   input.Excerpt,
		Published: input.Published,
		AuthorID:  authorID,
		Category:  CategoryRef{ID: input.CategoryID},
	}

	if err := service.postRepository.Create(ctx, post); err != nil {
		return nil, err
	}

	// Re-read so the response carries the populated author and category.
	return service.postRepository.FindByID(ctx, post.ID)
}

/*
Update changes the content fields of an existing post.

Description: Writers may only touch their own posts. Admins bypass the
ownership check for moderation.

Returns:
  - *Post: Updated post
  - error: NotFound, Forbidden (not owner), or storage errors
*/
func (service *Service) Update(ctx context.Context, callerID string, callerRole sec.UserRole, postID string, input UpdatePostInput) (*Post, error) {
	post, err := service.authorizeOwner(ctx, callerID, callerRole, postID)
	if err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Content = input.Content
	post.Excerpt = input.Excerpt
	post.Category = CategoryRef{ID: input.CategoryID}

	if err := service.postRepository.Update(ctx, post); err != nil {
		return nil, err
	}

	return service.postRepository.FindByID(ctx, postID)
}

/*
SetVisibility flips the published flag of a post.

Description: Available to the post's author and to admins. Hiding a post
removes it from the public surface without touching its content, comments,
or reactions.
*/
func (service *Service) SetVisibility(ctx context.Context, callerID string, callerRole sec.UserRole, postID string, published bool) (*Post, error) {
	if _, err := service.authorizeOwner(ctx, callerID, callerRole, postID); err != nil {
		return nil, err
	}

	return service.postRepository.SetPublished(ctx, postID, published)
}

/*
Delete permanently removes a post.

Description: Available to the post's author and to admins. The schema
cascades the deletion to the post's comments and reactions.
*/
func (service *Service) Delete(ctx context.Context, callerID string, callerRole sec.UserRole, postID string) error {
	if _, err := service.authorizeOwner(ctx, callerID, callerRole, postID); err != nil {
		return err
	}

	return service.postRepository.Delete(ctx, postID)
}

// # Administrative Surface

// ListAll returns a page of every post, drafts included. Admin use only,
// gated at the router.
func (service *Service) ListAll(ctx context.Context, params pagination.Params) ([]*Post, pagination.Meta, error) {
	posts, total, err := service.postRepository.ListAll(ctx, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("post_service_list_all_failed: %w", err)
	}
	return posts, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// authorizeOwner loads the post and verifies the caller may mutate it.
//
// The 403 never reveals who the actual owner is.
func (service *Service) authorizeOwner(ctx context.Context, callerID string, callerRole sec.UserRole, postID string) (*Post, error) {
	post, err := service.postRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != callerID && !callerRole.AtLeast(sec.RoleAdmin) {
		return nil, apperr.Forbidden("Insufficient permissions")
	}

	return post, nil
}
