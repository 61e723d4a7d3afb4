// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package post_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/internal/core/post"
	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/pkg/pagination"
)

// fakePostRepository is an in-memory PostRepository. Reactions are a map of
// userID to kind per post, which structurally rules out a user holding both
// sides; the toggle logic mirrors the production transaction.
type fakePostRepository struct {
	posts     map[string]*post.Post
	reactions map[string]map[string]post.ReactionKind
}

func newFakePostRepository() *fakePostRepository {
	return &fakePostRepository{
		posts:     make(map[string]*post.Post),
		reactions: make(map[string]map[string]post.ReactionKind),
	}
}

func (f *fakePostRepository) add(p *post.Post) {
	f.posts[p.ID] = p
	f.reactions[p.ID] = make(map[string]post.ReactionKind)
}

func (f *fakePostRepository) snapshot(id string) (*post.Post, error) {
	stored, ok := f.posts[id]
	if !ok {
		return nil, apperr.NotFound("Post")
	}

	copied := *stored
	copied.LikeCount, copied.DislikeCount = 0, 0
	for _, kind := range f.reactions[id] {
		if kind == post.ReactionLike {
			copied.LikeCount++
		} else {
			copied.DislikeCount++
		}
	}
	return &copied, nil
}

func (f *fakePostRepository) Create(_ context.Context, p *post.Post) error {
	f.add(p)
	return nil
}

func (f *fakePostRepository) FindByID(_ context.Context, id string) (*post.Post, error) {
	return f.snapshot(id)
}

func (f *fakePostRepository) ListPublic(_ context.Context, _ pagination.Params) ([]*post.Post, int, error) {
	result := make([]*post.Post, 0)
	for id, stored := range f.posts {
		if stored.Published {
			copied, _ := f.snapshot(id)
			result = append(result, copied)
		}
	}
	return result, len(result), nil
}

func (f *fakePostRepository) ListByAuthor(_ context.Context, authorID string, _ pagination.Params) ([]*post.Post, int, error) {
	result := make([]*post.Post, 0)
	for id, stored := range f.posts {
		if stored.AuthorID == authorID {
			copied, _ := f.snapshot(id)
			result = append(result, copied)
		}
	}
	return result, len(result), nil
}

func (f *fakePostRepository) ListAll(_ context.Context, _ pagination.Params) ([]*post.Post, int, error) {
	result := make([]*post.Post, 0)
	for id := range f.posts {
		copied, _ := f.snapshot(id)
		result = append(result, copied)
	}
	return result, len(result), nil
}

func (f *fakePostRepository) Update(_ context.Context, p *post.Post) error {
	stored, ok := f.posts[p.ID]
	if !ok {
		return apperr.NotFound("Post")
	}
	stored.Title = p.Title
	stored.Content = p.Content
	stored.Excerpt = p.Excerpt
	stored.Category = p.Category
	return nil
}

func (f *fakePostRepository) SetPublished(_ context.Context, id string, published bool) (*post.Post, error) {
	stored, ok := f.posts[id]
	if !ok {
		return nil, apperr.NotFound("Post")
	}
	stored.Published = published
	return f.snapshot(id)
}

func (f *fakePostRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return apperr.NotFound("Post")
	}
	delete(f.posts, id)
	delete(f.reactions, id)
	return nil
}

func (f *fakePostRepository) IncrementViews(_ context.Context, id string) error {
	stored, ok := f.posts[id]
	if !ok {
		return apperr.NotFound("Post")
	}
	stored.ViewCount++
	return nil
}

func (f *fakePostRepository) ToggleReaction(_ context.Context, postID, userID string, kind post.ReactionKind) (*post.Post, error) {
	if _, ok := f.posts[postID]; !ok {
		return nil, apperr.NotFound("Post")
	}

	current, has := f.reactions[postID][userID]
	if has && current == kind {
		delete(f.reactions[postID], userID)
	} else {
		f.reactions[postID][userID] = kind
	}

	return f.snapshot(postID)
}

func (f *fakePostRepository) FindReaction(_ context.Context, postID, userID string) (post.ReactionKind, error) {
	return f.reactions[postID][userID], nil
}

// fakeCommentRepository is an in-memory CommentRepository.
type fakeCommentRepository struct {
	comments map[string][]*post.Comment
}

func newFakeCommentRepository() *fakeCommentRepository {
	return &fakeCommentRepository{comments: make(map[string][]*post.Comment)}
}

func (f *fakeCommentRepository) Create(_ context.Context, comment *post.Comment) error {
	f.comments[comment.PostID] = append(f.comments[comment.PostID], comment)
	return nil
}

func (f *fakeCommentRepository) ListByPost(_ context.Context, postID string) ([]*post.Comment, error) {
	return f.comments[postID], nil
}

// fakeViewRegistrar counts each (post, viewer) pair once.
type fakeViewRegistrar struct {
	seen map[string]bool
}

func newFakeViewRegistrar() *fakeViewRegistrar {
	return &fakeViewRegistrar{seen: make(map[string]bool)}
}

func (f *fakeViewRegistrar) FirstView(_ context.Context, postID, viewerKey string) (bool, error) {
	key := postID + ":" + viewerKey
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

func newTestPostService() (*post.Service, *fakePostRepository, *fakeCommentRepository) {
	posts := newFakePostRepository()
	comments := newFakeCommentRepository()
	return post.NewService(posts, comments, newFakeViewRegistrar()), posts, comments
}

func seedPost(repo *fakePostRepository, id string, published bool) {
	repo.add(&post.Post{
		ID:        id,
		Title:     "A Post",
		Content:   "Body **text**.",
		Excerpt:   "Body.",
		Published: published,
		AuthorID:  "author-1",
		Category:  post.CategoryRef{ID: "cat-1", Name: "Technology", Slug: "technology"},
	})
}

/*
TestToggleReaction_RoundTrip verifies that toggling the same side twice
restores the original state.
*/
func TestToggleReaction_RoundTrip(t *testing.T) {
	ctx := context.Background()
	service, posts, _ := newTestPostService()
	seedPost(posts, "post-1", true)

	first, err := service.ToggleReaction(ctx, "post-1", "user-1", post.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, 1, first.LikeCount)
	assert.Equal(t, 0, first.DislikeCount)

	second, err := service.ToggleReaction(ctx, "post-1", "user-1", post.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, 0, second.LikeCount)
	assert.Equal(t, 0, second.DislikeCount)
}

/*
TestToggleReaction_SwitchClearsOpposite verifies that reacting the other way
moves the user across, never leaving them on both sides.
*/
func TestToggleReaction_SwitchClearsOpposite(t *testing.T) {
	ctx := context.Background()
	service, posts, _ := newTestPostService()
	seedPost(posts, "post-1", true)

	_, err := service.ToggleReaction(ctx, "post-1", "user-1", post.ReactionLike)
	require.NoError(t, err)

	switched, err := service.ToggleReaction(ctx, "post-1", "user-1", post.ReactionDislike)
	require.NoError(t, err)

	assert.Equal(t, 0, switched.LikeCount)
	assert.Equal(t, 1, switched.DislikeCount)

	reaction, err := posts.FindReaction(ctx, "post-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, post.ReactionDislike, reaction)
}

/*
TestToggleReaction_DisjointAcrossUsers verifies counts aggregate per user
and the sets stay disjoint under mixed activity.
*/
func TestToggleReaction_DisjointAcrossUsers(t *testing.T) {
	ctx := context.Background()
	service, posts, _ := newTestPostService()
	seedPost(posts, "post-1", true)

	_, err := service.ToggleReaction(ctx, "post-1", "user-1", post.ReactionLike)
	require.NoError(t, err)
	_, err = service.ToggleReaction(ctx, "post-1", "user-2", post.ReactionDislike)
	require.NoError(t, err)

	updated, err := service.ToggleReaction(ctx, "post-1", "user-3", post.ReactionLike)
	require.NoError(t, err)

	assert.Equal(t, 2, updated.LikeCount)
	assert.Equal(t, 1, updated.DislikeCount)
}

/*
TestToggleReaction_Failures covers the unknown post and the invalid kind.
*/
func TestToggleReaction_Failures(t *testing.T) {
	ctx := context.Background()
	service, posts, _ := newTestPostService()
	seedPost(posts, "post-1", true)

	_, err := service.ToggleReaction(ctx, "missing", "user-1", post.ReactionLike)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.ToggleReaction(ctx, "post-1", "user-1", post.ReactionKind("love"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestAddComment covers trimming, blank rejection, and appending.
*/
func TestAddComment(t *testing.T) {
	ctx := context.Background()
	service, posts, comments := newTestPostService()
	seedPost(posts, "post-1", true)

	t.Run("whitespace_only_rejected", func(t *testing.T) {
		_, err := service.AddComment(ctx, "post-1", "user-1", "   ")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		assert.Empty(t, comments.comments["post-1"])
	})

	t.Run("unknown_post_not_found", func(t *testing.T) {
		_, err := service.AddComment(ctx, "missing", "user-1", "nice post")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("appends_exactly_one", func(t *testing.T) {
		created, err := service.AddComment(ctx, "post-1", "user-1", "  nice post  ")
		require.NoError(t, err)

		assert.Equal(t, "nice post", created.Content)
		assert.Equal(t, "post-1", created.PostID)
		assert.Len(t, comments.comments["post-1"], 1)
	})
}

/*
TestGetPublic covers draft hiding, markdown rendering, viewer reaction, and
view deduplication.
*/
func TestGetPublic(t *testing.T) {
	ctx := context.Background()
	service, posts, _ := newTestPostService()
	seedPost(posts, "post-1", true)
	seedPost(posts, "draft-1", false)

	t.Run("draft_is_invisible", func(t *testing.T) {
		_, err := service.GetPublic(ctx, "draft-1", "", "anon-ip")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("renders_markdown", func(t *testing.T) {
		detail, err := service.GetPublic(ctx, "post-1", "", "anon-ip")
		require.NoError(t, err)
		assert.Contains(t, detail.ContentHTML, "<strong>text</strong>")
	})

	t.Run("view_counted_once_per_viewer", func(t *testing.T) {
		before := posts.posts["post-1"].ViewCount

		_, err := service.GetPublic(ctx, "post-1", "", "viewer-a")
		require.NoError(t, err)
		_, err = service.GetPublic(ctx, "post-1", "", "viewer-a")
		require.NoError(t, err)
		_, err = service.GetPublic(ctx, "post-1", "", "viewer-b")
		require.NoError(t, err)

		assert.Equal(t, before+2, posts.posts["post-1"].ViewCount)
	})

	t.Run("viewer_reaction_populated", func(t *testing.T) {
		_, err := service.ToggleReaction(ctx, "post-1", "user-1", post.ReactionLike)
		require.NoError(t, err)

		detail, err := service.GetPublic(ctx, "post-1", "user-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, post.ReactionLike, detail.ViewerReaction)
	})
}

/*
TestOwnership covers the author-or-admin rule on update, visibility, and delete.
*/
func TestOwnership(t *testing.T) {
	ctx := context.Background()
	service, posts, _ := newTestPostService()
	seedPost(posts, "post-1", true)

	update := post.UpdatePostInput{Title: "New", Content: "New body", Excerpt: "New.", CategoryID: "cat-1"}

	t.Run("stranger_forbidden", func(t *testing.T) {
		_, err := service.Update(ctx, "stranger", sec.RoleWriter, "post-1", update)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

		err = service.Delete(ctx, "stranger", sec.RoleWriter, "post-1")
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("owner_allowed", func(t *testing.T) {
		updated, err := service.Update(ctx, "author-1", sec.RoleWriter, "post-1", update)
		require.NoError(t, err)
		assert.Equal(t, "New", updated.Title)
	})

	t.Run("admin_bypasses_ownership", func(t *testing.T) {
		hidden, err := service.SetVisibility(ctx, "moderator", sec.RoleAdmin, "post-1", false)
		require.NoError(t, err)
		assert.False(t, hidden.Published)

		err = service.Delete(ctx, "moderator", sec.RoleAdmin, "post-1")
		require.NoError(t, err)

		_, err = service.GetPublic(ctx, "post-1", "", "anon")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}
