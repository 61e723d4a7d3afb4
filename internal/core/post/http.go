// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package post

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellhq/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwellhq/inkwell/internal/platform/request"
	"github.com/inkwellhq/inkwell/internal/platform/respond"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/internal/platform/validate"
	"github.com/inkwellhq/inkwell/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements publishing-related HTTP endpoints.
//
// # Scope
//
// Three surfaces share this handler: the anonymous reading surface, the
// authenticated reaction/comment endpoints, and the writer workspace. The
// admin listing is exposed separately through [Handler.AdminRoutes].
type Handler struct {
	postService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{postService: service}
}

// Routes returns a [chi.Router] with the public and member-facing routes.
//
// # Endpoints
//   - GET  /          : Lists published posts (anonymous).
//   - GET  /{id}      : Post detail with comments (anonymous, counts a view).
//   - POST /{id}/like     : Toggles the caller's like (authenticated).
//   - POST /{id}/dislike  : Toggles the caller's dislike (authenticated).
//   - POST /{id}/comments : Appends a comment (authenticated).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/", handler.listPublic)
	router.Get("/{id}", handler.getDetail)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{id}/like", handler.toggleLike)
		r.Post("/{id}/dislike", handler.toggleDislike)
		r.Post("/{id}/comments", handler.addComment)
	})

	return router
}

// WriterRoutes returns the writer workspace routes.
//
// # Endpoints
//   - GET    /           : Lists the caller's own posts, drafts included.
//   - POST   /           : Authors a new post.
//   - PUT    /{id}       : Updates a post (owner or admin).
//   - PUT    /{id}/visibility : Flips the published flag (owner or admin).
//   - DELETE /{id}       : Deletes a post (owner or admin).
//
// The caller mounts this router behind [middleware.RequireRole] for writers.
func (handler *Handler) WriterRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listMine)
	router.Post("/", handler.create)
	router.Put("/{id}", handler.update)
	router.Put("/{id}/visibility", handler.setVisibility)
	router.Delete("/{id}", handler.delete)

	return router
}

// AdminRoutes returns the moderation listing mounted under the admin surface.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listAll)

	return router
}

// # Request Payloads

type createPostRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Excerpt    string `json:"excerpt"`
	CategoryID string `json:"category_id"`
	Published  bool   `json:"published"`
}

type updatePostRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Excerpt    string `json:"excerpt"`
	CategoryID string `json:"category_id"`
}

type setVisibilityRequest struct {
	Published bool `json:"published"`
}

type addCommentRequest struct {
	Content string `json:"content"`
}

/*
ListPublic returns a page of published posts.

GET /api/v1/posts?page=&limit=

Response:
  - 200: []Post with pagination metadata, newest first
*/
func (handler *Handler) listPublic(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	posts, meta, err := handler.postService.ListPublic(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, meta)
}

/*
GetDetail returns the full reading view of a published post.

GET /api/v1/posts/{id}

Description: Includes comments, sanitized HTML rendering of the body, and
(for authenticated viewers) the caller's own reaction. Counts at most one
view per viewer per dedup window.

Response:
  - 200: PostDetail
  - 404: ErrNotFound: No such published post
*/
func (handler *Handler) getDetail(writer http.ResponseWriter, request *http.Request) {
	postID := requestutil.ID(request, "id")

	// Views are deduplicated per account when authenticated, per client IP
	// otherwise.
	viewerID := ""
	viewerKey := clientKey(request)
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
		viewerKey = claims.UserID
	}

	detail, err := handler.postService.GetPublic(request.Context(), postID, viewerID, viewerKey)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

/*
ToggleLike flips the caller's like on a post.

POST /api/v1/posts/{id}/like

Response:
  - 200: Post: Updated reaction counts
  - 401: ErrUnauthorized: Missing or invalid token
  - 404: ErrNotFound: No such post
*/
func (handler *Handler) toggleLike(writer http.ResponseWriter, request *http.Request) {
	handler.toggleReaction(writer, request, ReactionLike)
}

/*
ToggleDislike flips the caller's dislike on a post.

POST /api/v1/posts/{id}/dislike

Response:
  - 200: Post: Updated reaction counts
  - 401: ErrUnauthorized: Missing or invalid token
  - 404: ErrNotFound: No such post
*/
func (handler *Handler) toggleDislike(writer http.ResponseWriter, request *http.Request) {
	handler.toggleReaction(writer, request, ReactionDislike)
}

// toggleReaction is the shared body of the like and dislike endpoints.
func (handler *Handler) toggleReaction(writer http.ResponseWriter, request *http.Request, kind ReactionKind) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.postService.ToggleReaction(request.Context(), requestutil.ID(request, "id"), userID, kind)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

/*
AddComment appends a comment to a post.

POST /api/v1/posts/{id}/comments

Request:
  - Body: addCommentRequest (Content)

Response:
  - 201: Comment: Created comment
  - 400: ErrValidation: Blank content
  - 404: ErrNotFound: No such post
*/
func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	comment, err := handler.postService.AddComment(request.Context(), requestutil.ID(request, "id"), userID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
ListMine returns a page of the caller's own posts, drafts included.

GET /api/v1/writer/posts?page=&limit=

Response:
  - 200: []Post with pagination metadata
  - 403: ErrForbidden: Caller is not a writer
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	posts, meta, err := handler.postService.ListByAuthor(request.Context(), userID, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, meta)
}

/*
Create authors a new post owned by the caller.

POST /api/v1/writer/posts

Request:
  - Body: createPostRequest

Response:
  - 201: Post: Created post with author and category populated
  - 400: ErrValidation: Missing required fields
  - 404: ErrNotFound: Unknown category
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createPostRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := validatePostInput(input.Title, input.Content, input.Excerpt, input.CategoryID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.postService.Create(request.Context(), userID, CreatePostInput{
		Title:      input.Title,
		Content:    input.Content,
		Excerpt:    input.Excerpt,
		CategoryID: input.CategoryID,
		Published:  input.Published,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

/*
Update changes the content fields of a post.

PUT /api/v1/writer/posts/{id}

Response:
  - 200: Post: Updated post
  - 403: ErrForbidden: Caller is neither the owner nor an admin
  - 404: ErrNotFound: No such post or category
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updatePostRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := validatePostInput(input.Title, input.Content, input.Excerpt, input.CategoryID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.postService.Update(request.Context(), claims.UserID, sec.UserRole(claims.Role), requestutil.ID(request, "id"), UpdatePostInput{
		Title:      input.Title,
		Content:    input.Content,
		Excerpt:    input.Excerpt,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

/*
SetVisibility flips the published flag of a post.

PUT /api/v1/writer/posts/{id}/visibility

Request:
  - Body: setVisibilityRequest (Published)

Response:
  - 200: Post: Post with the new visibility
  - 403: ErrForbidden: Caller is neither the owner nor an admin
  - 404: ErrNotFound: No such post
*/
func (handler *Handler) setVisibility(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setVisibilityRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	post, err := handler.postService.SetVisibility(request.Context(), claims.UserID, sec.UserRole(claims.Role), requestutil.ID(request, "id"), input.Published)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

/*
Delete permanently removes a post with its comments and reactions.

DELETE /api/v1/writer/posts/{id}

Response:
  - 204: No Content
  - 403: ErrForbidden: Caller is neither the owner nor an admin
  - 404: ErrNotFound: No such post
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.postService.Delete(request.Context(), claims.UserID, sec.UserRole(claims.Role), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
ListAll returns a page of every post regardless of visibility.

GET /api/v1/admin/posts?page=&limit=

Response:
  - 200: []Post with pagination metadata
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	posts, meta, err := handler.postService.ListAll(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, meta)
}

// validatePostInput applies the shared field constraints of create and update.
func validatePostInput(title, content, excerpt, categoryID string) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).
		MaxLen(FieldTitle, title, 200).
		Required(FieldContent, content).
		Required(FieldExcerpt, excerpt).
		MaxLen(FieldExcerpt, excerpt, 500).
		Required(FieldCategoryID, categoryID).
		UUID(FieldCategoryID, categoryID)
	return validator.Err()
}

// clientKey derives the anonymous view-dedup identity from the client IP.
func clientKey(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
