// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package application

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/inkwellhq/inkwell/internal/platform/request"
	"github.com/inkwellhq/inkwell/internal/platform/respond"
	"github.com/inkwellhq/inkwell/internal/platform/validate"
)

// Handler implements the writer application HTTP endpoints.
type Handler struct {
	applicationService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{applicationService: service}
}

// Routes returns the member-facing application routes.
//
// # Endpoints
//   - POST /     : Submits a new application.
//   - GET  /mine : Returns the caller's most recent application.
//
// The caller mounts this router behind [middleware.RequireAuth].
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.submit)
	router.Get("/mine", handler.getMine)

	return router
}

// AdminRoutes returns the review queue routes mounted under the admin surface.
//
// # Endpoints
//   - GET /pending            : Lists pending applications, oldest first.
//   - PUT /{userID}/approve   : Grants writer privileges.
//   - PUT /{userID}/reject    : Denies the application.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/pending", handler.listPending)
	router.Put("/{userID}/approve", handler.approve)
	router.Put("/{userID}/reject", handler.reject)

	return router
}

// # Request Payloads

type submitRequest struct {
	Message string `json:"message"`
}

/*
Submit creates a new pending application for the caller.

POST /api/v1/applications

Request:
  - Body: submitRequest (Message)

Response:
  - 201: WriterApplication in pending state
  - 400: ErrValidation: Blank message
  - 409: ErrConflict: A pending application already exists
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input submitRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	app, err := handler.applicationService.Submit(request.Context(), userID, input.Message)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, app)
}

/*
GetMine returns the caller's most recent application.

GET /api/v1/applications/mine

Response:
  - 200: WriterApplication
  - 404: ErrNotFound: Caller has never applied
*/
func (handler *Handler) getMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	app, err := handler.applicationService.GetMine(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, app)
}

/*
ListPending returns the admin review queue.

GET /api/v1/admin/applications/pending

Response:
  - 200: []WriterApplication with applicant populated, oldest first
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) listPending(writer http.ResponseWriter, request *http.Request) {
	apps, err := handler.applicationService.ListPending(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, apps)
}

/*
Approve grants writer privileges to the target member.

PUT /api/v1/admin/applications/{userID}/approve

Response:
  - 200: WriterApplication in approved state
  - 404: ErrNotFound: No pending application for the target
*/
func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	app, err := handler.applicationService.Approve(request.Context(), requestutil.ID(request, "userID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, app)
}

/*
Reject denies the target member's pending application.

PUT /api/v1/admin/applications/{userID}/reject

Response:
  - 200: WriterApplication in rejected state
  - 404: ErrNotFound: No pending application for the target
*/
func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request) {
	app, err := handler.applicationService.Reject(request.Context(), requestutil.ID(request, "userID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, app)
}
