// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/inkwellhq/inkwell/internal/platform/request"
	"github.com/inkwellhq/inkwell/internal/platform/respond"
)

// Handler implements the dashboard HTTP endpoints.
type Handler struct {
	statsService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{statsService: service}
}

// WriterRoutes returns the writer dashboard route, mounted behind the
// writer gate.
func (handler *Handler) WriterRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.writerStats)

	return router
}

// AdminRoutes returns the admin dashboard route, mounted behind the admin gate.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.adminStats)

	return router
}

/*
AdminStats returns the platform-wide dashboard aggregate.

GET /api/v1/admin/stats

Response:
  - 200: AdminStats
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) adminStats(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.statsService.Admin(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
WriterStats returns the engagement aggregate over the caller's own posts.

GET /api/v1/writer/stats

Response:
  - 200: WriterStats
  - 403: ErrForbidden: Caller is not a writer
*/
func (handler *Handler) writerStats(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.statsService.Writer(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
