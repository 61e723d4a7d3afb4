// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellhq/inkwell/internal/platform/respond"
)

// Handler implements the category HTTP endpoints.
type Handler struct {
	categoryService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{categoryService: service}
}

// Routes returns a [chi.Router] with the category routes.
//
// # Endpoints
//   - GET / : Lists every category, name ascending (anonymous).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	return router
}

/*
List returns every category.

GET /api/v1/categories

Response:
  - 200: []Category ordered by name
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.categoryService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, categories)
}
