// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package category

import (
	"context"
	"fmt"
)

// Service implements category read use cases.
type Service struct {
	categoryRepository Repository
}

// NewService constructs a new category [Service].
func NewService(repo Repository) *Service {
	return &Service{categoryRepository: repo}
}

// List returns every category ordered by name ascending.
func (service *Service) List(ctx context.Context) ([]*Category, error) {
	categories, err := service.categoryRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("category_service_list_failed: %w", err)
	}
	return categories, nil
}
