// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package category

import "context"

// Repository defines the read-only data access contract for categories.
type Repository interface {

	// List returns every category ordered by name ascending.
	List(ctx context.Context) ([]*Category, error)
}
