// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

// Package category exposes the static, admin-seeded post categories.
//
// Categories are read-only through the API. The seed lives in the migration
// scripts; changing the set is an operational task, not an endpoint.
package category

import "time"

// Category is a name/slug pair posts are filed under.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}
