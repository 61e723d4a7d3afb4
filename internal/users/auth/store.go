// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package auth

import (
	"context"

	"github.com/inkwellhq/inkwell/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	// FindByID returns the account with the given ID.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a brand-new user account to the storage.
	Create(ctx context.Context, user *User) error

	// UpdateProfile persists changes to username and email.
	UpdateProfile(ctx context.Context, user *User) error

	// UpdatePassword replaces only the user's password hash.
	UpdatePassword(ctx context.Context, userID, newHash string) error

	// UpdateRole replaces only the user's role.
	UpdateRole(ctx context.Context, userID string, role sec.UserRole) (*User, error)

	// ListExcept returns every account except the one with excludeID,
	// newest first.
	ListExcept(ctx context.Context, excludeID string) ([]*User, error)

	// Delete removes the account. Owned posts, comments, reactions, and
	// applications are removed by the schema's cascade rules.
	Delete(ctx context.Context, id string) error
}
