// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Moderates all users and content
	RoleAdmin UserRole = "admin"

	// Can author and manage their own posts
	RoleWriter UserRole = "writer"

	// Default role for standard registered accounts
	RoleUser UserRole = "user"
)

// IsValid reports whether the role belongs to the closed set of known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleWriter, RoleUser:
		return true
	}
	return false
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleWriter:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
