// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package application

import "context"

// Repository defines the data access contract for writer applications.
type Repository interface {

	// Create persists a new pending application.
	Create(ctx context.Context, app *WriterApplication) error

	// FindPendingByUser returns the user's pending application, if any.
	FindPendingByUser(ctx context.Context, userID string) (*WriterApplication, error)

	// FindLatestByUser returns the user's most recent application
	// regardless of status.
	FindLatestByUser(ctx context.Context, userID string) (*WriterApplication, error)

	// ListPending returns every pending application, oldest first, with
	// the applicant reference populated.
	ListPending(ctx context.Context) ([]*WriterApplication, error)

	// Approve transitions the user's pending application to approved and
	// promotes the user to the writer role in the same transaction.
	// Fails when no pending application exists for the user.
	Approve(ctx context.Context, userID string) (*WriterApplication, error)

	// Reject transitions the user's pending application to rejected. The
	// user's role is untouched. Fails when no pending application exists.
	Reject(ctx context.Context, userID string) (*WriterApplication, error)
}
