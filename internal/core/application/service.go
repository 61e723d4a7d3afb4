// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/validate"
	"github.com/inkwellhq/inkwell/pkg/uuid"
)

// Service implements the writer application use cases.
type Service struct {
	applicationRepository Repository
}

// NewService constructs a new application [Service].
func NewService(repo Repository) *Service {
	return &Service{applicationRepository: repo}
}

/*
Submit creates a new pending application for the caller.

Description: A member may hold at most one pending application at a time.
A prior approved or rejected application does not block a new submission.

Returns:
  - *WriterApplication: Created application in pending state
  - error: ValidationError (blank message), Conflict (pending exists),
    or storage errors
*/
func (service *Service) Submit(ctx context.Context, userID, message string) (*WriterApplication, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil, validate.RequiredError(FieldMessage, "Application message must not be empty")
	}

	// The partial unique index backs this check against concurrent submits.
	if _, err := service.applicationRepository.FindPendingByUser(ctx, userID); err == nil {
		return nil, apperr.Conflict("You already have a pending application")
	}

	app := &WriterApplication{
		ID:      uuid.New(),
		UserID:  userID,
		Message: trimmed,
		Status:  StatusPending,
	}

	if err := service.applicationRepository.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("application_service_submit_failed: %w", err)
	}

	return app, nil
}

// GetMine returns the caller's most recent application, NotFound when the
// caller has never applied.
func (service *Service) GetMine(ctx context.Context, userID string) (*WriterApplication, error) {
	return service.applicationRepository.FindLatestByUser(ctx, userID)
}

// ListPending returns every pending application for the admin review queue.
func (service *Service) ListPending(ctx context.Context) ([]*WriterApplication, error) {
	apps, err := service.applicationRepository.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("application_service_list_pending_failed: %w", err)
	}
	return apps, nil
}

/*
Approve grants writer privileges to the target member.

Description: Requires a pending application for the target. The status
transition and the role promotion commit together, so an approved
application without the writer role (or the reverse) is never observable.

Returns:
  - *WriterApplication: Application in approved state
  - error: NotFound (no pending application) or storage errors
*/
func (service *Service) Approve(ctx context.Context, targetUserID string) (*WriterApplication, error) {
	return service.applicationRepository.Approve(ctx, targetUserID)
}

/*
Reject denies the target member's pending application.

Description: Requires a pending application for the target. The member's
role is left untouched and they may apply again later.

Returns:
  - *WriterApplication: Application in rejected state
  - error: NotFound (no pending application) or storage errors
*/
func (service *Service) Reject(ctx context.Context, targetUserID string) (*WriterApplication, error) {
	return service.applicationRepository.Reject(ctx, targetUserID)
}
