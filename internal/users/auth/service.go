// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements user identity use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider

	// adminEmail is the reserved bootstrap address. An account registering
	// with exactly this email is created as admin. Empty disables the rule.
	adminEmail string
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider, adminEmail string) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
		adminEmail:     adminEmail,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrolls a new member with the default 'user' role, handling
password hashing and the admin bootstrap rule.

Returns:
  - *User: Created entity
  - error: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {

	// Verify email uniqueness. Return a client-safe Conflict error.
	_, err := service.userRepository.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Verify username uniqueness. Return a client-safe Conflict error.
	_, err = service.userRepository.FindByUsername(ctx, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Bootstrap rule: the single reserved address becomes admin at creation.
	// Every other registration starts as a plain user.
	role := sec.RoleUser
	if service.adminEmail != "" && input.Email == service.adminEmail {
		role = sec.RoleAdmin
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginSession represents a successfully authenticated login.
type LoginSession struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *User
}

/*
Login validates user credentials and issues an access token.

Description: Verifies identity and performs constant-time password comparison.
An unknown email and a wrong password produce the exact same error so the
endpoint cannot be used to enumerate registered accounts.

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: InvalidCredentials or internal failures
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.userRepository.FindByEmail(ctx, input.Email)

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.InvalidCredentials()
	}

	// bcrypt comparison is constant-time, preventing timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken: accessToken,
		ExpiresAt:   time.Now().Add(AccessTokenTTL),
		User:        user,
	}, nil
}

// # Profile Maintenance

// GetProfile returns the account identified by userID.
func (service *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(ctx, userID)
}

// UpdateProfileInput holds the mutable identity fields a member may change.
type UpdateProfileInput struct {
	Username string
	Email    string

	// CurrentPassword and NewPassword are optional: both must be provided
	// to rotate the credential.
	CurrentPassword string
	NewPassword     string
}

/*
UpdateProfile changes the caller's username, email, and optionally password.

Description: Uniqueness of the new identity fields is checked against every
other account. A password rotation requires proof of the current password.

Returns:
  - *User: Updated entity
  - error: Conflict, InvalidCredentials, or storage errors
*/
func (service *Service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*User, error) {
	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Identity fields must not collide with another account.
	if other, err := service.userRepository.FindByUsername(ctx, input.Username); err == nil && other.ID != userID {
		return nil, apperr.Conflict("Username is already taken")
	}
	if other, err := service.userRepository.FindByEmail(ctx, input.Email); err == nil && other.ID != userID {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prove ownership of the account before any write when rotating the credential.
	if input.NewPassword != "" && !sec.CheckPasswordHash(input.CurrentPassword, user.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	user.Username = input.Username
	user.Email = input.Email

	if err := service.userRepository.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("auth_service_update_profile_failed: %w", err)
	}

	// Optional credential rotation.
	if input.NewPassword != "" {
		hashedPassword, err := sec.HashPassword(input.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("auth_service_update_profile_hash_failed: %w", err)
		}

		if err := service.userRepository.UpdatePassword(ctx, userID, hashedPassword); err != nil {
			return nil, fmt.Errorf("auth_service_update_password_failed: %w", err)
		}
	}

	return user, nil
}

// # Administrative User Management

/*
ListUsers returns every account except the calling administrator's own.

The caller's exclusion mirrors the moderation UI: an admin manages other
members, not themselves.
*/
func (service *Service) ListUsers(ctx context.Context, callerID string) ([]*User, error) {
	users, err := service.userRepository.ListExcept(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_list_users_failed: %w", err)
	}
	return users, nil
}

/*
ChangeRole sets the role of the target account to one of the closed role set.

Returns:
  - *User: Updated entity
  - error: ValidationError (unknown role), NotFound, or storage errors
*/
func (service *Service) ChangeRole(ctx context.Context, targetID string, newRole sec.UserRole) (*User, error) {
	if !newRole.IsValid() {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldRole,
			Message: "Must be one of: user, writer, admin",
		})
	}

	user, err := service.userRepository.UpdateRole(ctx, targetID, newRole)
	if err != nil {
		return nil, err
	}

	return user, nil
}

/*
DeleteUser permanently removes the target account.

Description: The schema cascades the deletion to the member's posts (with
their comments and reactions), comments on other posts, reactions, and
writer applications, so no content ever references a missing author.
*/
func (service *Service) DeleteUser(ctx context.Context, targetID string) error {
	return service.userRepository.Delete(ctx, targetID)
}
