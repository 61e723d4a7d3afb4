// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/internal/users/auth"
)

// fakeUserRepository is an in-memory UserRepository for service tests.
type fakeUserRepository struct {
	users map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*auth.User)}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepository) UpdateProfile(_ context.Context, user *auth.User) error {
	stored, ok := f.users[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	stored.Username = user.Username
	stored.Email = user.Email
	return nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	stored, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	stored.PasswordHash = newHash
	return nil
}

func (f *fakeUserRepository) UpdateRole(_ context.Context, userID string, role sec.UserRole) (*auth.User, error) {
	stored, ok := f.users[userID]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	stored.Role = role
	copied := *stored
	return &copied, nil
}

func (f *fakeUserRepository) ListExcept(_ context.Context, excludeID string) ([]*auth.User, error) {
	result := make([]*auth.User, 0)
	for _, user := range f.users {
		if user.ID != excludeID {
			copied := *user
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeUserRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(f.users, id)
	return nil
}

// newTestService wires a service with the fake repository and a real token
// service so login tokens can be verified end to end.
func newTestService(t *testing.T, adminEmail string) (*auth.Service, *fakeUserRepository, *sec.TokenService) {
	t.Helper()

	repo := newFakeUserRepository()
	tokens, err := sec.NewTokenService("test-signing-secret", "inkwell.press")
	require.NoError(t, err)

	return auth.NewService(repo, tokens, adminEmail), repo, tokens
}

/*
TestService_Register covers enrollment, hashing, and identity conflicts.
*/
func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates_plain_user", func(t *testing.T) {
		service, _, _ := newTestService(t, "")

		user, err := service.Register(ctx, auth.RegisterInput{
			Username: "alice", Email: "alice@x.com", Password: "pw123-secret",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, user.ID)
		assert.Equal(t, sec.RoleUser, user.Role)

		// Never the plaintext, always a verifying hash.
		assert.NotEqual(t, "pw123-secret", user.PasswordHash)
		assert.True(t, sec.CheckPasswordHash("pw123-secret", user.PasswordHash))
	})

	t.Run("duplicate_email_conflicts", func(t *testing.T) {
		service, _, _ := newTestService(t, "")

		_, err := service.Register(ctx, auth.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "pw123-secret"})
		require.NoError(t, err)

		_, err = service.Register(ctx, auth.RegisterInput{Username: "other", Email: "alice@x.com", Password: "pw123-secret"})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("duplicate_username_conflicts", func(t *testing.T) {
		service, _, _ := newTestService(t, "")

		_, err := service.Register(ctx, auth.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "pw123-secret"})
		require.NoError(t, err)

		_, err = service.Register(ctx, auth.RegisterInput{Username: "alice", Email: "other@x.com", Password: "pw123-secret"})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("bootstrap_email_becomes_admin", func(t *testing.T) {
		service, _, _ := newTestService(t, "root@inkwell.press")

		admin, err := service.Register(ctx, auth.RegisterInput{
			Username: "root", Email: "root@inkwell.press", Password: "pw123-secret",
		})
		require.NoError(t, err)
		assert.Equal(t, sec.RoleAdmin, admin.Role)

		// Everyone else still starts as a plain user.
		other, err := service.Register(ctx, auth.RegisterInput{
			Username: "bob", Email: "bob@x.com", Password: "pw123-secret",
		})
		require.NoError(t, err)
		assert.Equal(t, sec.RoleUser, other.Role)
	})
}

/*
TestService_Login covers the credential check, account-enumeration
resistance, and the issued token's claims.
*/
func TestService_Login(t *testing.T) {
	ctx := context.Background()
	service, _, tokens := newTestService(t, "")

	_, err := service.Register(ctx, auth.RegisterInput{
		Username: "alice", Email: "alice@x.com", Password: "pw123-secret",
	})
	require.NoError(t, err)

	t.Run("wrong_password_and_unknown_email_are_indistinguishable", func(t *testing.T) {
		_, errWrongPassword := service.Login(ctx, auth.LoginInput{Email: "alice@x.com", Password: "wrongpw"})
		_, errUnknownEmail := service.Login(ctx, auth.LoginInput{Email: "ghost@x.com", Password: "pw123-secret"})

		require.Error(t, errWrongPassword)
		require.Error(t, errUnknownEmail)

		wrongPassword := apperr.As(errWrongPassword)
		unknownEmail := apperr.As(errUnknownEmail)
		require.NotNil(t, wrongPassword)
		require.NotNil(t, unknownEmail)

		assert.Equal(t, "INVALID_CREDENTIALS", wrongPassword.Code)
		assert.Equal(t, wrongPassword.Code, unknownEmail.Code)
		assert.Equal(t, wrongPassword.Message, unknownEmail.Message)
	})

	t.Run("success_issues_verifiable_token", func(t *testing.T) {
		session, err := service.Login(ctx, auth.LoginInput{Email: "alice@x.com", Password: "pw123-secret"})
		require.NoError(t, err)

		assert.NotEmpty(t, session.AccessToken)
		assert.WithinDuration(t, time.Now().Add(auth.AccessTokenTTL), session.ExpiresAt, time.Minute)

		claims, err := tokens.VerifyToken(session.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, session.User.ID, claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, string(sec.RoleUser), claims.Role)
	})
}

/*
TestService_UpdateProfile covers identity collisions and the password
rotation proof.
*/
func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	service, repo, _ := newTestService(t, "")

	alice, err := service.Register(ctx, auth.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "pw123-secret"})
	require.NoError(t, err)
	_, err = service.Register(ctx, auth.RegisterInput{Username: "bob", Email: "bob@x.com", Password: "pw123-secret"})
	require.NoError(t, err)

	t.Run("username_collision_conflicts", func(t *testing.T) {
		_, err := service.UpdateProfile(ctx, alice.ID, auth.UpdateProfileInput{Username: "bob", Email: "alice@x.com"})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("wrong_current_password_blocks_rotation", func(t *testing.T) {
		_, err := service.UpdateProfile(ctx, alice.ID, auth.UpdateProfileInput{
			Username:        "alice",
			Email:           "alice@x.com",
			CurrentPassword: "wrongpw",
			NewPassword:     "new-pw-456",
		})
		require.Error(t, err)
		assert.Equal(t, "INVALID_CREDENTIALS", apperr.As(err).Code)

		// The stored credential is untouched.
		stored := repo.users[alice.ID]
		assert.True(t, sec.CheckPasswordHash("pw123-secret", stored.PasswordHash))
	})

	t.Run("rotation_with_proof_succeeds", func(t *testing.T) {
		_, err := service.UpdateProfile(ctx, alice.ID, auth.UpdateProfileInput{
			Username:        "alice2",
			Email:           "alice@x.com",
			CurrentPassword: "pw123-secret",
			NewPassword:     "new-pw-456",
		})
		require.NoError(t, err)

		stored := repo.users[alice.ID]
		assert.Equal(t, "alice2", stored.Username)
		assert.True(t, sec.CheckPasswordHash("new-pw-456", stored.PasswordHash))
	})
}

/*
TestService_ChangeRole covers the closed role set and target resolution.
*/
func TestService_ChangeRole(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t, "")

	bob, err := service.Register(ctx, auth.RegisterInput{Username: "bob", Email: "bob@x.com", Password: "pw123-secret"})
	require.NoError(t, err)

	t.Run("unknown_role_rejected", func(t *testing.T) {
		_, err := service.ChangeRole(ctx, bob.ID, sec.UserRole("superuser"))
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("promotion_applies", func(t *testing.T) {
		updated, err := service.ChangeRole(ctx, bob.ID, sec.RoleWriter)
		require.NoError(t, err)
		assert.Equal(t, sec.RoleWriter, updated.Role)
	})

	t.Run("unknown_target_not_found", func(t *testing.T) {
		_, err := service.ChangeRole(ctx, "missing-id", sec.RoleWriter)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}
