// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/internal/platform/sec"
)

const testIssuer = "inkwell.press"

/*
TestTokenService_RoundTrip verifies that a generated token verifies back to
the same identity claims.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService("test-secret-key", testIssuer)
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-123", "ida", "writer", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "ida", claims.Username)
	assert.Equal(t, "writer", claims.Role)
}

/*
TestTokenService_Expired verifies that an expired token is rejected.
*/
func TestTokenService_Expired(t *testing.T) {
	service, err := sec.NewTokenService("test-secret-key", testIssuer)
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-123", "ida", "user", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_ForgedSignature verifies that a token signed with a
different secret is rejected.
*/
func TestTokenService_ForgedSignature(t *testing.T) {
	signer, err := sec.NewTokenService("secret-a", testIssuer)
	require.NoError(t, err)
	verifier, err := sec.NewTokenService("secret-b", testIssuer)
	require.NoError(t, err)

	token, err := signer.GenerateAccessToken("user-123", "ida", "admin", time.Hour)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_Malformed verifies structurally invalid tokens are rejected.
*/
func TestTokenService_Malformed(t *testing.T) {
	service, err := sec.NewTokenService("test-secret-key", testIssuer)
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := service.VerifyToken(token)
		assert.Error(t, err, "token %q should not verify", token)
	}
}

/*
TestNewTokenService_EmptySecret verifies that a missing signing secret is a
construction failure, not a runtime surprise.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", testIssuer)
	assert.Error(t, err)
}

/*
TestUserRole_AtLeast exercises the three-tier role lattice.
*/
func TestUserRole_AtLeast(t *testing.T) {
	tests := []struct {
		name     string
		role     sec.UserRole
		required sec.UserRole
		want     bool
	}{
		{"user_meets_user", sec.RoleUser, sec.RoleUser, true},
		{"user_below_writer", sec.RoleUser, sec.RoleWriter, false},
		{"user_below_admin", sec.RoleUser, sec.RoleAdmin, false},
		{"writer_meets_user", sec.RoleWriter, sec.RoleUser, true},
		{"writer_meets_writer", sec.RoleWriter, sec.RoleWriter, true},
		{"writer_below_admin", sec.RoleWriter, sec.RoleAdmin, false},
		{"admin_meets_everything", sec.RoleAdmin, sec.RoleAdmin, true},
		{"admin_meets_writer", sec.RoleAdmin, sec.RoleWriter, true},
		{"unknown_role_meets_nothing", sec.UserRole("ghost"), sec.RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.required))
		})
	}
}

/*
TestUserRole_IsValid verifies the closed role set.
*/
func TestUserRole_IsValid(t *testing.T) {
	assert.True(t, sec.RoleUser.IsValid())
	assert.True(t, sec.RoleWriter.IsValid())
	assert.True(t, sec.RoleAdmin.IsValid())
	assert.False(t, sec.UserRole("moderator").IsValid())
	assert.False(t, sec.UserRole("").IsValid())
}

/*
TestPasswordHash covers the bcrypt round trip and mismatch behavior.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("pw123-secret")
	require.NoError(t, err)

	assert.NotEqual(t, "pw123-secret", hash)
	assert.True(t, sec.CheckPasswordHash("pw123-secret", hash))
	assert.False(t, sec.CheckPasswordHash("wrongpw", hash))
	assert.False(t, sec.CheckPasswordHash("pw123-secret", "not-a-hash"))
}
