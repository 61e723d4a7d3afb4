// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/internal/platform/middleware"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
)

// stubVerifier returns fixed claims for the token "valid" and an error for
// everything else.
type stubVerifier struct {
	claims *sec.AuthClaims
}

func (s *stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token == "valid" {
		return s.claims, nil
	}
	return nil, errors.New("bad token")
}

// runGate sends one request through Authenticate plus the given inner gate
// and records what reaches the terminal handler.
func runGate(t *testing.T, role string, header string, gate func(http.Handler) http.Handler) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	verifier := &stubVerifier{claims: &sec.AuthClaims{UserID: "user-123", Username: "ida", Role: role}}

	reached := false
	terminal := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	var handler http.Handler = terminal
	if gate != nil {
		handler = gate(handler)
	}
	handler = middleware.Authenticate(verifier)(handler)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		request.Header.Set("Authorization", header)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	return recorder, reached
}

/*
TestAuthenticate_AnonymousPassesThrough verifies requests without a token
proceed as anonymous.
*/
func TestAuthenticate_AnonymousPassesThrough(t *testing.T) {
	recorder, reached := runGate(t, "user", "", nil)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestAuthenticate_InvalidToken verifies a present but unverifiable token
aborts with 401 before reaching the handler.
*/
func TestAuthenticate_InvalidToken(t *testing.T) {
	recorder, reached := runGate(t, "user", "Bearer forged", nil)

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestAuthenticate_BadFormat verifies malformed Authorization headers abort
with 401.
*/
func TestAuthenticate_BadFormat(t *testing.T) {
	recorder, reached := runGate(t, "user", "Token valid", nil)

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestRequireAuth verifies the authenticated-only gate.
*/
func TestRequireAuth(t *testing.T) {
	t.Run("anonymous_rejected", func(t *testing.T) {
		recorder, reached := runGate(t, "user", "", middleware.RequireAuth)
		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("authenticated_passes", func(t *testing.T) {
		recorder, reached := runGate(t, "user", "Bearer valid", middleware.RequireAuth)
		assert.True(t, reached)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

/*
TestRequireRole exercises the full admission policy table: any-authenticated,
writer-or-admin, and admin-only tiers.
*/
func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		required   sec.UserRole
		wantStatus int
	}{
		{"user_hits_user_tier", "user", sec.RoleUser, http.StatusOK},
		{"user_hits_writer_tier", "user", sec.RoleWriter, http.StatusForbidden},
		{"user_hits_admin_tier", "user", sec.RoleAdmin, http.StatusForbidden},
		{"writer_hits_writer_tier", "writer", sec.RoleWriter, http.StatusOK},
		{"writer_hits_admin_tier", "writer", sec.RoleAdmin, http.StatusForbidden},
		{"admin_hits_writer_tier", "admin", sec.RoleWriter, http.StatusOK},
		{"admin_hits_admin_tier", "admin", sec.RoleAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, reached := runGate(t, tt.role, "Bearer valid", middleware.RequireRole(tt.required))

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
		})
	}
}

/*
TestRequireRole_Anonymous verifies a missing token yields 401, not 403, on
role-gated routes.
*/
func TestRequireRole_Anonymous(t *testing.T) {
	recorder, reached := runGate(t, "admin", "", middleware.RequireRole(sec.RoleAdmin))

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestRequireRole_NoRoleDisclosure verifies the 403 body does not reveal
which roles would have been accepted.
*/
func TestRequireRole_NoRoleDisclosure(t *testing.T) {
	recorder, _ := runGate(t, "user", "Bearer valid", middleware.RequireRole(sec.RoleAdmin))

	require.Equal(t, http.StatusForbidden, recorder.Code)
	body := recorder.Body.String()
	assert.NotContains(t, body, "admin")
	assert.NotContains(t, body, "writer")
}
