// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/coursehub/internal/core"
)

type fakeVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (f *fakeVerifier) VerifyAccessToken(
	_ context.Context,
	_ string,
) (*AccessTokenClaims, error) {
	return f.claims, f.err
}

type fakeRoleSource struct {
	roles map[string]string
	err   error
}

func (f *fakeRoleSource) GetRole(
	_ context.Context,
	email string,
) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.roles[email], nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticatorRejectsMissingToken(t *testing.T) {
	mw := Authenticator(&fakeVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorRejectsBadToken(t *testing.T) {
	mw := Authenticator(&fakeVerifier{err: core.ErrTokenExpired})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorInjectsClaims(t *testing.T) {
	mw := Authenticator(&fakeVerifier{claims: &AccessTokenClaims{
		UserID: "u1",
		Email:  "ada@example.com",
		Role:   "student",
	}})

	var gotEmail, gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEmail = GetUserEmail(r.Context())
		gotID = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	mw(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ada@example.com", gotEmail)
	assert.Equal(t, "u1", gotID)
}

func requestWithEmail(email string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if email == "" {
		return req
	}
	ctx := context.WithValue(req.Context(), UserEmailKey, email)
	return req.WithContext(ctx)
}

func TestRoleGuardMatrix(t *testing.T) {
	source := &fakeRoleSource{roles: map[string]string{
		"admin@example.com": "admin",
		"teach@example.com": "instructor",
		"ada@example.com":   "student",
	}}
	guard := NewRoleGuard(source)

	tests := []struct {
		name     string
		email    string
		required []string
		want     int
	}{
		{"admin passes admin gate", "admin@example.com", []string{"admin"}, http.StatusOK},
		{"student blocked from admin gate", "ada@example.com", []string{"admin"}, http.StatusForbidden},
		{"instructor blocked from admin gate", "teach@example.com", []string{"admin"}, http.StatusForbidden},
		{"instructor passes instructor gate", "teach@example.com", []string{"instructor"}, http.StatusOK},
		{"either role accepted", "teach@example.com", []string{"admin", "instructor"}, http.StatusOK},
		{"unauthenticated is 401", "", []string{"admin"}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			guard.Require(tt.required...)(okHandler()).
				ServeHTTP(rec, requestWithEmail(tt.email))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

// A demotion takes effect on the next request even though the token still
// carries the old role claim.
func TestRoleGuardReadsStoredRole(t *testing.T) {
	source := &fakeRoleSource{roles: map[string]string{
		"ada@example.com": "admin",
	}}
	guard := NewRoleGuard(source)
	gate := guard.Require("admin")

	rec := httptest.NewRecorder()
	gate(okHandler()).ServeHTTP(rec, requestWithEmail("ada@example.com"))
	require.Equal(t, http.StatusOK, rec.Code)

	source.roles["ada@example.com"] = "student"

	rec = httptest.NewRecorder()
	gate(okHandler()).ServeHTTP(rec, requestWithEmail("ada@example.com"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRoleGuardSourceFailureIs500(t *testing.T) {
	guard := NewRoleGuard(&fakeRoleSource{err: errors.New("db down")})

	rec := httptest.NewRecorder()
	guard.Require("admin")(okHandler()).
		ServeHTTP(rec, requestWithEmail("ada@example.com"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestExtractToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, ExtractToken(req))

	req.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", ExtractToken(req))

	req.Header.Set("Authorization", "bearer abc123")
	assert.Equal(t, "abc123", ExtractToken(req))

	req.Header.Set("Authorization", "Basic abc123")
	assert.Empty(t, ExtractToken(req))
}
