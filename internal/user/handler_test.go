// AngelaMos | 2026
// handler_test.go

package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/coursehub/internal/middleware"
)

// stubAuth injects a fixed identity the way the real bearer middleware does,
// so handler routing can be exercised without minting tokens.
func stubAuth(email string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = context.WithValue(ctx, middleware.UserEmailKey, email)
			ctx = context.WithValue(ctx, middleware.UserIDKey, "test-user")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(repo Repository, callerEmail string) chi.Router {
	svc := NewService(repo)
	handler := NewHandler(svc)

	guard := middleware.NewRoleGuard(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r, stubAuth(callerEmail), guard)
	return r
}

func postJSON(t *testing.T, r chi.Router, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRegisterEndpointIsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	router := newTestRouter(repo, "")

	body := RegisterUserRequest{
		Email:    "ada@example.com",
		Name:     "Ada",
		Password: "correct horse battery",
	}

	rec := postJSON(t, router, "/users", body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, router, "/users", body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
	assert.Equal(t, 1, repo.createCalls)
}

func TestVerifyRoleRejectsOtherEmails(t *testing.T) {
	repo := newFakeRepository()
	repo.add(&User{ID: "u1", Email: "ada@example.com", Role: RoleInstructor})
	router := newTestRouter(repo, "ada@example.com")

	req := httptest.NewRequest(
		http.MethodGet,
		"/users/verify/ada@example.com",
		nil,
	)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), RoleInstructor)

	req = httptest.NewRequest(
		http.MethodGet,
		"/users/verify/bob@example.com",
		nil,
	)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPromoteRequiresAdminCaller(t *testing.T) {
	repo := newFakeRepository()
	repo.add(&User{ID: "u1", Email: "ada@example.com", Role: RoleStudent})
	repo.add(&User{ID: "u2", Email: "boss@example.com", Role: RoleAdmin})

	// A student cannot grant roles, not even to themselves.
	studentRouter := newTestRouter(repo, "ada@example.com")
	req := httptest.NewRequest(
		http.MethodPatch,
		"/users/u1",
		bytes.NewReader([]byte(`{"role":"admin"}`)),
	)
	rec := httptest.NewRecorder()
	studentRouter.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, RoleStudent, repo.byID["u1"].Role)

	adminRouter := newTestRouter(repo, "boss@example.com")
	req = httptest.NewRequest(
		http.MethodPatch,
		"/users/u1",
		bytes.NewReader([]byte(`{"role":"instructor"}`)),
	)
	rec = httptest.NewRecorder()
	adminRouter.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, RoleInstructor, repo.byID["u1"].Role)
}

func TestCheckAdminProbeShortCircuitsOnMismatch(t *testing.T) {
	repo := newFakeRepository()
	repo.add(&User{ID: "u2", Email: "boss@example.com", Role: RoleAdmin})
	router := newTestRouter(repo, "boss@example.com")

	req := httptest.NewRequest(
		http.MethodGet,
		"/users/admin/boss@example.com",
		nil,
	)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"admin":true`)

	// Asking about someone else answers false without a lookup.
	req = httptest.NewRequest(
		http.MethodGet,
		"/users/admin/other@example.com",
		nil,
	)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"admin":false`)
}
