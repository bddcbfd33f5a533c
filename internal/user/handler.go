// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/coursehub/internal/core"
	"github.com/carterperez-dev/coursehub/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	guard *middleware.RoleGuard,
) {
	r.Post("/users", h.Register)
	r.Get("/users/instructors", h.ListInstructors)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/users/verify/{email}", h.VerifyRole)

		r.With(guard.Require(RoleAdmin)).Get("/users", h.ListUsers)
		r.With(guard.Require(RoleAdmin)).
			Get("/users/admin/{email}", h.CheckAdmin)
		r.With(guard.Require(RoleAdmin)).Patch("/users/{id}", h.Promote)

		r.With(guard.Require(RoleInstructor)).
			Get("/users/instructors/{email}", h.CheckInstructor)
	})
}

// Register is the idempotent signup endpoint: an already-registered email
// gets the "already exists" message and no new record.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, created, err := h.service.RegisterIfAbsent(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	resp := ToUserResponse(user)

	if !created {
		core.OK(w, RegisterUserResponse{
			Message: "account already exists for this email",
			User:    &resp,
		})
		return
	}

	core.Created(w, RegisterUserResponse{User: &resp})
}

// VerifyRole reports the caller's stored role; an unset role reads as
// student. Callers can only ask about themselves.
func (h *Handler) VerifyRole(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	if email != middleware.GetUserEmail(r.Context()) {
		core.Forbidden(w, "email does not match authenticated user")
		return
	}

	role, err := h.service.GetRole(r.Context(), email)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, RoleResponse{Role: role})
}

func (h *Handler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	if email != middleware.GetUserEmail(r.Context()) {
		core.OK(w, AdminCheckResponse{Admin: false})
		return
	}

	isAdmin, err := h.service.IsAdmin(r.Context(), email)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, AdminCheckResponse{Admin: isAdmin})
}

func (h *Handler) CheckInstructor(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	if email != middleware.GetUserEmail(r.Context()) {
		core.OK(w, InstructorCheckResponse{Instructor: false})
		return
	}

	isInstructor, err := h.service.IsInstructor(r.Context(), email)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, InstructorCheckResponse{Instructor: isInstructor})
}

// Promote grants the instructor or admin role to an existing account.
func (h *Handler) Promote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req PromoteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.Promote(r.Context(), id, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "user")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "role must be instructor or admin")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponseList(users))
}

func (h *Handler) ListInstructors(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListInstructors(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponseList(users))
}
