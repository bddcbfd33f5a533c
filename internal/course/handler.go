// AngelaMos | 2026
// handler.go

package course

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/coursehub/internal/core"
	"github.com/carterperez-dev/coursehub/internal/middleware"
	"github.com/carterperez-dev/coursehub/internal/user"
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
	r.Get("/courses/approved", h.ListApproved)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		instructorOnly := guard.Require(user.RoleInstructor)
		adminOnly := guard.Require(user.RoleAdmin)

		r.With(instructorOnly).Post("/courses", h.Create)
		r.With(instructorOnly).Get("/courses/allCourses", h.ListAll)

		r.With(adminOnly).Get("/courses", h.ListAll)
		r.With(adminOnly).Patch("/courses/{id}", h.SetStatus)
		r.With(adminOnly).Patch("/courses/feedback/{id}", h.SetFeedback)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		core.JSONError(w, core.UnauthorizedError("authentication required"))
		return
	}

	course, err := h.service.Create(r.Context(), req, claims.Email)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToCourseResponse(course))
}

// SetStatus approves or denies a pending course. Any other status value is
// rejected and the stored row is left untouched.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	course, err := h.service.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "course")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "status must be approved or denied")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToCourseResponse(course))
}

func (h *Handler) SetFeedback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	course, err := h.service.SetFeedback(r.Context(), id, req.Feedback)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "course")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCourseResponse(course))
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListAll(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCourseResponseList(courses))
}

func (h *Handler) ListApproved(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListApproved(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCourseResponseList(courses))
}
