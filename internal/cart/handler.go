// AngelaMos | 2026
// handler.go

package cart

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
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/carts", h.Add)
		r.Get("/carts", h.List)
		r.Get("/carts/{id}", h.Get)
		r.Delete("/carts/{id}", h.Remove)
	})
}

// Add puts a course in the caller's cart. The email on the row always comes
// from the authenticated token, never from the request body.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	email := middleware.GetUserEmail(r.Context())
	if email == "" {
		core.JSONError(w, core.UnauthorizedError("authentication required"))
		return
	}

	item, err := h.service.Add(r.Context(), req.CourseID, email)
	if err != nil {
		if errors.Is(err, ErrAlreadySelected) {
			core.OK(w, AddCartItemResponse{
				Message: "course already selected",
			})
			return
		}
		core.InternalServerError(w, err)
		return
	}

	resp := ToCartItemResponse(item)
	core.Created(w, AddCartItemResponse{Item: &resp})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	email := middleware.GetUserEmail(r.Context())

	item, err := h.service.Get(r.Context(), id, email)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "cart item")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "cart item belongs to another user")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToCartItemResponse(item))
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	email := middleware.GetUserEmail(r.Context())

	if err := h.service.Remove(r.Context(), id, email); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "cart item")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

// List returns the cart for the email in the query string, which must match
// the authenticated caller.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	requestedEmail := r.URL.Query().Get("email")
	if requestedEmail == "" {
		core.BadRequest(w, "email query parameter is required")
		return
	}

	callerEmail := middleware.GetUserEmail(r.Context())

	items, err := h.service.ListForEmail(
		r.Context(),
		requestedEmail,
		callerEmail,
	)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "email does not match authenticated user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCartItemResponseList(items))
}
