// AngelaMos | 2026
// handler.go

package payment

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

		r.Post("/create-payment-intent", h.CreateIntent)
		r.Post("/payments", h.Settle)
		r.Get("/payments/enrolled/{email}", h.ListEnrolled)
		r.Get("/payments/{email}", h.ListHistory)
	})
}

func (h *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req CreateIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	clientSecret, err := h.service.CreateIntent(r.Context(), req.Price)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, CreateIntentResponse{ClientSecret: clientSecret})
}

// Settle records a confirmed payment and claims the seat. The email on the
// payment always comes from the token, and the response distinguishes a
// fresh commit from an idempotent replay.
func (h *Handler) Settle(w http.ResponseWriter, r *http.Request) {
	var req SettleRequest
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

	outcome, settled, err := h.service.Settle(r.Context(), req, email)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	switch outcome {
	case OutcomeCommitted:
		resp := ToPaymentResponse(settled)
		core.Created(w, SettleResponse{
			Outcome: outcome.String(),
			Payment: &resp,
		})
	case OutcomeAlreadySettled:
		resp := ToPaymentResponse(settled)
		core.OK(w, SettleResponse{
			Outcome: outcome.String(),
			Payment: &resp,
		})
	case OutcomeInsufficientSeats:
		core.JSONError(w, core.NewAppError(
			http.StatusConflict,
			"INSUFFICIENT_SEATS",
			"no seats remaining for this course",
		))
	case OutcomeCourseNotFound:
		core.NotFound(w, "course")
	}
}

func (h *Handler) ListEnrolled(w http.ResponseWriter, r *http.Request) {
	requestedEmail := chi.URLParam(r, "email")
	callerEmail := middleware.GetUserEmail(r.Context())

	payments, err := h.service.ListForEmail(
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

	core.OK(w, ToPaymentResponseList(payments))
}

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	requestedEmail := chi.URLParam(r, "email")
	callerEmail := middleware.GetUserEmail(r.Context())

	payments, err := h.service.ListForEmailNewestFirst(
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

	core.OK(w, ToPaymentResponseList(payments))
}
