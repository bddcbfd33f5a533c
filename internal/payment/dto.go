// AngelaMos | 2026
// dto.go

package payment

import (
	"time"
)

type SettleRequest struct {
	IdempotencyKey string  `json:"idempotency_key" validate:"required,min=1,max=128"`
	CourseID       string  `json:"course_id"       validate:"required,uuid4"`
	CartID         string  `json:"cart_id"         validate:"required,uuid4"`
	TransactionID  string  `json:"transaction_id"  validate:"required,max=255"`
	Amount         float64 `json:"amount"          validate:"required,gt=0"`
}

type CreateIntentRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

type CreateIntentResponse struct {
	ClientSecret string `json:"client_secret"`
}

type PaymentResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	CourseID      string    `json:"course_id"`
	CartID        string    `json:"cart_id"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	TransactionID string    `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type SettleResponse struct {
	Outcome string           `json:"outcome"`
	Payment *PaymentResponse `json:"payment,omitempty"`
}

func ToPaymentResponse(p *Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		Email:         p.Email,
		CourseID:      p.CourseID,
		CartID:        p.CartID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
	}
}

func ToPaymentResponseList(payments []Payment) []PaymentResponse {
	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, ToPaymentResponse(&payments[i]))
	}
	return responses
}
