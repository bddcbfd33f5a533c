// AngelaMos | 2026
// dto.go

package cart

import (
	"time"
)

type AddCartItemRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid4"`
}

type CartItemResponse struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type AddCartItemResponse struct {
	Message string            `json:"message,omitempty"`
	Item    *CartItemResponse `json:"item,omitempty"`
}

func ToCartItemResponse(item *CartItem) CartItemResponse {
	return CartItemResponse{
		ID:        item.ID,
		CourseID:  item.CourseID,
		Email:     item.Email,
		CreatedAt: item.CreatedAt,
	}
}

func ToCartItemResponseList(items []CartItem) []CartItemResponse {
	responses := make([]CartItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToCartItemResponse(&items[i]))
	}
	return responses
}
