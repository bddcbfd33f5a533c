// AngelaMos | 2026
// dto.go

package course

import (
	"time"
)

type CreateCourseRequest struct {
	InstructorName string `json:"instructor_name" validate:"max=100"`

	Title       string  `json:"title"       validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"max=5000"`
	Image       string  `json:"image"       validate:"omitempty,url,max=2048"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Seats       int     `json:"seats"       validate:"required,gt=0"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved denied"`
}

type FeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required,min=1,max=5000"`
}

type CourseResponse struct {
	ID              string    `json:"id"`
	InstructorEmail string    `json:"instructor_email"`
	InstructorName  string    `json:"instructor_name"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Image           string    `json:"image,omitempty"`
	Price           float64   `json:"price"`
	Seats           int       `json:"seats"`
	Enrolled        int       `json:"enrolled"`
	Status          string    `json:"status"`
	Feedback        string    `json:"feedback,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToCourseResponse(c *Course) CourseResponse {
	resp := CourseResponse{
		ID:              c.ID,
		InstructorEmail: c.InstructorEmail,
		InstructorName:  c.InstructorName,
		Title:           c.Title,
		Description:     c.Description,
		Image:           c.Image,
		Price:           c.Price,
		Seats:           c.Seats,
		Enrolled:        c.Enrolled,
		Status:          c.Status,
		CreatedAt:       c.CreatedAt,
	}

	if c.Feedback != nil {
		resp.Feedback = *c.Feedback
	}

	return resp
}

func ToCourseResponseList(courses []Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		responses = append(responses, ToCourseResponse(&courses[i]))
	}
	return responses
}
