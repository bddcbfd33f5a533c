// AngelaMos | 2026
// service.go

package course

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/coursehub/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create inserts a new course in pending status; only an admin approval
// moves it into the public catalog.
func (s *Service) Create(
	ctx context.Context,
	req CreateCourseRequest,
	instructorEmail string,
) (*Course, error) {
	course := &Course{
		ID:              uuid.New().String(),
		InstructorEmail: instructorEmail,
		InstructorName:  req.InstructorName,
		Title:           req.Title,
		Description:     req.Description,
		Image:           req.Image,
		Price:           req.Price,
		Seats:           req.Seats,
		Enrolled:        0,
		Status:          StatusPending,
	}

	if err := s.repo.Create(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

func (s *Service) SetStatus(
	ctx context.Context,
	id, status string,
) (*Course, error) {
	if status != StatusApproved && status != StatusDenied {
		return nil, fmt.Errorf(
			"set status: invalid status %q: %w",
			status,
			core.ErrInvalidInput,
		)
	}

	return s.repo.SetStatus(ctx, id, status)
}

func (s *Service) SetFeedback(
	ctx context.Context,
	id, feedback string,
) (*Course, error) {
	return s.repo.SetFeedback(ctx, id, feedback)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Course, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]Course, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListApproved(ctx context.Context) ([]Course, error) {
	return s.repo.ListByStatus(ctx, StatusApproved)
}
