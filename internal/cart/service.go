// AngelaMos | 2026
// service.go

package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/coursehub/internal/core"
)

var ErrAlreadySelected = errors.New("course already selected")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add places a hold on a course for the caller. Selecting the same course
// twice reports ErrAlreadySelected and inserts nothing; the uniqueness is
// scoped to (course, email) so different students can hold the same course.
func (s *Service) Add(
	ctx context.Context,
	courseID, email string,
) (*CartItem, error) {
	item := &CartItem{
		ID:       uuid.New().String(),
		CourseID: courseID,
		Email:    email,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrAlreadySelected
		}
		return nil, err
	}

	return item, nil
}

// Get returns a cart item, restricted to its owner.
func (s *Service) Get(
	ctx context.Context,
	id, email string,
) (*CartItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if item.Email != email {
		return nil, fmt.Errorf("get cart item: %w", core.ErrForbidden)
	}

	return item, nil
}

func (s *Service) Remove(ctx context.Context, id, email string) error {
	return s.repo.DeleteOwned(ctx, id, email)
}

// ListForEmail returns the cart rows for an email. The caller may only list
// their own cart; any other email is rejected.
func (s *Service) ListForEmail(
	ctx context.Context,
	requestedEmail, callerEmail string,
) ([]CartItem, error) {
	if requestedEmail != callerEmail {
		return nil, fmt.Errorf("list cart: %w", core.ErrForbidden)
	}

	return s.repo.ListByEmail(ctx, requestedEmail)
}
