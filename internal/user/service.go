// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/coursehub/internal/auth"
	"github.com/carterperez-dev/coursehub/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterIfAbsent is the idempotent signup path: posting an email that is
// already registered reports the existing account and writes nothing.
func (s *Service) RegisterIfAbsent(
	ctx context.Context,
	req RegisterUserRequest,
) (*User, bool, error) {
	email := strings.ToLower(req.Email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, false, err
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         req.Name,
		PasswordHash: passwordHash,
		Role:         RoleStudent,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same email.
		if errors.Is(err, core.ErrDuplicateKey) {
			existing, getErr := s.repo.GetByEmail(ctx, email)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return user, true, nil
}

// GetRole resolves the stored role for an email. An unregistered email reads
// as student, matching the catalog's default for new signups.
func (s *Service) GetRole(ctx context.Context, email string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if errors.Is(err, core.ErrNotFound) {
		return RoleStudent, nil
	}
	if err != nil {
		return "", err
	}

	if user.Role == "" {
		return RoleStudent, nil
	}

	return user.Role, nil
}

func (s *Service) Promote(
	ctx context.Context,
	id, role string,
) (*User, error) {
	valid := false
	for _, r := range PromotableRoles {
		if r == role {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf(
			"promote: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	return s.repo.UpdateRole(ctx, id, role)
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListInstructors(ctx context.Context) ([]User, error) {
	return s.repo.ListByRole(ctx, RoleInstructor)
}

func (s *Service) IsAdmin(ctx context.Context, email string) (bool, error) {
	role, err := s.GetRole(ctx, email)
	if err != nil {
		return false, err
	}
	return role == RoleAdmin, nil
}

func (s *Service) IsInstructor(
	ctx context.Context,
	email string,
) (bool, error) {
	role, err := s.GetRole(ctx, email)
	if err != nil {
		return false, err
	}
	return role == RoleInstructor, nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	email, passwordHash, name string,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(email),
		Name:         name,
		PasswordHash: passwordHash,
		Role:         RoleStudent,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) IncrementTokenVersion(
	ctx context.Context,
	userID string,
) error {
	return s.repo.IncrementTokenVersion(ctx, userID)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		TokenVersion: u.TokenVersion,
	}
}

var _ auth.UserProvider = (*Service)(nil)
