package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/commerce-mesh/internal/domain"
	"github.com/spec-kit/commerce-mesh/internal/repository"
	apperrors "github.com/spec-kit/commerce-mesh/pkg/util"
)

// UserService owns profile CRUD for user-service.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// CreateUser stores a new profile. Called by auth-service during
// registration through the internal channel.
func (s *UserService) CreateUser(ctx context.Context, user *domain.User) error {
	if user.Email == "" || user.Name == "" {
		return apperrors.NewValidationError("email and name required", nil)
	}
	if _, err := s.users.GetByEmail(ctx, user.Email); err == nil {
		return apperrors.NewConflict("email already exists", nil)
	} else if err != pgx.ErrNoRows {
		return err
	}
	return s.users.Create(ctx, user)
}

// GetUser loads a profile by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns all profiles.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// UpdateUser applies profile changes.
func (s *UserService) UpdateUser(ctx context.Context, user *domain.User) error {
	if err := s.users.Update(ctx, user); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", map[string]any{"id": user.ID})
		}
		return err
	}
	return nil
}

// DeleteUser removes a profile. Called by auth-service when a
// registration rolls back.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
