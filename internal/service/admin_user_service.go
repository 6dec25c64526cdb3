package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/greenwatch/greenwatch-api/internal/dto"
	"github.com/greenwatch/greenwatch-api/internal/repository"
)

// AdminUserService covers the admin-side user management surface.
type AdminUserService interface {
	List(ctx context.Context) ([]dto.AdminUserResponse, error)
	Delete(ctx context.Context, id uint, actor Actor) error
}

type adminUserService struct {
	users  repository.UserRepository
	logger zerolog.Logger
}

// NewAdminUserService constructs the admin user service.
func NewAdminUserService(users repository.UserRepository, logger zerolog.Logger) AdminUserService {
	return &adminUserService{
		users:  users,
		logger: logger.With().Str("component", "admin_user_service").Logger(),
	}
}

func (s *adminUserService) List(ctx context.Context) ([]dto.AdminUserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AdminUserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewAdminUserResponse(user))
	}

	return responses, nil
}

// Delete removes an account irreversibly. The user's reports and any audit
// entries naming them are deliberately left behind.
func (s *adminUserService) Delete(ctx context.Context, id uint, actor Actor) error {
	if !actor.IsAdmin() {
		return ErrNotModerator
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.logger.Info().Uint("user_id", id).Uint("admin_id", actor.ID).Msg("user deleted")
	return nil
}
