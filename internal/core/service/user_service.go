package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tutorialhub/tutorial-platform/internal/core/domain"
	"github.com/tutorialhub/tutorial-platform/internal/core/ports"
)

// UserService implements profile reads and edits for the authenticated user.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile replaces username and email. Credentials are not editable
// through this path; the handler drops any password field before building the
// patch.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, patch ports.ProfileUpdate) (*domain.User, error) {
	current, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	username := patch.Username
	if username == "" {
		username = current.Username
	}
	email := patch.Email
	if email == "" {
		email = current.Email
	}

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	updated, err := s.users.Update(ctx, userID, username, email)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Msg("profile updated")
	return updated, nil
}
