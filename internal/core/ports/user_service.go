package ports

import (
	"context"

	"github.com/tutorialhub/tutorial-platform/internal/core/domain"
)

// ProfileUpdate carries the editable profile fields. A password supplied by
// the client is dropped before this struct is built; profile writes can never
// change credentials.
type ProfileUpdate struct {
	Username string
	Email    string
}

type UserService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, patch ProfileUpdate) (*domain.User, error)
}
