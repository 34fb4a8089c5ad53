package ports

import (
	"context"

	"github.com/tutorialhub/tutorial-platform/internal/core/domain"
)

// UserRepository defines persistence for the credential store.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// username or email collides with an existing record.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs resolves a set of user ids in one round trip, keyed by id.
	// Missing ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	// Update replaces username/email on the given user and returns the
	// updated record. Duplicate-key collisions map to domain.ErrUserExists.
	Update(ctx context.Context, id string, username, email string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
