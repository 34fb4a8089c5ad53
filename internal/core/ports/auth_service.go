package ports

import (
	"context"

	"github.com/tutorialhub/tutorial-platform/internal/core/domain"
)

// AuthResult is returned by Register and Login: a freshly minted bearer token
// plus the user it identifies.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// VerifyToken resolves a bearer token to its user. Any failure (bad
	// signature, expiry, revocation, unknown user) is an error; callers that
	// tolerate anonymous requests treat the error as "no user" rather than
	// rejecting.
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
	// Logout revokes the given token until its natural expiry.
	Logout(ctx context.Context, token string) error
}
