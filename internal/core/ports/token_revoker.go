package ports

import (
	"context"
	"time"
)

// TokenRevoker is the revocation list consulted on every token verification.
// Entries expire together with the tokens they shadow, so the list stays
// bounded by the 7-day token TTL.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
