package repositories

import (
	"context"
	"time"
)

// TokenDenylist holds revoked token ids until the token would have expired
// anyway.
type TokenDenylist interface {
	// Revoke adds jti and reports whether this call inserted it. A false
	// result with a nil error means the id was already revoked.
	Revoke(ctx context.Context, jti string, expiresAt time.Time) (bool, error)
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
