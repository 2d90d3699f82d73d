package interfaces

import (
	"context"
	"time"

	"github.com/DavLiendoProgramming/blog-api/internal/application/common"
)

type Mailer interface {
	SendWelcome(ctx context.Context, name, email string) error
}

// ProfileCache stores rendered user profiles. A miss is (nil, nil).
type ProfileCache interface {
	GetProfile(ctx context.Context, userID string) (*common.UserResult, error)
	SetProfile(ctx context.Context, userID string, profile *common.UserResult, ttl time.Duration) error
	DeleteProfile(ctx context.Context, userID string) error
}

type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}
