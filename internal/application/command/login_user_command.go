package command

import (
	"time"

	"github.com/DavLiendoProgramming/blog-api/internal/application/common"
)

type LoginUserCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginUserCommandResult struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      *common.UserResult `json:"user"`
}

type RefreshTokenCommandResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
