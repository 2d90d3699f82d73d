package command

import "github.com/DavLiendoProgramming/blog-api/internal/application/common"

type CreateUserCommand struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	IdempotencyKey string `json:"-"`
}

type CreateUserCommandResult struct {
	Result *common.UserResult `json:"result"`
	// Replayed is set when the result came from a stored idempotent response.
	Replayed bool `json:"-"`
}
