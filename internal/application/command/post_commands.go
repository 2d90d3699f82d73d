package command

import "github.com/DavLiendoProgramming/blog-api/internal/application/common"

// PublishedAt is kept as the raw client string; the service parses it so a
// bad value surfaces as a field-level validation error.
type CreatePostCommand struct {
	Title          string `json:"title"`
	Body           string `json:"body"`
	PublishedAt    string `json:"published_at"`
	IdempotencyKey string `json:"-"`
}

type CreatePostCommandResult struct {
	Result   *common.PostResult `json:"result"`
	Replayed bool               `json:"-"`
}

type UpdatePostCommand struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	PublishedAt string `json:"published_at"`
}
