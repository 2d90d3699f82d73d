package repositories

import (
	"context"

	"github.com/DavLiendoProgramming/blog-api/internal/domain/entities"
	"github.com/google/uuid"
)

// PostRepository never returns soft-deleted posts. Find* methods return
// (nil, nil) when nothing matches.
type PostRepository interface {
	Create(ctx context.Context, post *entities.Post) (*entities.Post, error)
	FindById(ctx context.Context, id uuid.UUID) (*entities.Post, error)
	FindBySlug(ctx context.Context, slug string) (*entities.Post, error)
	ListAll(ctx context.Context, page int) (entities.Page[*entities.Post], error)
	ListByCreator(ctx context.Context, creatorId uuid.UUID, page int) (entities.Page[*entities.Post], error)
	Update(ctx context.Context, post *entities.Post) (*entities.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
