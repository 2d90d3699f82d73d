package repositories

import (
	"context"

	"github.com/DavLiendoProgramming/blog-api/internal/domain/entities"
	"github.com/google/uuid"
)

type UserRepository interface {
	// Create hashes the password and persists the user. A unique-email
	// violation is reported as entities.ErrDuplicateEmail.
	Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)
	FindById(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	List(ctx context.Context, page int) (entities.Page[*entities.User], error)
	// Delete removes the user and soft-deletes their posts in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
