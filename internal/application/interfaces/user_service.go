package interfaces

import (
	"context"

	"github.com/DavLiendoProgramming/blog-api/internal/application/command"
	"github.com/DavLiendoProgramming/blog-api/internal/application/query"
	"github.com/DavLiendoProgramming/blog-api/internal/domain/entities"
)

type AuthService interface {
	CreateUser(ctx context.Context, createCommand *command.CreateUserCommand) (*command.CreateUserCommandResult, error)
	LoginUser(ctx context.Context, loginCommand *command.LoginUserCommand) (*command.LoginUserCommandResult, error)
	Logout(ctx context.Context, rawToken string) error
	Refresh(ctx context.Context, rawToken string) (*command.RefreshTokenCommandResult, error)
}

type UserService interface {
	GetProfile(ctx context.Context, identity entities.Identity) (*query.UserQueryResult, error)
	ListUsers(ctx context.Context, identity entities.Identity, page int) (*query.UserQueryListResult, error)
	DeleteSelf(ctx context.Context, identity entities.Identity, rawToken string) (*query.UserQueryResult, error)
}

type PostService interface {
	CreatePost(ctx context.Context, identity entities.Identity, createCommand *command.CreatePostCommand) (*command.CreatePostCommandResult, error)
	ListPosts(ctx context.Context, page int) (*query.PostQueryListResult, error)
	FindBySlug(ctx context.Context, slug string) (*query.PostQueryResult, error)
	ListOwned(ctx context.Context, identity entities.Identity, page int) (*query.PostQueryListResult, error)
	UpdateOwned(ctx context.Context, identity entities.Identity, postId string, updateCommand *command.UpdatePostCommand) (*query.PostQueryResult, error)
	DeleteOwned(ctx context.Context, identity entities.Identity, postId string) error
}

// TokenService is the bearer-token lifecycle used by the session guard and
// the auth service.
type TokenService interface {
	Issue(user *entities.User) (*IssuedToken, error)
	Verify(ctx context.Context, rawToken string) (entities.Identity, error)
	Invalidate(ctx context.Context, rawToken string) error
	Refresh(ctx context.Context, rawToken string) (*IssuedToken, error)
}
