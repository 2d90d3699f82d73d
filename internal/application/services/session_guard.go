package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/DavLiendoProgramming/blog-api/internal/application/interfaces"
	"github.com/DavLiendoProgramming/blog-api/internal/domain/entities"
	"github.com/DavLiendoProgramming/blog-api/internal/domain/repositories"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// SessionGuard turns the raw bearer token of a request into the acting
// identity. It has no side effects; the resolved identity is handed to
// downstream services explicitly.
type SessionGuard struct {
	tokens interfaces.TokenService
	users  repositories.UserRepository
}

func NewSessionGuard(tokens interfaces.TokenService, users repositories.UserRepository) *SessionGuard {
	return &SessionGuard{tokens: tokens, users: users}
}

// Resolve wraps every failure in ErrUnauthenticated while keeping the token
// reason (entities.ErrInvalidToken or entities.ErrExpiredToken) matchable.
// A valid token whose account was deleted resolves to ErrAccountGone.
func (g *SessionGuard) Resolve(ctx context.Context, rawToken string) (entities.Identity, error) {
	if rawToken == "" {
		return entities.Identity{}, fmt.Errorf("%w: %w: missing bearer token", ErrUnauthenticated, entities.ErrInvalidToken)
	}

	identity, err := g.tokens.Verify(ctx, rawToken)
	if err != nil {
		return entities.Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, err := g.users.FindById(ctx, identity.UserID)
	if err != nil {
		return entities.Identity{}, fmt.Errorf("load session user: %w", err)
	}
	if user == nil {
		return entities.Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, ErrAccountGone)
	}
	return identity, nil
}
