package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/DavLiendoProgramming/blog-api/internal/domain/entities"
	"github.com/labstack/echo/v4"
)

const (
	contextKeyIdentity = "auth.identity"
	contextKeyToken    = "auth.token"
)

// SessionResolver resolves a raw bearer token to the acting identity.
type SessionResolver interface {
	Resolve(ctx context.Context, rawToken string) (entities.Identity, error)
}

// KeyedLimiter decides whether another request for key may proceed.
type KeyedLimiter interface {
	Allow(key string) bool
}

// extractToken reads "Authorization: Bearer <token>" and falls back to a
// token query or form field.
func extractToken(c echo.Context) string {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if token := c.QueryParam("token"); token != "" {
		return token
	}
	return c.FormValue("token")
}

// RequireSession resolves the caller once per request and stores the
// identity on the echo context for the handler to pass on explicitly.
func RequireSession(guard SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			identity, err := guard.Resolve(c.Request().Context(), token)
			if err != nil {
				return err
			}
			c.Set(contextKeyIdentity, identity)
			c.Set(contextKeyToken, token)
			return next(c)
		}
	}
}

// RateLimit throttles by client IP.
func RateLimit(limiter KeyedLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.RealIP()) {
				c.Response().Header().Set("Retry-After", "1")
				return sendJSONError(c, http.StatusTooManyRequests, Response{Message: "Too many attempts, please try again later."})
			}
			return next(c)
		}
	}
}

func sessionFrom(c echo.Context) (entities.Identity, string, error) {
	identity, ok := c.Get(contextKeyIdentity).(entities.Identity)
	if !ok {
		return entities.Identity{}, "", entities.ErrInvalidToken
	}
	token, _ := c.Get(contextKeyToken).(string)
	return identity, token, nil
}
