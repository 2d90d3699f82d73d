package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/DavLiendoProgramming/blog-api/internal/domain/entities"
	"github.com/labstack/echo/v4"
)

const (
	codeTokenInvalid = "token_invalid"
	codeTokenExpired = "token_expired"

	msgBadCredentials = "Sorry, bad credentials"
)

// statusFor maps a service error to its HTTP status and response body.
// Token failures share one message and differ only in Code, so clients can
// tell "log in again" from "malformed credential" without learning which
// check failed.
func statusFor(err error) (int, Response) {
	var validationErr *entities.ValidationError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, Response{Message: "The given data was invalid.", Errors: validationErr.Fields}
	case errors.Is(err, entities.ErrDuplicateEmail):
		return http.StatusBadRequest, Response{
			Message: "The given data was invalid.",
			Errors:  map[string]string{"email": "The email has already been taken."},
		}
	case errors.Is(err, entities.ErrInvalidCredentials):
		return http.StatusBadRequest, Response{Message: "Login credentials are invalid."}
	case errors.Is(err, entities.ErrExpiredToken):
		return http.StatusUnauthorized, Response{Message: msgBadCredentials, Code: codeTokenExpired}
	case errors.Is(err, entities.ErrInvalidToken):
		return http.StatusUnauthorized, Response{Message: msgBadCredentials, Code: codeTokenInvalid}
	case errors.Is(err, entities.ErrForbidden):
		return http.StatusForbidden, Response{Message: "You are not allowed to modify this post."}
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound, Response{Message: "Sorry, post not found."}
	case errors.Is(err, entities.ErrIdempotencyConflict):
		return http.StatusConflict, Response{Message: "Idempotency-Key was already used for a different request."}
	case errors.As(err, &httpErr):
		msg := http.StatusText(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok && httpErr.Code < http.StatusInternalServerError {
			msg = s
		}
		return httpErr.Code, Response{Message: msg}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, Response{Message: "The request timed out."}
	default:
		return http.StatusInternalServerError, Response{Message: "Something went wrong."}
	}
}

// NewHTTPErrorHandler renders unhandled errors, including echo's own 404 and
// 405, in the JSON envelope.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := statusFor(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = sendJSONError(c, status, body)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
		}
	}
}
