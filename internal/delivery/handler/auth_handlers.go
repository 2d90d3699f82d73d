package handler

import (
	"net/http"

	"github.com/DavLiendoProgramming/blog-api/internal/application/command"
	"github.com/labstack/echo/v4"
)

func (h *Handler) RegisterUser(c echo.Context) error {
	var cmd command.CreateUserCommand
	if err := bindBody(c, &cmd); err != nil {
		return err
	}
	cmd.IdempotencyKey = c.Request().Header.Get(headerIdempotencyKey)

	result, err := h.auth.CreateUser(c.Request().Context(), &cmd)
	if err != nil {
		return err
	}
	if result.Replayed {
		c.Response().Header().Set("Idempotent-Replayed", "true")
	}

	return sendJSONResponse(c, http.StatusCreated, Response{
		Message: "User successfully registered",
		User:    result.Result,
	})
}

func (h *Handler) Login(c echo.Context) error {
	var cmd command.LoginUserCommand
	if err := bindBody(c, &cmd); err != nil {
		return err
	}

	result, err := h.auth.LoginUser(c.Request().Context(), &cmd)
	if err != nil {
		return err
	}

	return sendJSONResponse(c, http.StatusOK, Response{
		Token:     result.Token,
		ExpiresAt: &result.ExpiresAt,
	})
}

func (h *Handler) Logout(c echo.Context) error {
	_, token, err := sessionFrom(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, Response{Message: "User has been logged out"})
}

func (h *Handler) Refresh(c echo.Context) error {
	_, token, err := sessionFrom(c)
	if err != nil {
		return err
	}

	result, err := h.auth.Refresh(c.Request().Context(), token)
	if err != nil {
		return err
	}

	return sendJSONResponse(c, http.StatusOK, Response{
		Token:     result.Token,
		ExpiresAt: &result.ExpiresAt,
	})
}
