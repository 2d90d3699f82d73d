package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) GetUser(c echo.Context) error {
	identity, _, err := sessionFrom(c)
	if err != nil {
		return err
	}

	result, err := h.users.GetProfile(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, Response{User: result.Result})
}

func (h *Handler) ListUsers(c echo.Context) error {
	identity, _, err := sessionFrom(c)
	if err != nil {
		return err
	}

	result, err := h.users.ListUsers(c.Request().Context(), identity, pageParam(c))
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, Response{Users: result.Result})
}

func (h *Handler) DeleteUser(c echo.Context) error {
	identity, token, err := sessionFrom(c)
	if err != nil {
		return err
	}

	result, err := h.users.DeleteSelf(c.Request().Context(), identity, token)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, Response{
		Message: "User has been deleted",
		User:    result.Result,
	})
}
