package handler

import (
	"net/http"

	"github.com/DavLiendoProgramming/blog-api/internal/application/command"
	"github.com/labstack/echo/v4"
)

func (h *Handler) ListPosts(c echo.Context) error {
	result, err := h.posts.ListPosts(c.Request().Context(), pageParam(c))
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, Response{Posts: result.Result})
}

func (h *Handler) GetPostBySlug(c echo.Context) error {
	result, err := h.posts.FindBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, Response{Message: "Got Post", Data: result.Result})
}

func (h *Handler) CreatePost(c echo.Context) error {
	identity, _, err := sessionFrom(c)
	if err != nil {
		return err
	}

	var cmd command.CreatePostCommand
	if err := bindBody(c, &cmd); err != nil {
		return err
	}
	cmd.IdempotencyKey = c.Request().Header.Get(headerIdempotencyKey)

	result, err := h.posts.CreatePost(c.Request().Context(), identity, &cmd)
	if err != nil {
		return err
	}
	if result.Replayed {
		c.Response().Header().Set("Idempotent-Replayed", "true")
	}

	return sendJSONResponse(c, http.StatusOK, Response{
		Message: "Post created successfully",
		Data:    result.Result,
	})
}

func (h *Handler) ListUserPosts(c echo.Context) error {
	identity, _, err := sessionFrom(c)
	if err != nil {
		return err
	}

	result, err := h.posts.ListOwned(c.Request().Context(), identity, pageParam(c))
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, Response{Message: "Your posts are here", Data: result.Result})
}

func (h *Handler) UpdatePost(c echo.Context) error {
	identity, _, err := sessionFrom(c)
	if err != nil {
		return err
	}

	var cmd command.UpdatePostCommand
	if err := bindBody(c, &cmd); err != nil {
		return err
	}

	result, err := h.posts.UpdateOwned(c.Request().Context(), identity, c.Param("id"), &cmd)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, Response{
		Message: "Post updated successfully",
		Data:    result.Result,
	})
}

func (h *Handler) DeletePost(c echo.Context) error {
	identity, _, err := sessionFrom(c)
	if err != nil {
		return err
	}

	if err := h.posts.DeleteOwned(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, Response{Message: "Post deleted successfully"})
}
