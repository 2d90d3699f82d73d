package handler

import (
	"time"

	"github.com/labstack/echo/v4"
)

// Response is the envelope every endpoint answers with. Only the payload
// field relevant to the endpoint is set.
type Response struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message,omitempty"`
	Code      string            `json:"code,omitempty"`
	Token     string            `json:"token,omitempty"`
	ExpiresAt *time.Time        `json:"expires_at,omitempty"`
	User      interface{}       `json:"user,omitempty"`
	Users     interface{}       `json:"users,omitempty"`
	Posts     interface{}       `json:"posts,omitempty"`
	Data      interface{}       `json:"data,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

func sendJSONResponse(c echo.Context, statusCode int, response Response) error {
	response.Success = true
	return c.JSON(statusCode, response)
}

func sendJSONError(c echo.Context, statusCode int, response Response) error {
	response.Success = false
	return c.JSON(statusCode, response)
}
