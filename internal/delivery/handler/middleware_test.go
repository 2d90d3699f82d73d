package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		target string
		header string
		want   string
	}{
		{"bearer header", "/user", "Bearer abc", "abc"},
		{"lowercase scheme", "/user", "bearer abc", "abc"},
		{"other scheme", "/user", "Basic abc", ""},
		{"query fallback", "/user?token=xyz", "", "xyz"},
		{"none", "/user", "", ""},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())
			assert.Equal(t, tt.want, extractToken(c))
		})
	}
}

func TestSessionFrom_WithoutMiddleware(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, _, err := sessionFrom(c)
	assert.Error(t, err)
}
