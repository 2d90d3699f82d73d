package infrastructure

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendGridMailer_WithoutKeySkips(t *testing.T) {
	mailer := NewSendGridMailer("", "no-reply@example.com", slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.NoError(t, mailer.SendWelcome(context.Background(), "Ada", "ada@example.com"))
}

func TestWelcomeContent_EscapesHTML(t *testing.T) {
	_, body := welcomeContent(`<script>alert("x")</script>`, "a&b@example.com")

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "a&amp;b@example.com")
}
