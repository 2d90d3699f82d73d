package infrastructure

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const senderName = "Blog"

// SendGridMailer sends transactional mail. Without an API key it only logs
// what it would have sent.
type SendGridMailer struct {
	client *sendgrid.Client
	from   string
	logger *slog.Logger
}

func NewSendGridMailer(apiKey, from string, logger *slog.Logger) *SendGridMailer {
	m := &SendGridMailer{from: from, logger: logger}
	if apiKey != "" {
		m.client = sendgrid.NewSendClient(apiKey)
	}
	return m
}

func (m *SendGridMailer) SendWelcome(ctx context.Context, name, email string) error {
	if m.client == nil {
		m.logger.DebugContext(ctx, "mail disabled, skipping welcome email", "to", email)
		return nil
	}

	from := mail.NewEmail(senderName, m.from)
	to := mail.NewEmail(name, email)
	subject := "Welcome to the blog"
	plainTextContent, htmlContent := welcomeContent(name, email)

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}
	if response.StatusCode >= 300 {
		return fmt.Errorf("send welcome email: sendgrid status %d", response.StatusCode)
	}

	m.logger.InfoContext(ctx, "welcome email sent", "to", email, "status", response.StatusCode)
	return nil
}

// welcomeContent renders the welcome body. Name and email are user input and
// are escaped in the HTML part.
func welcomeContent(name, email string) (plainText, htmlBody string) {
	plainText = fmt.Sprintf("Hi %s, your account is ready. Log in with %s to start writing.", name, email)
	htmlBody = fmt.Sprintf("<p>Hi %s,</p><p>your account is ready. Log in with <strong>%s</strong> to start writing.</p>",
		html.EscapeString(name), html.EscapeString(email))
	return plainText, htmlBody
}
