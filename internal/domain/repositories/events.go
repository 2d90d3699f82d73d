package repositories

import "context"

// EventPublisher announces domain events. Implementations are best-effort:
// callers log failures and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}
