package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Event subjects published by the blog API.
const (
	SubjectUserRegistered = "blog.user.registered"
	SubjectUserDeleted    = "blog.user.deleted"
	SubjectPostCreated    = "blog.post.created"
	SubjectPostUpdated    = "blog.post.updated"
	SubjectPostDeleted    = "blog.post.deleted"
)

// Envelope wraps every payload so consumers can order and dedupe events.
type Envelope struct {
	Subject    string    `json:"subject"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// Publisher sends JSON events over a NATS connection. The zero value (nil
// connection) drops events, which is how the service runs without NATS.
type Publisher struct {
	nc *nats.Conn
}

func NewPublisher(nc *nats.Conn) *Publisher {
	return &Publisher{nc: nc}
}

func (p *Publisher) Publish(ctx context.Context, subject string, payload any) error {
	if p == nil || p.nc == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !p.nc.IsConnected() {
		return nats.ErrConnectionClosed
	}

	data, err := json.Marshal(Envelope{Subject: subject, OccurredAt: time.Now().UTC(), Data: payload})
	if err != nil {
		return fmt.Errorf("encode %s event: %w", subject, err)
	}
	return p.nc.Publish(subject, data)
}

// Close flushes buffered events and closes the connection.
func (p *Publisher) Close() error {
	if p == nil || p.nc == nil {
		return nil
	}
	return p.nc.Drain()
}
