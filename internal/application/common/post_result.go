package common

import (
	"time"

	"github.com/google/uuid"
)

type PostResult struct {
	Id          uuid.UUID `json:"id"`
	CreatorId   uuid.UUID `json:"creator_id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
