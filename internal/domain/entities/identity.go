package entities

import "github.com/google/uuid"

// Identity is the acting user resolved from a bearer token. It is resolved
// once per request and passed explicitly to every call that needs it.
type Identity struct {
	UserID uuid.UUID
}

func (i Identity) Owns(p *Post) bool {
	return p != nil && p.CreatorId == i.UserID
}
