package entities

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

type Post struct {
	Id          uuid.UUID  `json:"id"`
	CreatorId   uuid.UUID  `json:"creator_id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title" validate:"required,max=255"`
	Body        string     `json:"body" validate:"required"`
	PublishedAt time.Time  `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

func NewPost(creatorId uuid.UUID, title, body string, publishedAt time.Time) (*Post, error) {
	now := time.Now().UTC()
	p := &Post{
		Id:          uuid.New(),
		CreatorId:   creatorId,
		Title:       strings.TrimSpace(title),
		Body:        body,
		PublishedAt: publishedAt.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	p.Slug = Slugify(p.Title)
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Revise replaces the editable fields and recomputes the slug.
func (p *Post) Revise(title, body string, publishedAt time.Time) error {
	p.Title = strings.TrimSpace(title)
	p.Body = body
	p.PublishedAt = publishedAt.UTC()
	p.Slug = Slugify(p.Title)
	p.UpdatedAt = time.Now().UTC()
	return p.validate()
}

func (p *Post) validate() error {
	verr := NewValidationError()
	if err := validateStruct(p); err != nil {
		v, ok := err.(*ValidationError)
		if !ok {
			return err
		}
		verr = v
	}
	if p.PublishedAt.IsZero() {
		verr.Add("published_at", "The published at field is required.")
	}
	if p.Title != "" && p.Slug == "" {
		verr.Add("title", "The title must contain at least one letter or digit.")
	}
	return verr.OrNil()
}

// Slugify lowercases title, folds accented letters to their base form and
// collapses every run of non-alphanumeric characters into a single '-'.
// Slugs are not unique.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingSep := false
	for _, r := range norm.NFKD.String(title) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
		default:
			pendingSep = true
		}
	}
	return b.String()
}
