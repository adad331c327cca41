package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const maxFieldLength = 255

// Post is the core aggregate for this bounded context.
// AuthorID is set once at creation and never reassigned.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Body      string    `json:"body"`
	AuthorID  uuid.UUID `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPost constructs a valid Post aggregate with generated ID and current
// timestamps. Title and subtitle are required; body may be empty.
func NewPost(authorID uuid.UUID, title, subtitle, body string) (*Post, error) {
	if err := validateFields(title, subtitle); err != nil {
		return nil, err
	}
	if authorID == uuid.Nil {
		return nil, fmt.Errorf("author id must be set")
	}

	now := time.Now().UTC()
	return &Post{
		ID:        uuid.New(),
		Title:     title,
		Subtitle:  subtitle,
		Body:      body,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ApplyEdit overwrites title, subtitle, and body unconditionally (no
// partial-field patch semantics) and refreshes UpdatedAt.
func (p *Post) ApplyEdit(title, subtitle, body string) error {
	if err := validateFields(title, subtitle); err != nil {
		return err
	}
	p.Title = title
	p.Subtitle = subtitle
	p.Body = body
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// IsOwnedBy reports whether subjectID matches the post's author. The single
// ownership predicate shared by edit and delete paths.
func (p *Post) IsOwnedBy(subjectID uuid.UUID) bool {
	return p.AuthorID == subjectID
}

func validateFields(title, subtitle string) error {
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if subtitle == "" {
		return fmt.Errorf("subtitle is required")
	}
	if len(title) > maxFieldLength {
		return fmt.Errorf("title must not exceed %d characters", maxFieldLength)
	}
	if len(subtitle) > maxFieldLength {
		return fmt.Errorf("subtitle must not exceed %d characters", maxFieldLength)
	}
	return nil
}
