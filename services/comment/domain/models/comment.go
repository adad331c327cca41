package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Comment is a reader remark attached to a post.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	PostID    uuid.UUID `json:"postId"`
	AuthorID  uuid.UUID `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewComment creates a validated comment with a generated id and timestamps.
func NewComment(postID, authorID uuid.UUID, text string) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("text is required")
	}
	if postID == uuid.Nil {
		return nil, errors.New("post id is required")
	}
	if authorID == uuid.Nil {
		return nil, errors.New("author id is required")
	}
	now := time.Now().UTC()
	return &Comment{
		ID:        uuid.New(),
		Text:      text,
		PostID:    postID,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ApplyEdit overwrites the text and refreshes UpdatedAt.
func (c *Comment) ApplyEdit(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("text is required")
	}
	c.Text = text
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// IsOwnedBy reports whether subjectID authored this comment.
func (c *Comment) IsOwnedBy(subjectID uuid.UUID) bool {
	return c.AuthorID == subjectID
}
