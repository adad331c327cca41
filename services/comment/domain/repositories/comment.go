// Package repositories declares the persistence ports of the comment context.
package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/pressroom/services/comment/domain/models"
)

// CommentRepository abstracts comment persistence.
type CommentRepository interface {
	// Save persists a new comment.
	Save(ctx context.Context, comment *models.Comment) error

	// GetByID returns the comment or domain.ErrCommentNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)

	// FindByPost returns all comments on a post, oldest first. An empty
	// result is an empty slice, not an error.
	FindByPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)

	// Update overwrites the mutable fields of an existing comment.
	// Returns domain.ErrCommentNotFound for unknown ids.
	Update(ctx context.Context, comment *models.Comment) error

	// Delete removes the comment. Returns domain.ErrCommentNotFound for
	// unknown ids.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByPost removes every comment on a post. Used when the post
	// itself is deleted.
	DeleteByPost(ctx context.Context, postID uuid.UUID) error
}
