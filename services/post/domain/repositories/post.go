package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/pressroom/services/post/domain/models"
)

// PostRepository is the persistence interface for the Post aggregate.
// The domain layer owns this interface; infrastructure implements it.
type PostRepository interface {
	Save(ctx context.Context, post *models.Post) error

	// GetByID returns ErrPostNotFound when no post with the id exists.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error)

	// FindAll returns every post ordered newest first (by UpdatedAt, then
	// CreatedAt). An empty store yields an empty slice, never an error.
	FindAll(ctx context.Context) ([]*models.Post, error)

	// Update persists changes to an existing post.
	Update(ctx context.Context, post *models.Post) error

	// Delete removes a post by id. Deletion is hard; there is no tombstone.
	Delete(ctx context.Context, id uuid.UUID) error
}
