// Package repositories declares the persistence ports of the user context.
package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/pressroom/services/user/domain/models"
)

// UserRepository abstracts user persistence.
type UserRepository interface {
	// Save persists a new user. Returns domain.ErrEmailTaken when the
	// email is already registered.
	Save(ctx context.Context, user *models.User) error

	// GetByID returns the user or domain.ErrUserNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByEmail returns the user or domain.ErrUserNotFound. Lookup is
	// by the lowercased email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
