// Package memory provides an in-memory UserRepository used by tests and
// local development without a database.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	userdomain "github.com/ghuser/pressroom/services/user/domain"
	"github.com/ghuser/pressroom/services/user/domain/models"
)

// UserRepository is a mutex-guarded map implementation of
// repositories.UserRepository.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]models.User
	byEmail map[string]uuid.UUID
}

// NewUserRepository returns an empty in-memory repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[uuid.UUID]models.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

// Save stores a copy of user. Returns ErrEmailTaken for duplicate emails.
func (r *UserRepository) Save(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[user.Email]; taken {
		return userdomain.ErrEmailTaken
	}
	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

// GetByID returns a copy of the stored user or ErrUserNotFound.
func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	return &user, nil
}

// GetByEmail returns a copy of the stored user or ErrUserNotFound.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	user := r.byID[id]
	return &user, nil
}
