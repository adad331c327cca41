// Package memory provides an in-memory PostRepository used by tests and
// local development without a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	postdomain "github.com/ghuser/pressroom/services/post/domain"
	"github.com/ghuser/pressroom/services/post/domain/models"
)

// PostRepository is a mutex-guarded map implementation of
// repositories.PostRepository.
type PostRepository struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]models.Post
}

// NewPostRepository returns an empty in-memory repository.
func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[uuid.UUID]models.Post)}
}

// Save stores a copy of post.
func (r *PostRepository) Save(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[post.ID] = *post
	return nil
}

// GetByID returns a copy of the stored post or ErrPostNotFound.
func (r *PostRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, postdomain.ErrPostNotFound
	}
	return &post, nil
}

// FindAll returns every post, newest UpdatedAt first.
func (r *PostRepository) FindAll(_ context.Context) ([]*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Post, 0, len(r.posts))
	for _, post := range r.posts {
		p := post
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update overwrites the stored post. Returns ErrPostNotFound for unknown ids.
func (r *PostRepository) Update(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[post.ID]; !ok {
		return postdomain.ErrPostNotFound
	}
	r.posts[post.ID] = *post
	return nil
}

// Delete removes the post. Returns ErrPostNotFound for unknown ids.
func (r *PostRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return postdomain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}
