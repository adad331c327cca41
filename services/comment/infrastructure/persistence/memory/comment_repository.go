// Package memory provides an in-memory CommentRepository used by tests and
// local development without a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	commentdomain "github.com/ghuser/pressroom/services/comment/domain"
	"github.com/ghuser/pressroom/services/comment/domain/models"
)

// CommentRepository is a mutex-guarded map implementation of
// repositories.CommentRepository.
type CommentRepository struct {
	mu       sync.RWMutex
	comments map[uuid.UUID]models.Comment
}

// NewCommentRepository returns an empty in-memory repository.
func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[uuid.UUID]models.Comment)}
}

// Save stores a copy of comment.
func (r *CommentRepository) Save(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments[comment.ID] = *comment
	return nil
}

// GetByID returns a copy of the stored comment or ErrCommentNotFound.
func (r *CommentRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	comment, ok := r.comments[id]
	if !ok {
		return nil, commentdomain.ErrCommentNotFound
	}
	return &comment, nil
}

// FindByPost returns every comment on a post, oldest first.
func (r *CommentRepository) FindByPost(_ context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Comment, 0)
	for _, comment := range r.comments {
		if comment.PostID == postID {
			c := comment
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Update overwrites the stored comment. Returns ErrCommentNotFound for
// unknown ids.
func (r *CommentRepository) Update(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[comment.ID]; !ok {
		return commentdomain.ErrCommentNotFound
	}
	r.comments[comment.ID] = *comment
	return nil
}

// Delete removes the comment. Returns ErrCommentNotFound for unknown ids.
func (r *CommentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return commentdomain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

// DeleteByPost removes every comment on a post.
func (r *CommentRepository) DeleteByPost(_ context.Context, postID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, comment := range r.comments {
		if comment.PostID == postID {
			delete(r.comments, id)
		}
	}
	return nil
}
