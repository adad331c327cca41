package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/pressroom/pkg/auth"
	commentdomain "github.com/ghuser/pressroom/services/comment/domain"
	"github.com/ghuser/pressroom/services/comment/domain/models"
	"github.com/ghuser/pressroom/services/comment/domain/repositories"
)

// CommentService orchestrates reads and ownership-checked mutations of
// comments. Comments do not emit change events; only posts do.
type CommentService struct {
	repo repositories.CommentRepository
}

// NewCommentService returns a CommentService wired with the given repository.
func NewCommentService(repo repositories.CommentRepository) *CommentService {
	return &CommentService{repo: repo}
}

// ListForPost returns all comments on a post, oldest first.
func (s *CommentService) ListForPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	comments, err := s.repo.FindByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Create attaches a new comment to a post, authored by the Subject in ctx.
func (s *CommentService) Create(ctx context.Context, postID uuid.UUID, text string) (*models.Comment, error) {
	subject, ok := auth.SubjectFromCtx(ctx)
	if !ok {
		return nil, auth.ErrUnauthorized
	}

	comment, err := models.NewComment(postID, subject.ID, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", commentdomain.ErrInvalidComment, err)
	}

	if err := s.repo.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("save comment: %w", err)
	}
	return comment, nil
}

// Get returns one comment by id.
func (s *CommentService) Get(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	return s.repo.GetByID(ctx, id)
}

// Update overwrites the text of the Subject's own comment. Same
// authorization rules as Delete.
func (s *CommentService) Update(ctx context.Context, id uuid.UUID, text string) (*models.Comment, error) {
	subject, ok := auth.SubjectFromCtx(ctx)
	if !ok {
		return nil, auth.ErrUnauthorized
	}

	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !comment.IsOwnedBy(subject.ID) {
		return nil, auth.ErrForbidden
	}

	if err := comment.ApplyEdit(text); err != nil {
		return nil, fmt.Errorf("%w: %w", commentdomain.ErrInvalidComment, err)
	}
	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

// Delete removes the Subject's own comment. Fails with ErrCommentNotFound
// for unknown ids and auth.ErrForbidden for comments authored by others.
func (s *CommentService) Delete(ctx context.Context, id uuid.UUID) error {
	subject, ok := auth.SubjectFromCtx(ctx)
	if !ok {
		return auth.ErrUnauthorized
	}

	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !comment.IsOwnedBy(subject.ID) {
		return auth.ErrForbidden
	}

	if err := s.repo.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// DeleteForPost removes every comment on a post. Called by the gateway after
// the post itself was deleted; ownership was already checked there.
func (s *CommentService) DeleteForPost(ctx context.Context, postID uuid.UUID) error {
	if err := s.repo.DeleteByPost(ctx, postID); err != nil {
		return fmt.Errorf("delete comments for post: %w", err)
	}
	return nil
}
