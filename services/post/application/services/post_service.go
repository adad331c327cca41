package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/pressroom/pkg/auth"
	pkgcache "github.com/ghuser/pressroom/pkg/cache"
	postdomain "github.com/ghuser/pressroom/services/post/domain"
	"github.com/ghuser/pressroom/services/post/domain/models"
	"github.com/ghuser/pressroom/services/post/domain/repositories"
)

// PostService orchestrates reads and ownership-checked mutations of posts.
// Change-event publication is coordinated by the gateway dispatcher after a
// mutation succeeds, not here. Single-post reads are served from Redis cache
// when available.
type PostService struct {
	repo  repositories.PostRepository
	cache *pkgcache.PostCache
}

// NewPostService returns a PostService wired with the given repository and
// an optional cache (nil disables caching).
func NewPostService(repo repositories.PostRepository, postCache *pkgcache.PostCache) *PostService {
	return &PostService{repo: repo, cache: postCache}
}

// List returns all posts, newest first. An empty store yields an empty
// slice, never an error. Reads require no Subject.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Get retrieves one post using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query the repository.
//  3. Asynchronously warm the cache with the repository result.
func (s *PostService) Get(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	// Cache miss and cache trouble both fall through to the repository.
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil {
			return &models.Post{
				ID:        cached.ID,
				Title:     cached.Title,
				Subtitle:  cached.Subtitle,
				Body:      cached.Body,
				AuthorID:  cached.AuthorID,
				CreatedAt: cached.CreatedAt,
				UpdatedAt: cached.UpdatedAt,
			}, nil
		}
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), cachedFrom(post))
		}()
	}

	return post, nil
}

// Create persists a new post authored by the Subject in ctx.
// Fails with auth.ErrUnauthorized when no Subject is attached.
func (s *PostService) Create(ctx context.Context, title, subtitle, body string) (*models.Post, error) {
	subject, ok := auth.SubjectFromCtx(ctx)
	if !ok {
		return nil, auth.ErrUnauthorized
	}

	post, err := models.NewPost(subject.ID, title, subtitle, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", postdomain.ErrInvalidPost, err)
	}

	if err := s.repo.Save(ctx, post); err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}
	return post, nil
}

// Update overwrites title, subtitle, and body of the post and refreshes
// UpdatedAt. Fails with auth.ErrUnauthorized without a Subject,
// ErrPostNotFound for a missing id, and auth.ErrForbidden when the Subject
// is not the post's author.
func (s *PostService) Update(ctx context.Context, id uuid.UUID, title, subtitle, body string) (*models.Post, error) {
	subject, ok := auth.SubjectFromCtx(ctx)
	if !ok {
		return nil, auth.ErrUnauthorized
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.IsOwnedBy(subject.ID) {
		return nil, auth.ErrForbidden
	}

	if err := post.ApplyEdit(title, subtitle, body); err != nil {
		return nil, fmt.Errorf("%w: %w", postdomain.ErrInvalidPost, err)
	}
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, id)
	}
	return post, nil
}

// Delete removes the post permanently. Same authorization rules as Update.
func (s *PostService) Delete(ctx context.Context, id uuid.UUID) error {
	subject, ok := auth.SubjectFromCtx(ctx)
	if !ok {
		return auth.ErrUnauthorized
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !post.IsOwnedBy(subject.ID) {
		return auth.ErrForbidden
	}

	if err := s.repo.Delete(ctx, post.ID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, id)
	}
	return nil
}

func cachedFrom(post *models.Post) *pkgcache.CachedPost {
	return &pkgcache.CachedPost{
		ID:        post.ID,
		Title:     post.Title,
		Subtitle:  post.Subtitle,
		Body:      post.Body,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}
