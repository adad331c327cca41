package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// PostCacheTTL is the time-to-live for cached posts.
	PostCacheTTL = time.Hour

	postCacheKeyPrefix = "post"
)

// CachedPost is the denormalized read model stored in Redis.
// Fields are stored as a Redis hash.
type CachedPost struct {
	ID        uuid.UUID
	Title     string
	Subtitle  string
	Body      string
	AuthorID  uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostCache provides read-through cache entries for single posts.
// Key format: "post:{postID}". Mutations must call Delete so the next read
// repopulates from Postgres — last write wins on the read side.
type PostCache struct {
	client *RedisClient
}

// NewPostCache creates a PostCache backed by the given RedisClient.
func NewPostCache(r *RedisClient) *PostCache {
	return &PostCache{client: r}
}

// Get retrieves a cached post by ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *PostCache) Get(ctx context.Context, postID uuid.UUID) (*CachedPost, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(postID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	authorID, err := uuid.Parse(vals["author_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse author_id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}

	return &CachedPost{
		ID:        id,
		Title:     vals["title"],
		Subtitle:  vals["subtitle"],
		Body:      vals["body"],
		AuthorID:  authorID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// Set writes a cached post as a Redis hash with a TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *PostCache) Set(ctx context.Context, post *CachedPost) error {
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, c.key(post.ID),
		"id", post.ID.String(),
		"title", post.Title,
		"subtitle", post.Subtitle,
		"body", post.Body,
		"author_id", post.AuthorID.String(),
		"created_at", post.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at", post.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, c.key(post.ID), PostCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached post. Called on update and delete mutations.
func (c *PostCache) Delete(ctx context.Context, postID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(postID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *PostCache) key(postID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", postCacheKeyPrefix, postID)
}
