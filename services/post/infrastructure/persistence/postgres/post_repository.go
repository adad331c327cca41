package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ghuser/pressroom/pkg/database"
	postdomain "github.com/ghuser/pressroom/services/post/domain"
	"github.com/ghuser/pressroom/services/post/domain/models"
)

// PostRepository implements repositories.PostRepository against PostgreSQL.
type PostRepository struct {
	db *database.Database
}

// NewPostRepository returns a PostRepository backed by the given pool.
func NewPostRepository(db *database.Database) *PostRepository {
	return &PostRepository{db: db}
}

// Save persists a new post.
func (r *PostRepository) Save(ctx context.Context, post *models.Post) error {
	_, err := r.db.Pool().Exec(ctx, `
		INSERT INTO posts (id, title, subtitle, body, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		post.ID, post.Title, post.Subtitle, post.Body, post.AuthorID, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetByID retrieves a post by id. Returns ErrPostNotFound when missing.
func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	row := r.db.Pool().QueryRow(ctx, `
		SELECT id, title, subtitle, body, author_id, created_at, updated_at
		FROM posts WHERE id = $1`, id)

	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, postdomain.ErrPostNotFound
		}
		return nil, fmt.Errorf("query post: %w", err)
	}
	return post, nil
}

// FindAll retrieves every post, newest first.
func (r *PostRepository) FindAll(ctx context.Context) ([]*models.Post, error) {
	rows, err := r.db.Pool().Query(ctx, `
		SELECT id, title, subtitle, body, author_id, created_at, updated_at
		FROM posts ORDER BY updated_at DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

// Update overwrites the mutable fields of an existing post.
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	tag, err := r.db.Pool().Exec(ctx, `
		UPDATE posts SET title = $2, subtitle = $3, body = $4, updated_at = $5
		WHERE id = $1`,
		post.ID, post.Title, post.Subtitle, post.Body, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return postdomain.ErrPostNotFound
	}
	return nil
}

// Delete removes a post permanently.
func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return postdomain.ErrPostNotFound
	}
	return nil
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Subtitle,
		&post.Body,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}
