package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ghuser/pressroom/pkg/database"
	commentdomain "github.com/ghuser/pressroom/services/comment/domain"
	"github.com/ghuser/pressroom/services/comment/domain/models"
)

// CommentRepository implements repositories.CommentRepository against PostgreSQL.
type CommentRepository struct {
	db *database.Database
}

// NewCommentRepository returns a CommentRepository backed by the given pool.
func NewCommentRepository(db *database.Database) *CommentRepository {
	return &CommentRepository{db: db}
}

// Save persists a new comment.
func (r *CommentRepository) Save(ctx context.Context, comment *models.Comment) error {
	_, err := r.db.Pool().Exec(ctx, `
		INSERT INTO comments (id, text, post_id, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		comment.ID, comment.Text, comment.PostID, comment.AuthorID, comment.CreatedAt, comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment by id. Returns ErrCommentNotFound when missing.
func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	row := r.db.Pool().QueryRow(ctx, `
		SELECT id, text, post_id, author_id, created_at, updated_at
		FROM comments WHERE id = $1`, id)

	comment, err := scanComment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, commentdomain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("query comment: %w", err)
	}
	return comment, nil
}

// FindByPost retrieves every comment on a post, oldest first.
func (r *CommentRepository) FindByPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	rows, err := r.db.Pool().Query(ctx, `
		SELECT id, text, post_id, author_id, created_at, updated_at
		FROM comments WHERE post_id = $1 ORDER BY created_at ASC`, postID)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}

// Update overwrites the mutable fields of an existing comment.
func (r *CommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	tag, err := r.db.Pool().Exec(ctx, `
		UPDATE comments SET text = $2, updated_at = $3 WHERE id = $1`,
		comment.ID, comment.Text, comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return commentdomain.ErrCommentNotFound
	}
	return nil
}

// Delete removes a comment permanently.
func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return commentdomain.ErrCommentNotFound
	}
	return nil
}

// DeleteByPost removes every comment on a post.
func (r *CommentRepository) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	_, err := r.db.Pool().Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("delete comments for post: %w", err)
	}
	return nil
}

func scanComment(row pgx.Row) (*models.Comment, error) {
	var comment models.Comment
	err := row.Scan(
		&comment.ID,
		&comment.Text,
		&comment.PostID,
		&comment.AuthorID,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
