package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"commentboard/api/internal/models"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// Create persists the comment and reads the database-assigned timestamp
// back, so the caller returns the same created_at a later list would.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	const query = `
		INSERT INTO comments (id, user_id, content, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`
	row := r.pool.QueryRow(ctx, query, comment.ID, comment.UserID, comment.Content)
	return row.Scan(&comment.CreatedAt)
}

// ListNewestFirst returns all comments with their author's display name,
// most recent first.
func (r *CommentRepository) ListNewestFirst(ctx context.Context) ([]models.Comment, error) {
	const query = `
		SELECT c.id, c.user_id, c.content, u.name, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		ORDER BY c.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.UserID,
			&comment.Content,
			&comment.AuthorName,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (models.Comment, error) {
	const query = `
		SELECT c.id, c.user_id, c.content, u.name, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var comment models.Comment
	if err := row.Scan(
		&comment.ID,
		&comment.UserID,
		&comment.Content,
		&comment.AuthorName,
		&comment.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Comment{}, ErrCommentNotFound
		}
		return models.Comment{}, err
	}
	return comment, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM comments WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCommentNotFound
	}
	return nil
}
