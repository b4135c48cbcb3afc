package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ireporter/ireporter/internal/domain"
	"github.com/ireporter/ireporter/internal/ports"
)

// PostgresCommentRepository implements CommentRepository using PostgreSQL
type PostgresCommentRepository struct {
	db *sql.DB
}

// NewPostgresCommentRepository creates a new PostgreSQL comment repository
func NewPostgresCommentRepository(db *sql.DB) ports.CommentRepository {
	return &PostgresCommentRepository{db: db}
}

// Create saves a new comment
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO comments (id, record_id, user_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, comment.ID, comment.RecordID, comment.UserID, comment.Content, comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// FindByRecordID retrieves a record's comments, oldest first
func (r *PostgresCommentRepository) FindByRecordID(ctx context.Context, recordID string) ([]*domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, record_id, user_id, content, created_at
		FROM comments
		WHERE record_id = $1
		ORDER BY created_at ASC, id ASC
	`, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(&comment.ID, &comment.RecordID, &comment.UserID, &comment.Content, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}
