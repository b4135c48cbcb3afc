package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ireporter/ireporter/internal/domain"
	"github.com/ireporter/ireporter/internal/ports"
)

// PostgresNotificationRepository implements NotificationRepository using PostgreSQL
type PostgresNotificationRepository struct {
	db *sql.DB
}

// NewPostgresNotificationRepository creates a new PostgreSQL notification repository
func NewPostgresNotificationRepository(db *sql.DB) ports.NotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

// Create saves a new notification
func (r *PostgresNotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, record_id, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, notification.ID, notification.UserID, notification.RecordID, notification.Message, notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// FindByUserID retrieves a user's notifications, newest first
func (r *PostgresNotificationRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, record_id, message, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		var notification domain.Notification
		if err := rows.Scan(&notification.ID, &notification.UserID, &notification.RecordID, &notification.Message, &notification.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, &notification)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	return notifications, nil
}
