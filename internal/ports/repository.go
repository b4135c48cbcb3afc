package ports

import (
	"context"

	"github.com/ireporter/ireporter/internal/domain"
)

// RecordRepository defines the persistence contract for records. Update takes
// the version the caller read; a mismatch means a concurrent writer won and
// the call fails with domain.ErrConflict.
type RecordRepository interface {
	// Create saves a new record
	Create(ctx context.Context, record *domain.Record) error

	// FindByID retrieves a record with its status history, or domain.ErrNotFound
	FindByID(ctx context.Context, id string) (*domain.Record, error)

	// FindAll retrieves every record, or only one owner's when ownerID is non-empty
	FindAll(ctx context.Context, ownerID string) ([]*domain.Record, error)

	// Update persists the record if its stored version still equals
	// expectedVersion, incrementing the version on success
	Update(ctx context.Context, record *domain.Record, expectedVersion int64) error

	// Delete removes a record, or domain.ErrNotFound
	Delete(ctx context.Context, id string) error
}

// UserRepository defines the persistence contract for user accounts
type UserRepository interface {
	// Create saves a new user, or domain.ErrConflict when the username or
	// email is already taken
	Create(ctx context.Context, user *domain.User) error

	// FindByID retrieves a user, or domain.ErrNotFound
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByEmail retrieves a user by email, or domain.ErrNotFound
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdatePhoneNumber sets the user's phone number
	UpdatePhoneNumber(ctx context.Context, id, phoneNumber string) error
}

// CommentRepository defines the persistence contract for record comments
type CommentRepository interface {
	// Create saves a new comment
	Create(ctx context.Context, comment *domain.Comment) error

	// FindByRecordID retrieves a record's comments, oldest first
	FindByRecordID(ctx context.Context, recordID string) ([]*domain.Comment, error)
}

// NotificationRepository defines the persistence contract for notifications
type NotificationRepository interface {
	// Create saves a new notification
	Create(ctx context.Context, notification *domain.Notification) error

	// FindByUserID retrieves a user's notifications, newest first
	FindByUserID(ctx context.Context, userID string) ([]*domain.Notification, error)
}
