package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Notification tells a record owner that something happened to their record.
// Delivery is best-effort; a failed notification never fails the workflow that
// produced it.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	RecordID  string    `json:"record_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewStatusNotification builds the notification written when an admin changes
// a record's status
func NewStatusNotification(record *Record, newStatus RecordStatus) *Notification {
	return &Notification{
		ID:        uuid.NewString(),
		UserID:    record.OwnerID,
		RecordID:  record.ID,
		Message:   fmt.Sprintf("The record %q has been updated to: %s", record.Title, newStatus),
		CreatedAt: time.Now().UTC(),
	}
}
