package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Comment is a public remark left on a record by an authenticated user
type Comment struct {
	ID        string    `json:"id"`
	RecordID  string    `json:"record_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewComment creates a comment on a record
func NewComment(recordID, userID, content string) (*Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, NewValidationError("content", "is required")
	}
	return &Comment{
		ID:        uuid.NewString(),
		RecordID:  recordID,
		UserID:    userID,
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now().UTC(),
	}, nil
}
