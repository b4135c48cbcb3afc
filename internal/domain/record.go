package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RecordStatus represents the lifecycle status of a record
type RecordStatus string

const (
	StatusDraft              RecordStatus = "draft"
	StatusUnderInvestigation RecordStatus = "under investigation"
	StatusResolved           RecordStatus = "resolved"
	StatusRejected           RecordStatus = "rejected"
)

// ParseStatus normalizes a status string read at the boundary into the closed
// enum. Normalization happens here once, never in comparisons.
func ParseStatus(s string) (RecordStatus, bool) {
	switch RecordStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusDraft:
		return StatusDraft, true
	case StatusUnderInvestigation:
		return StatusUnderInvestigation, true
	case StatusResolved:
		return StatusResolved, true
	case StatusRejected:
		return StatusRejected, true
	}
	return "", false
}

// RecordType represents the kind of report a citizen submits
type RecordType string

const (
	TypeRedFlag      RecordType = "red-flag"
	TypeIntervention RecordType = "intervention"
)

// ParseRecordType normalizes a record type string read at the boundary
func ParseRecordType(s string) (RecordType, bool) {
	switch RecordType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeRedFlag:
		return TypeRedFlag, true
	case TypeIntervention:
		return TypeIntervention, true
	}
	return "", false
}

// StatusChange is a single entry in a record's audit trail
type StatusChange struct {
	Status    RecordStatus `json:"status"`
	Comment   string       `json:"comment"`
	ChangedBy string       `json:"changed_by"`
	Timestamp time.Time    `json:"timestamp"`
}

// Record represents a citizen-submitted incident report
type Record struct {
	ID            string         `json:"id"`
	OwnerID       string         `json:"owner_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Location      string         `json:"location"`
	RecordType    RecordType     `json:"record_type"`
	Status        RecordStatus   `json:"status"`
	StatusHistory []StatusChange `json:"status_history,omitempty"`
	Anonymous     bool           `json:"anonymous,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	// Version is incremented by the repository on every successful write and
	// used for optimistic concurrency. A stale writer loses with ErrConflict.
	Version int64 `json:"version"`
}

// NewRecord creates a new record in draft status owned by ownerID
func NewRecord(title, description, location string, recordType RecordType, ownerID string) (*Record, error) {
	if err := validateContent(title, description, location, recordType); err != nil {
		return nil, err
	}
	if ownerID == "" {
		return nil, NewValidationError("owner_id", "is required")
	}

	now := time.Now().UTC()
	return &Record{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Location:    strings.TrimSpace(location),
		RecordType:  recordType,
		Status:      StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}, nil
}

// UpdateContent replaces the mutable content fields. Callers must have cleared
// access control first; this only revalidates the new values. Status is never
// touched here.
func (r *Record) UpdateContent(title, description, location string, recordType RecordType) error {
	if err := validateContent(title, description, location, recordType); err != nil {
		return err
	}
	r.Title = strings.TrimSpace(title)
	r.Description = strings.TrimSpace(description)
	r.Location = strings.TrimSpace(location)
	r.RecordType = recordType
	r.UpdatedAt = time.Now().UTC()
	return nil
}

func validateContent(title, description, location string, recordType RecordType) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", "is required")
	}
	if strings.TrimSpace(description) == "" {
		return NewValidationError("description", "is required")
	}
	if strings.TrimSpace(location) == "" {
		return NewValidationError("location", "is required")
	}
	if recordType != TypeRedFlag && recordType != TypeIntervention {
		return NewValidationError("record_type", "must be red-flag or intervention")
	}
	return nil
}
