package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Error taxonomy surfaced by the core. Callers match with errors.Is; the core
// never logs, retries, or swallows these.
var (
	ErrNotFound          = NewDomainError("record not found")
	ErrForbidden         = NewDomainError("operation not permitted")
	ErrRecordLocked      = NewDomainError("record is no longer editable")
	ErrInvalidTransition = NewDomainError("invalid status transition")
	ErrEmptyComment      = NewDomainError("status change requires a comment")
	ErrConflict          = NewDomainError("record was modified concurrently")
	ErrValidation        = NewDomainError("invalid record")
)

// ValidationError wraps ErrValidation with the offending field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
