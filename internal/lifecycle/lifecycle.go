// Package lifecycle is the single source of truth for record status
// transitions and the editability predicate derived from them.
package lifecycle

import (
	"strings"
	"time"

	"github.com/ireporter/ireporter/internal/domain"
)

// allowedTransitions maps a current status to the statuses an admin may move
// it to. Records leave draft exactly once and never return.
var allowedTransitions = map[domain.RecordStatus][]domain.RecordStatus{
	domain.StatusDraft: {
		domain.StatusUnderInvestigation,
		domain.StatusResolved,
		domain.StatusRejected,
	},
}

// IsEditable reports whether a record's content fields may still be changed.
// Only draft records are editable.
func IsEditable(r *domain.Record) bool {
	return r.Status == domain.StatusDraft
}

// CanTransition reports whether moving a record from one status to another is
// legal. Self-loops, transitions out of a terminal status, and transitions
// into draft are all illegal.
func CanTransition(from, to domain.RecordStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ApplyTransition moves the record to the given status, appending the audit
// entry that justifies the change. It is the only legal way to mutate a
// record's status. The comment is mandatory; the history is append-only.
func ApplyTransition(r *domain.Record, to domain.RecordStatus, comment string, actor domain.Actor) error {
	if !CanTransition(r.Status, to) {
		return domain.ErrInvalidTransition
	}
	if strings.TrimSpace(comment) == "" {
		return domain.ErrEmptyComment
	}

	now := time.Now().UTC()
	r.StatusHistory = append(r.StatusHistory, domain.StatusChange{
		Status:    to,
		Comment:   comment,
		ChangedBy: actor.ID,
		Timestamp: now,
	})
	r.Status = to
	r.UpdatedAt = now
	return nil
}
