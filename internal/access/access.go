// Package access decides whether an actor may perform an operation on a
// record. The evaluator is a pure predicate: it never mutates the record and
// never performs I/O.
package access

import (
	"github.com/ireporter/ireporter/internal/domain"
	"github.com/ireporter/ireporter/internal/lifecycle"
)

// Operation is an action an actor can attempt on a record
type Operation string

const (
	OpCreate        Operation = "create"
	OpRead          Operation = "read"
	OpUpdateContent Operation = "update-content"
	OpUpdateStatus  Operation = "update-status"
	OpDelete        Operation = "delete"
)

// DeleteRequiresDraft selects the delete policy. The implemented behavior lets
// an owner delete a record in any status; flipping this restricts deletion to
// draft records without touching the rule evaluation below.
const DeleteRequiresDraft = false

// Evaluator answers allow/deny questions using role, ownership, and lifecycle
// state. The zero value is ready to use.
type Evaluator struct{}

// Can reports whether the actor may perform op on the record. Rules are
// evaluated in order; the first matching rule wins. A nil error means allowed;
// otherwise the error names the denial reason.
func (Evaluator) Can(actor domain.Actor, record *domain.Record, op Operation) error {
	switch op {
	case OpRead:
		// Records are publicly browsable; owner/admin views add private
		// fields, they do not gate read.
		return nil

	case OpCreate:
		if actor.ID == "" {
			return domain.ErrForbidden
		}
		return nil

	case OpUpdateStatus:
		if !actor.IsAdmin() {
			return domain.ErrForbidden
		}
		return nil

	case OpUpdateContent:
		if record == nil || actor.ID != record.OwnerID {
			return domain.ErrForbidden
		}
		if !lifecycle.IsEditable(record) {
			return domain.ErrRecordLocked
		}
		return nil

	case OpDelete:
		if record == nil || actor.ID != record.OwnerID {
			return domain.ErrForbidden
		}
		if DeleteRequiresDraft && !lifecycle.IsEditable(record) {
			return domain.ErrRecordLocked
		}
		return nil
	}

	return domain.ErrForbidden
}
