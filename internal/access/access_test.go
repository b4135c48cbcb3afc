package access

import (
	"testing"

	"github.com/ireporter/ireporter/internal/domain"
)

var (
	owner    = domain.Actor{ID: "user-1", Role: domain.RoleUser}
	stranger = domain.Actor{ID: "user-2", Role: domain.RoleUser}
	admin    = domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
)

func draftRecord(t *testing.T) *domain.Record {
	t.Helper()
	record, err := domain.NewRecord("Water shortage", "No water for three days", "Kisumu", domain.TypeIntervention, owner.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return record
}

func lockedRecord(t *testing.T) *domain.Record {
	t.Helper()
	record := draftRecord(t)
	record.Status = domain.StatusUnderInvestigation
	return record
}

func TestCanRead(t *testing.T) {
	var eval Evaluator
	record := lockedRecord(t)

	// Read is public, even for anonymous actors
	for _, actor := range []domain.Actor{owner, stranger, admin, {}} {
		if err := eval.Can(actor, record, OpRead); err != nil {
			t.Errorf("read denied for actor %q: %v", actor.ID, err)
		}
	}
}

func TestCanCreate(t *testing.T) {
	var eval Evaluator

	if err := eval.Can(owner, nil, OpCreate); err != nil {
		t.Errorf("create denied for authenticated user: %v", err)
	}
	if err := eval.Can(domain.Actor{}, nil, OpCreate); err != domain.ErrForbidden {
		t.Errorf("expected ErrForbidden for anonymous create, got %v", err)
	}
}

func TestCanUpdateStatus(t *testing.T) {
	var eval Evaluator
	record := draftRecord(t)

	if err := eval.Can(admin, record, OpUpdateStatus); err != nil {
		t.Errorf("update-status denied for admin: %v", err)
	}
	if err := eval.Can(owner, record, OpUpdateStatus); err != domain.ErrForbidden {
		t.Errorf("expected ErrForbidden for non-admin, got %v", err)
	}
}

func TestCanUpdateContent(t *testing.T) {
	var eval Evaluator

	tests := []struct {
		name   string
		actor  domain.Actor
		record *domain.Record
		want   error
	}{
		{"owner edits own draft", owner, draftRecord(t), nil},
		{"owner edits own locked record", owner, lockedRecord(t), domain.ErrRecordLocked},
		{"stranger edits draft", stranger, draftRecord(t), domain.ErrForbidden},
		{"admin edits another user's draft", admin, draftRecord(t), domain.ErrForbidden},
	}

	for _, tt := range tests {
		if got := eval.Can(tt.actor, tt.record, OpUpdateContent); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCanDelete(t *testing.T) {
	var eval Evaluator

	// Ownership is necessary and sufficient; lifecycle state does not gate delete
	if err := eval.Can(owner, draftRecord(t), OpDelete); err != nil {
		t.Errorf("delete denied for owner of draft: %v", err)
	}
	if err := eval.Can(owner, lockedRecord(t), OpDelete); err != nil {
		t.Errorf("delete denied for owner of locked record: %v", err)
	}
	if err := eval.Can(stranger, draftRecord(t), OpDelete); err != domain.ErrForbidden {
		t.Errorf("expected ErrForbidden for stranger delete, got %v", err)
	}
	if err := eval.Can(admin, lockedRecord(t), OpDelete); err != domain.ErrForbidden {
		t.Errorf("expected ErrForbidden for admin delete of another user's record, got %v", err)
	}
}

func TestCanUnknownOperation(t *testing.T) {
	var eval Evaluator
	if err := eval.Can(admin, draftRecord(t), Operation("purge")); err != domain.ErrForbidden {
		t.Errorf("expected ErrForbidden for unknown operation, got %v", err)
	}
}
