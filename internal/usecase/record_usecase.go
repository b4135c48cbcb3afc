package usecase

import (
	"context"
	"fmt"

	"github.com/ireporter/ireporter/internal/access"
	"github.com/ireporter/ireporter/internal/domain"
	"github.com/ireporter/ireporter/internal/lifecycle"
	"github.com/ireporter/ireporter/internal/ports"
	"github.com/ireporter/ireporter/internal/query"
	"github.com/ireporter/ireporter/internal/service/logger"
)

// CreateRecordRequest represents the request to create a record
type CreateRecordRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	RecordType  string `json:"record_type"`
	Anonymous   bool   `json:"anonymous"`
}

// UpdateRecordRequest represents a content-only edit of a record
type UpdateRecordRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	RecordType  string `json:"record_type"`
}

// ListRecordsRequest represents a listing request after boundary parsing
type ListRecordsRequest struct {
	Query      string
	RecordType string
	Page       int
	PerPage    int
}

// RecordUseCase orchestrates record operations: authorize, validate against the
// lifecycle, persist, and return the mutated record so callers never need a
// blind re-fetch.
type RecordUseCase struct {
	recordRepo       ports.RecordRepository
	notificationRepo ports.NotificationRepository
	authz            access.Evaluator
	logger           logger.Logger
}

// NewRecordUseCase creates a new record use case
func NewRecordUseCase(recordRepo ports.RecordRepository, notificationRepo ports.NotificationRepository, log logger.Logger) *RecordUseCase {
	return &RecordUseCase{
		recordRepo:       recordRepo,
		notificationRepo: notificationRepo,
		logger:           log,
	}
}

// Create submits a new record in draft status owned by the actor
func (uc *RecordUseCase) Create(ctx context.Context, actor domain.Actor, req CreateRecordRequest) (*domain.Record, error) {
	if err := uc.authz.Can(actor, nil, access.OpCreate); err != nil {
		return nil, err
	}

	recordType, ok := domain.ParseRecordType(req.RecordType)
	if !ok {
		return nil, domain.NewValidationError("record_type", "must be red-flag or intervention")
	}

	record, err := domain.NewRecord(req.Title, req.Description, req.Location, recordType, actor.ID)
	if err != nil {
		return nil, err
	}
	record.Anonymous = req.Anonymous

	if err := uc.recordRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	return record, nil
}

// Get retrieves a single record by ID
func (uc *RecordUseCase) Get(ctx context.Context, id string) (*domain.Record, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return uc.recordRepo.FindByID(ctx, id)
}

// List retrieves a page of records. An empty ownerID scope means all records.
func (uc *RecordUseCase) List(ctx context.Context, ownerID string, req ListRecordsRequest) (*query.Page, error) {
	params := query.Params{
		Query:    req.Query,
		OwnerID:  ownerID,
		Page:     req.Page,
		PageSize: req.PerPage,
	}
	if req.RecordType != "" {
		recordType, ok := domain.ParseRecordType(req.RecordType)
		if !ok {
			return nil, domain.NewValidationError("type", "must be red-flag or intervention")
		}
		params.TypeFilter = &recordType
	}

	records, err := uc.recordRepo.FindAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	page := query.Run(records, params)
	return &page, nil
}

// UpdateContent edits a record's content fields. Only the owner may edit, and
// only while the record is still in draft.
func (uc *RecordUseCase) UpdateContent(ctx context.Context, actor domain.Actor, id string, req UpdateRecordRequest) (*domain.Record, error) {
	record, err := uc.recordRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.authz.Can(actor, record, access.OpUpdateContent); err != nil {
		return nil, err
	}

	recordType, ok := domain.ParseRecordType(req.RecordType)
	if !ok {
		return nil, domain.NewValidationError("record_type", "must be red-flag or intervention")
	}

	expectedVersion := record.Version
	if err := record.UpdateContent(req.Title, req.Description, req.Location, recordType); err != nil {
		return nil, err
	}

	if err := uc.recordRepo.Update(ctx, record, expectedVersion); err != nil {
		return nil, err
	}

	return record, nil
}

// UpdateStatus runs the admin status workflow: authorize, validate the
// transition, persist record and audit entry, then notify the owner. The
// persisted write is atomic from the caller's perspective; the notification is
// best-effort.
func (uc *RecordUseCase) UpdateStatus(ctx context.Context, actor domain.Actor, id, status, comment string) (*domain.Record, error) {
	record, err := uc.recordRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.authz.Can(actor, record, access.OpUpdateStatus); err != nil {
		return nil, err
	}

	newStatus, ok := domain.ParseStatus(status)
	if !ok {
		return nil, domain.ErrInvalidTransition
	}

	expectedVersion := record.Version
	if err := lifecycle.ApplyTransition(record, newStatus, comment, actor); err != nil {
		return nil, err
	}

	if err := uc.recordRepo.Update(ctx, record, expectedVersion); err != nil {
		return nil, err
	}

	if uc.notificationRepo != nil {
		if err := uc.notificationRepo.Create(ctx, domain.NewStatusNotification(record, newStatus)); err != nil && uc.logger != nil {
			uc.logger.Warn("failed to write status notification", map[string]interface{}{
				"record_id": record.ID,
				"owner_id":  record.OwnerID,
				"error":     err.Error(),
			})
		}
	}

	return record, nil
}

// Delete removes a record. Ownership is necessary and sufficient under the
// default policy; see access.DeleteRequiresDraft.
func (uc *RecordUseCase) Delete(ctx context.Context, actor domain.Actor, id string) error {
	record, err := uc.recordRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.authz.Can(actor, record, access.OpDelete); err != nil {
		return err
	}

	return uc.recordRepo.Delete(ctx, id)
}

// Stats summarizes a record scope for the dashboard
type Stats struct {
	Total    int                         `json:"total"`
	ByStatus map[domain.RecordStatus]int `json:"by_status"`
	ByType   map[domain.RecordType]int   `json:"by_type"`
}

// GetStats counts records grouped by status and by type. An empty ownerID
// scope means all records.
func (uc *RecordUseCase) GetStats(ctx context.Context, ownerID string) (*Stats, error) {
	records, err := uc.recordRepo.FindAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load records for stats: %w", err)
	}

	stats := &Stats{
		Total:    len(records),
		ByStatus: make(map[domain.RecordStatus]int),
		ByType:   make(map[domain.RecordType]int),
	}
	for _, r := range records {
		stats.ByStatus[r.Status]++
		stats.ByType[r.RecordType]++
	}
	return stats, nil
}
