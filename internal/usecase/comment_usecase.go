package usecase

import (
	"context"
	"fmt"

	"github.com/ireporter/ireporter/internal/domain"
	"github.com/ireporter/ireporter/internal/ports"
)

// CommentUseCase handles public remarks on records
type CommentUseCase struct {
	commentRepo ports.CommentRepository
	recordRepo  ports.RecordRepository
}

// NewCommentUseCase creates a new comment use case
func NewCommentUseCase(commentRepo ports.CommentRepository, recordRepo ports.RecordRepository) *CommentUseCase {
	return &CommentUseCase{
		commentRepo: commentRepo,
		recordRepo:  recordRepo,
	}
}

// Add leaves a comment on a record. Any authenticated user may comment on any
// record, regardless of its status.
func (uc *CommentUseCase) Add(ctx context.Context, actor domain.Actor, recordID, content string) (*domain.Comment, error) {
	if actor.ID == "" {
		return nil, domain.ErrForbidden
	}

	if _, err := uc.recordRepo.FindByID(ctx, recordID); err != nil {
		return nil, err
	}

	comment, err := domain.NewComment(recordID, actor.ID, content)
	if err != nil {
		return nil, err
	}

	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// ListForRecord retrieves a record's comments, oldest first
func (uc *CommentUseCase) ListForRecord(ctx context.Context, recordID string) ([]*domain.Comment, error) {
	if _, err := uc.recordRepo.FindByID(ctx, recordID); err != nil {
		return nil, err
	}
	return uc.commentRepo.FindByRecordID(ctx, recordID)
}
