package usecase

import (
	"context"

	"github.com/ireporter/ireporter/internal/domain"
	"github.com/ireporter/ireporter/internal/ports"
)

// NotificationUseCase lists the notifications written for a record owner
type NotificationUseCase struct {
	notificationRepo ports.NotificationRepository
}

// NewNotificationUseCase creates a new notification use case
func NewNotificationUseCase(notificationRepo ports.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notificationRepo: notificationRepo}
}

// ListOwn retrieves the actor's notifications, newest first
func (uc *NotificationUseCase) ListOwn(ctx context.Context, actor domain.Actor) ([]*domain.Notification, error) {
	if actor.ID == "" {
		return nil, domain.ErrForbidden
	}
	return uc.notificationRepo.FindByUserID(ctx, actor.ID)
}
