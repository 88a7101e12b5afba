package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/sparkkart/storefront/internal/domain"
)

type NotificationUC struct {
	Notifications domain.NotificationRepo
}

func (uc *NotificationUC) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]domain.Notification, error) {
	return uc.Notifications.ListByUser(ctx, userID, unreadOnly)
}

// MarkRead flips the only mutable bit on a notification.
func (uc *NotificationUC) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return uc.Notifications.MarkRead(ctx, id, userID)
}
