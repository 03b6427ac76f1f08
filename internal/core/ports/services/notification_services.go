package services

import (
	"context"

	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
	"github.com/felix-harvey/microfinancial-sub002/internal/dto"
)

// NotificationSvcFacade records and serves in-app notifications. Notify is
// best-effort: failures are logged and never propagated to the caller, a
// notification must not fail the operation that produced it.
type NotificationSvcFacade interface {
	// Notify records a notification for a user. A nil userID records a broadcast.
	Notify(ctx context.Context, userID *string, notificationType domain.NotificationType, title string, message string)

	// ListNotifications retrieves a paginated list of notifications for a user.
	ListNotifications(ctx context.Context, userID *string, params dto.ListNotificationsParams) ([]domain.Notification, error)

	// MarkRead flags a notification as read.
	MarkRead(ctx context.Context, notificationID string) error
}
