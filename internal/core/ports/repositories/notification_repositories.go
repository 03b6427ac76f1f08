package repositories

import (
	"context"

	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
)

// NotificationReader defines read operations for notification data
type NotificationReader interface {
	// ListNotifications retrieves a paginated list of notifications for a
	// user. A nil userID lists broadcast notifications.
	ListNotifications(ctx context.Context, userID *string, limit int, offset int) ([]domain.Notification, error)
}

// NotificationWriter defines write operations for notification data
type NotificationWriter interface {
	// SaveNotification persists a new notification.
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// MarkNotificationRead flags a notification as read.
	MarkNotificationRead(ctx context.Context, notificationID string) error
}

// NotificationRepositoryFacade combines all notification-related repository interfaces
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
