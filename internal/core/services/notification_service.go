package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
	portsrepo "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/repositories"
	portssvc "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/services"
	"github.com/felix-harvey/microfinancial-sub002/internal/dto"
	"github.com/felix-harvey/microfinancial-sub002/internal/middleware"
)

// notificationService records and serves in-app notifications.
type notificationService struct {
	notificationRepo portsrepo.NotificationRepositoryFacade
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade) portssvc.NotificationSvcFacade {
	return &notificationService{notificationRepo: notificationRepo}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// Notify records a notification for a user. Failures are logged and swallowed:
// a notification must never fail the operation that produced it.
func (s *notificationService) Notify(ctx context.Context, userID *string, notificationType domain.NotificationType, title string, message string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         userID,
		Type:           notificationType,
		Title:          title,
		Message:        message,
		IsRead:         false,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		logger.Error("Failed to save notification", slog.String("error", err.Error()), slog.String("title", title))
		return
	}

	logger.Debug("Notification recorded", slog.String("notification_id", notification.NotificationID), slog.String("type", string(notificationType)))
}

// ListNotifications retrieves a paginated list of notifications for a user.
func (s *notificationService) ListNotifications(ctx context.Context, userID *string, params dto.ListNotificationsParams) ([]domain.Notification, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	notifications, err := s.notificationRepo.ListNotifications(ctx, userID, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flags a notification as read.
func (s *notificationService) MarkRead(ctx context.Context, notificationID string) error {
	if err := s.notificationRepo.MarkNotificationRead(ctx, notificationID); err != nil {
		return fmt.Errorf("failed to mark notification %s as read: %w", notificationID, err)
	}
	return nil
}
