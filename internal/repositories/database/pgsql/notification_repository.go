package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/felix-harvey/microfinancial-sub002/internal/apperrors"
	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
	portsrepo "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/repositories"
	"github.com/felix-harvey/microfinancial-sub002/internal/models"
	"github.com/felix-harvey/microfinancial-sub002/internal/utils/mapping"
)

type PgxNotificationRepository struct {
	pool *pgxpool.Pool
}

// newPgxNotificationRepository creates a new repository for notification data.
func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{pool: pool}
}

// Ensure PgxNotificationRepository implements portsrepo.NotificationRepositoryFacade
var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

const notificationColumns = `notification_id, user_id, type, title, message, is_read, created_at`

func scanNotificationRow(row pgx.Row) (models.Notification, error) {
	var m models.Notification
	err := row.Scan(
		&m.NotificationID,
		&m.UserID,
		&m.Type,
		&m.Title,
		&m.Message,
		&m.IsRead,
		&m.CreatedAt,
	)
	return m, err
}

// SaveNotification inserts a new notification.
func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	modelNotif := mapping.ToModelNotification(notification)

	query := `
		INSERT INTO notifications (notification_id, user_id, type, title, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		modelNotif.NotificationID,
		modelNotif.UserID,
		modelNotif.Type,
		modelNotif.Title,
		modelNotif.Message,
		modelNotif.IsRead,
		modelNotif.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification %s: %w", modelNotif.NotificationID, err)
	}
	return nil
}

// ListNotifications retrieves notifications for a user, newest first.
// A nil userID lists broadcast notifications.
func (r *PgxNotificationRepository) ListNotifications(ctx context.Context, userID *string, limit int, offset int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var rows pgx.Rows
	var err error
	if userID != nil {
		query := `
			SELECT ` + notificationColumns + `
			FROM notifications
			WHERE user_id = $1 OR user_id IS NULL
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3;
		`
		rows, err = r.pool.Query(ctx, query, *userID, limit, offset)
	} else {
		query := `
			SELECT ` + notificationColumns + `
			FROM notifications
			WHERE user_id IS NULL
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2;
		`
		rows, err = r.pool.Query(ctx, query, limit, offset)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		m, scanErr := scanNotificationRow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", scanErr)
		}
		notifications = append(notifications, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}

	return mapping.ToDomainNotificationSlice(notifications), nil
}

// MarkNotificationRead flags a notification as read.
func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE notification_id = $1;`

	cmdTag, err := r.pool.Exec(ctx, query, notificationID)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s as read: %w", notificationID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
