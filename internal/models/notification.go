package models

import "time"

// NotificationType classifies in-app notifications.
type NotificationType string

// Notification represents an in-app notification row.
type Notification struct {
	NotificationID string           `db:"notification_id"` // Primary Key (UUID)
	UserID         *string          `db:"user_id"`         // Nullable, nil means broadcast
	Type           NotificationType `db:"type"`
	Title          string           `db:"title"`
	Message        string           `db:"message"`
	IsRead         bool             `db:"is_read"`
	CreatedAt      time.Time        `db:"created_at"`
}
