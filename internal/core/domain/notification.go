package domain

import "time"

// NotificationType classifies in-app notifications.
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationInfo    NotificationType = "info"
)

// Notification is an in-app message recorded for a user (or broadcast when
// UserID is nil).
type Notification struct {
	NotificationID string           `json:"notificationID"` // Primary Key (UUID)
	UserID         *string          `json:"userID,omitempty"`
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	IsRead         bool             `json:"isRead"`
	CreatedAt      time.Time        `json:"createdAt"`
}
