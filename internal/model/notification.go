package model

import "time"

// NotificationType identifies what kind of event produced a notification.
type NotificationType string

const (
	NotificationWaterUsage     NotificationType = "water_usage"
	NotificationLessonReminder NotificationType = "lesson_reminder"
	NotificationAchievement    NotificationType = "achievement"
	NotificationTip            NotificationType = "tip"
	NotificationSystem         NotificationType = "system"
)

// ValidNotificationType reports whether t is a known notification type.
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationWaterUsage, NotificationLessonReminder,
		NotificationAchievement, NotificationTip, NotificationSystem:
		return true
	}
	return false
}

// Notification priority levels.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidPriority reports whether p is a known priority level.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Notification represents an alert or update surfaced to a user.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id" db:"id"`

	// UserID is the user this notification belongs to.
	UserID string `json:"user_id" db:"user_id"`

	// Type identifies which kind of event generated this notification.
	Type NotificationType `json:"type" db:"type"`

	// Title is the short headline text.
	Title string `json:"title" db:"title"`

	// Message is the human-readable notification body.
	Message string `json:"message" db:"message"`

	// IsRead indicates whether the user has seen this notification.
	IsRead bool `json:"is_read" db:"is_read"`

	// Priority is low, medium, or high. Defaults to medium.
	Priority string `json:"priority" db:"priority"`

	// ActionURL optionally links to a view the notification refers to.
	ActionURL string `json:"action_url,omitempty" db:"action_url"`

	// ExpiresAt optionally marks when the notification stops being relevant.
	ExpiresAt *time.Time `json:"expires_at,omitempty" db:"expires_at"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
