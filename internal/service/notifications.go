package service

import (
	"context"
	"strings"
	"time"

	"github.com/nhle/waterwise/internal/model"
	"github.com/nhle/waterwise/internal/store"
)

// Default result size for notification listings.
const defaultNotificationLimit = 20

// NotificationService manages user-scoped notification records.
type NotificationService struct {
	store store.Store
}

// NewNotificationService creates a new notification service.
func NewNotificationService(s store.Store) *NotificationService {
	return &NotificationService{store: s}
}

// ListOptions controls filtering for notification listings.
type ListOptions struct {
	UnreadOnly bool
	Type       string
	Limit      int
}

// List returns the user's notifications, newest first. An unknown type
// filter fails with a ValidationError.
func (s *NotificationService) List(ctx context.Context, userID string, opts ListOptions) ([]model.Notification, error) {
	filter := store.NotificationFilter{
		UnreadOnly: opts.UnreadOnly,
		Limit:      opts.Limit,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultNotificationLimit
	}
	if opts.Type != "" {
		t := model.NotificationType(opts.Type)
		if !model.ValidNotificationType(t) {
			return nil, &ValidationError{Fields: []FieldError{
				{Field: "type", Message: "must be one of water_usage, lesson_reminder, achievement, tip, system"},
			}}
		}
		filter.Type = &t
	}

	notifications, err := s.store.GetNotifications(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	return notifications, nil
}

// CreateInput carries the fields of a notification create request.
type CreateInput struct {
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Priority  string     `json:"priority"`
	ActionURL string     `json:"action_url"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Create validates and stores a new notification for the user,
// reporting every missing or invalid field at once.
func (s *NotificationService) Create(ctx context.Context, userID string, in CreateInput) (*model.Notification, error) {
	var v validation
	if strings.TrimSpace(in.Title) == "" {
		v.add("title", "is required")
	}
	if strings.TrimSpace(in.Message) == "" {
		v.add("message", "is required")
	}
	if in.Type == "" {
		v.add("type", "is required")
	} else if !model.ValidNotificationType(model.NotificationType(in.Type)) {
		v.add("type", "must be one of water_usage, lesson_reminder, achievement, tip, system")
	}
	if in.Priority != "" && !model.ValidPriority(in.Priority) {
		v.add("priority", "must be one of low, medium, high")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	return s.store.CreateNotification(ctx, model.Notification{
		UserID:    userID,
		Type:      model.NotificationType(in.Type),
		Title:     strings.TrimSpace(in.Title),
		Message:   strings.TrimSpace(in.Message),
		Priority:  in.Priority,
		ActionURL: in.ActionURL,
		ExpiresAt: in.ExpiresAt,
	})
}

// MarkRead marks one notification as read; repeating it is a no-op
// success.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.store.MarkNotificationRead(ctx, id)
}

// MarkAllRead marks all of a user's unread notifications as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.store.MarkAllNotificationsRead(ctx, userID)
}

// Delete removes a notification by ID.
func (s *NotificationService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteNotification(ctx, id)
}

// UnreadCount returns how many unread notifications the user has.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.store.CountUnreadNotifications(ctx, userID)
}
