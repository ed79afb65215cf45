package store

import (
	"context"
	"errors"
	"time"

	"github.com/nhle/waterwise/internal/model"
)

// Sentinel errors returned by Store implementations. Callers match them
// with errors.Is.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when a user insert violates the
	// unique email constraint.
	ErrDuplicateEmail = errors.New("email already registered")
)

// NotificationFilter controls filtering and result size for
// notification queries.
type NotificationFilter struct {
	UnreadOnly bool
	Type       *model.NotificationType
	Limit      int
}

// Store defines the persistence interface for users, water-usage
// entries, lessons, progress, and notifications.
type Store interface {
	// === Users ===

	CreateUser(ctx context.Context, user model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateHousehold(ctx context.Context, userID string, h model.Household) error

	// === Water usage ===

	CreateUsageEntry(ctx context.Context, entry model.WaterUsageEntry) (*model.WaterUsageEntry, error)
	// GetUsageEntries returns entries with date in [from, to), ascending.
	GetUsageEntries(ctx context.Context, userID string, from, to time.Time) ([]model.WaterUsageEntry, error)
	// GetRecentUsageEntries returns up to limit entries, date descending.
	GetRecentUsageEntries(ctx context.Context, userID string, limit int) ([]model.WaterUsageEntry, error)

	// === Lessons ===

	CreateLesson(ctx context.Context, lesson model.Lesson) (*model.Lesson, error)
	GetLessons(ctx context.Context) ([]model.Lesson, error)
	GetLessonByID(ctx context.Context, id string) (*model.Lesson, error)
	CountLessons(ctx context.Context) (int, error)

	// === Progress ===

	GetProgress(ctx context.Context, userID string) (*model.UserProgress, error)
	CreateProgress(ctx context.Context, progress model.UserProgress) (*model.UserProgress, error)
	UpdateProgress(ctx context.Context, progress model.UserProgress) error
	// AddCompletedLesson records a completion. Recording the same
	// (user, lesson) pair again is a no-op.
	AddCompletedLesson(ctx context.Context, userID, lessonID string, completedAt time.Time, quizScore *int) error
	GetCompletedLessons(ctx context.Context, userID string) ([]model.CompletedLesson, error)

	// === Notifications ===

	CreateNotification(ctx context.Context, n model.Notification) (*model.Notification, error)
	GetNotifications(ctx context.Context, userID string, filter NotificationFilter) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, id string) error
	CountUnreadNotifications(ctx context.Context, userID string) (int, error)
}
