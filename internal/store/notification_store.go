package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/waterwise/internal/model"
)

// CreateNotification inserts a new notification. Generates a UUID if ID
// is empty and defaults priority to medium.
func (s *SQLiteStore) CreateNotification(ctx context.Context, n model.Notification) (*model.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Priority == "" {
		n.Priority = model.PriorityMedium
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	var expiresAt interface{}
	if n.ExpiresAt != nil {
		expiresAt = n.ExpiresAt.UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (
			id, user_id, type, title, message, is_read, priority, action_url, expires_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, string(n.Type), n.Title, n.Message,
		boolToInt(n.IsRead), n.Priority, n.ActionURL, expiresAt, n.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}

	return &n, nil
}

// GetNotifications retrieves a user's notifications matching the filter,
// ordered by creation time descending.
func (s *SQLiteStore) GetNotifications(ctx context.Context, userID string, filter NotificationFilter) ([]model.Notification, error) {
	conditions := []string{"user_id = ?"}
	args := []interface{}{userID}

	if filter.UnreadOnly {
		conditions = append(conditions, "is_read = 0")
	}
	if filter.Type != nil {
		conditions = append(conditions, "type = ?")
		args = append(args, string(*filter.Type))
	}

	query := "SELECT * FROM notifications WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead marks a single notification as read. Marking an
// already-read notification again is a no-op success.
func (s *SQLiteStore) MarkNotificationRead(ctx context.Context, id string) error {
	var exists int
	err := s.db.GetContext(ctx, &exists, "SELECT COUNT(*) FROM notifications WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("checking notification %s: %w", id, err)
	}
	if exists == 0 {
		return fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}

	_, err = s.db.ExecContext(ctx, "UPDATE notifications SET is_read = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("marking notification %s as read: %w", id, err)
	}
	return nil
}

// MarkAllNotificationsRead marks every unread notification of a user as read.
func (s *SQLiteStore) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0", userID,
	)
	if err != nil {
		return fmt.Errorf("marking all notifications read for user %s: %w", userID, err)
	}
	return nil
}

// DeleteNotification removes a notification by ID.
func (s *SQLiteStore) DeleteNotification(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM notifications WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting notification %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}
	return nil
}

// CountUnreadNotifications returns the number of unread notifications
// for a user.
func (s *SQLiteStore) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0", userID,
	)
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return count, nil
}

// scanNotification scans a notification row from a sqlx.Rows result set.
func scanNotification(rows *sqlx.Rows) (model.Notification, error) {
	var (
		n         model.Notification
		notifType string
		isRead    int
		expiresAt *time.Time
	)

	err := rows.Scan(
		&n.ID, &n.UserID, &notifType, &n.Title, &n.Message,
		&isRead, &n.Priority, &n.ActionURL, &expiresAt, &n.CreatedAt,
	)
	if err != nil {
		return model.Notification{}, fmt.Errorf("scanning notification row: %w", err)
	}

	n.Type = model.NotificationType(notifType)
	n.IsRead = isRead != 0
	n.ExpiresAt = expiresAt

	return n, nil
}
