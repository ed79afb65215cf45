package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nhle/waterwise/internal/model"
	"github.com/nhle/waterwise/internal/store"
	"github.com/nhle/waterwise/tests/testutil"
)

func TestCreateNotificationDefaultsAndValidation(t *testing.T) {
	st := testutil.NewTestStore(t)
	user := createTestUser(t, st, "notify@example.com")
	svc := NewNotificationService(st)

	n, err := svc.Create(context.Background(), user.ID, CreateInput{
		Type:    string(model.NotificationTip),
		Title:   "  Try shorter showers  ",
		Message: "A four-minute shower uses about half the water of an eight-minute one.",
	})
	require.NoError(t, err)
	require.Equal(t, "Try shorter showers", n.Title)
	require.Equal(t, model.PriorityMedium, n.Priority)
	require.False(t, n.IsRead)

	_, err = svc.Create(context.Background(), user.ID, CreateInput{
		Type:     "carrier-pigeon",
		Priority: "urgent",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	// title, message, type, priority all invalid.
	require.Len(t, verr.Fields, 4)
}

func TestListNotificationsFilters(t *testing.T) {
	st := testutil.NewTestStore(t)
	user := createTestUser(t, st, "inbox@example.com")
	svc := NewNotificationService(st)

	tip, err := svc.Create(context.Background(), user.ID, CreateInput{
		Type: string(model.NotificationTip), Title: "Tip", Message: "Mulch your beds.",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), user.ID, CreateInput{
		Type: string(model.NotificationSystem), Title: "System", Message: "Maintenance tonight.",
	})
	require.NoError(t, err)

	all, err := svc.List(context.Background(), user.ID, ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	tips, err := svc.List(context.Background(), user.ID, ListOptions{Type: string(model.NotificationTip)})
	require.NoError(t, err)
	require.Len(t, tips, 1)
	require.Equal(t, tip.ID, tips[0].ID)

	_, err = svc.List(context.Background(), user.ID, ListOptions{Type: "smoke-signal"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	require.NoError(t, svc.MarkRead(context.Background(), tip.ID))
	unread, err := svc.List(context.Background(), user.ID, ListOptions{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unread, 1)
	require.Equal(t, "System", unread[0].Title)
}

func TestMarkReadLifecycle(t *testing.T) {
	st := testutil.NewTestStore(t)
	user := createTestUser(t, st, "reader@example.com")
	svc := NewNotificationService(st)

	var ids []string
	for _, title := range []string{"one", "two", "three"} {
		n, err := svc.Create(context.Background(), user.ID, CreateInput{
			Type: string(model.NotificationTip), Title: title, Message: "m",
		})
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}

	count, err := svc.UnreadCount(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	require.NoError(t, svc.MarkRead(context.Background(), ids[0]))
	// Marking twice is a no-op, not an error.
	require.NoError(t, svc.MarkRead(context.Background(), ids[0]))

	require.ErrorIs(t, svc.MarkRead(context.Background(), "no-such-id"), store.ErrNotFound)

	count, err = svc.UnreadCount(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	require.NoError(t, svc.MarkAllRead(context.Background(), user.ID))
	count, err = svc.UnreadCount(context.Background(), user.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	require.NoError(t, svc.Delete(context.Background(), ids[1]))
	require.ErrorIs(t, svc.Delete(context.Background(), ids[1]), store.ErrNotFound)

	remaining, err := svc.List(context.Background(), user.ID, ListOptions{})
	require.NoError(t, err)
	require.Len(t, remaining, 2)
}

func TestListEmptyInbox(t *testing.T) {
	st := testutil.NewTestStore(t)
	user := createTestUser(t, st, "quietinbox@example.com")
	svc := NewNotificationService(st)

	notifications, err := svc.List(context.Background(), user.ID, ListOptions{})
	require.NoError(t, err)
	require.NotNil(t, notifications)
	require.Empty(t, notifications)
}
