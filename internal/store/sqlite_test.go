package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nhle/waterwise/internal/model"
	"github.com/nhle/waterwise/internal/store"
	"github.com/nhle/waterwise/tests/testutil"
)

func newUser(t *testing.T, s *store.SQLiteStore, email string) *model.User {
	t.Helper()

	user, err := s.CreateUser(context.Background(), model.User{
		Name:         "Store Tester",
		Email:        email,
		PasswordHash: "hash",
		Preferences:  model.Preferences{Notifications: true},
	})
	require.NoError(t, err)
	return user
}

func TestUserRoundtrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	created := newUser(t, s, "roundtrip@example.com")
	require.NotEmpty(t, created.ID)

	byID, err := s.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Email, byID.Email)
	require.True(t, byID.Preferences.Notifications)

	byEmail, err := s.GetUserByEmail(ctx, "roundtrip@example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	_, err = s.GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	newUser(t, s, "unique@example.com")

	_, err := s.CreateUser(ctx, model.User{
		Name:         "Copycat",
		Email:        "unique@example.com",
		PasswordHash: "hash",
	})
	require.ErrorIs(t, err, store.ErrDuplicateEmail)
}

func TestUpdateHousehold(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	user := newUser(t, s, "household@example.com")

	err := s.UpdateHousehold(ctx, user.ID, model.Household{
		Size:        3,
		WaterSource: model.WaterSourceWell,
		HasGarden:   true,
		GardenSize:  50,
	})
	require.NoError(t, err)

	refreshed, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 3, refreshed.Household.Size)
	require.Equal(t, model.WaterSourceWell, refreshed.Household.WaterSource)

	err = s.UpdateHousehold(ctx, "missing", model.Household{Size: 1})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsageEntryWindowIsHalfOpen(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	user := newUser(t, s, "window@example.com")

	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	for _, date := range []time.Time{
		from.Add(-time.Second), // before the window
		from,                   // inclusive lower bound
		to.Add(-time.Second),   // inside
		to,                     // exclusive upper bound
	} {
		_, err := s.CreateUsageEntry(ctx, model.WaterUsageEntry{
			UserID:      user.ID,
			Date:        date,
			Amounts:     model.UsageAmounts{Shower: 10},
			TotalLitres: 10,
		})
		require.NoError(t, err)
	}

	entries, err := s.GetUsageEntries(ctx, user.ID, from, to)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Ascending by date.
	require.True(t, entries[0].Date.Before(entries[1].Date))
}

func TestLessonQuizQuestionsRoundtrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	created, err := s.CreateLesson(ctx, model.Lesson{
		Title:           "Quiz Lesson",
		Content:         "Test your knowledge.",
		Type:            model.LessonTypeQuiz,
		DurationMinutes: 10,
		Order:           1,
		Category:        model.LessonCategoryScarcity,
		QuizQuestions: []model.QuizQuestion{
			{Question: "Q1", Options: []string{"a", "b"}, CorrectAnswer: 1},
		},
	})
	require.NoError(t, err)

	loaded, err := s.GetLessonByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, loaded.QuizQuestions, 1)
	require.Equal(t, 1, loaded.QuizQuestions[0].CorrectAnswer)
	require.Equal(t, []string{"a", "b"}, loaded.QuizQuestions[0].Options)
}

func TestAddCompletedLessonIgnoresDuplicates(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	user := newUser(t, s, "complete@example.com")
	lesson, err := s.CreateLesson(ctx, model.Lesson{
		Title: "Only Lesson", Content: "c", Type: model.LessonTypeInfo, Order: 1,
		Category: model.LessonCategoryConservation,
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, s.AddCompletedLesson(ctx, user.ID, lesson.ID, now, nil))
	score := 90
	require.NoError(t, s.AddCompletedLesson(ctx, user.ID, lesson.ID, now.Add(time.Hour), &score))

	completed, err := s.GetCompletedLessons(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	// The first write wins; the duplicate is ignored entirely.
	require.Nil(t, completed[0].QuizScore)
}

func TestProgressRoundtrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	user := newUser(t, s, "progress@example.com")

	_, err := s.GetProgress(ctx, user.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	created, err := s.CreateProgress(ctx, model.UserProgress{UserID: user.ID})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	created.TotalProgress = 50
	require.NoError(t, s.UpdateProgress(ctx, *created))

	loaded, err := s.GetProgress(ctx, user.ID)
	require.NoError(t, err)
	require.InDelta(t, 50.0, loaded.TotalProgress, 1e-9)
}

func TestNotificationFilterByType(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	user := newUser(t, s, "filter@example.com")

	for _, notifType := range []model.NotificationType{
		model.NotificationTip, model.NotificationSystem, model.NotificationTip,
	} {
		_, err := s.CreateNotification(ctx, model.Notification{
			UserID: user.ID, Type: notifType, Title: "t", Message: "m",
		})
		require.NoError(t, err)
	}

	tipType := model.NotificationTip
	tips, err := s.GetNotifications(ctx, user.ID, store.NotificationFilter{Type: &tipType, Limit: 10})
	require.NoError(t, err)
	require.Len(t, tips, 2)

	limited, err := s.GetNotifications(ctx, user.ID, store.NotificationFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
}
