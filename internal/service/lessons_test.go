package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nhle/waterwise/internal/model"
	"github.com/nhle/waterwise/internal/store"
	"github.com/nhle/waterwise/tests/testutil"
)

func newLessonFixture(t *testing.T) (*store.SQLiteStore, *LessonService, *model.User) {
	t.Helper()

	st := testutil.NewTestStore(t)
	require.NoError(t, store.SeedLessons(context.Background(), st))
	user := createTestUser(t, st, "learner@example.com")
	return st, NewLessonService(st), user
}

func TestListLessonsOrdered(t *testing.T) {
	_, svc, _ := newLessonFixture(t)

	lessons, err := svc.ListLessons(context.Background())
	require.NoError(t, err)
	require.Len(t, lessons, 4)
	for i, lesson := range lessons {
		require.Equal(t, i+1, lesson.Order)
	}
	require.Equal(t, model.LessonTypeQuiz, lessons[3].Type)
	require.Len(t, lessons[3].QuizQuestions, 2)
}

func TestSeedLessonsIsIdempotent(t *testing.T) {
	st, svc, _ := newLessonFixture(t)

	require.NoError(t, store.SeedLessons(context.Background(), st))

	lessons, err := svc.ListLessons(context.Background())
	require.NoError(t, err)
	require.Len(t, lessons, 4)
}

func TestProgressCreatedLazily(t *testing.T) {
	_, svc, user := newLessonFixture(t)

	progress, err := svc.Progress(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, progress.CompletedLessons)
	require.Equal(t, 4, progress.TotalLessons)
	require.Zero(t, progress.TotalProgress)
}

func TestCompleteLessonIsIdempotent(t *testing.T) {
	_, svc, user := newLessonFixture(t)

	lessons, err := svc.ListLessons(context.Background())
	require.NoError(t, err)
	first := lessons[0]

	progress, err := svc.CompleteLesson(context.Background(), user.ID, first.ID, nil)
	require.NoError(t, err)
	require.Len(t, progress.CompletedLessons, 1)
	require.InDelta(t, 25.0, progress.TotalProgress, 1e-9)

	// A second completion changes nothing.
	progress, err = svc.CompleteLesson(context.Background(), user.ID, first.ID, nil)
	require.NoError(t, err)
	require.Len(t, progress.CompletedLessons, 1)
	require.InDelta(t, 25.0, progress.TotalProgress, 1e-9)
}

func TestCompleteLessonAdvancesCurrentLesson(t *testing.T) {
	_, svc, user := newLessonFixture(t)

	lessons, err := svc.ListLessons(context.Background())
	require.NoError(t, err)

	progress, err := svc.CompleteLesson(context.Background(), user.ID, lessons[0].ID, nil)
	require.NoError(t, err)
	require.NotNil(t, progress.CurrentLessonID)
	require.Equal(t, lessons[1].ID, *progress.CurrentLessonID)

	next, err := svc.NextLesson(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, lessons[1].ID, next.ID)
}

func TestCompleteLessonQuizScoreValidation(t *testing.T) {
	_, svc, user := newLessonFixture(t)

	lessons, err := svc.ListLessons(context.Background())
	require.NoError(t, err)

	for _, bad := range []int{-1, 101} {
		score := bad
		_, err := svc.CompleteLesson(context.Background(), user.ID, lessons[3].ID, &score)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	}

	score := 100
	progress, err := svc.CompleteLesson(context.Background(), user.ID, lessons[3].ID, &score)
	require.NoError(t, err)
	require.Len(t, progress.CompletedLessons, 1)
	require.NotNil(t, progress.CompletedLessons[0].QuizScore)
	require.Equal(t, 100, *progress.CompletedLessons[0].QuizScore)
}

func TestCompleteUnknownLesson(t *testing.T) {
	_, svc, user := newLessonFixture(t)

	_, err := svc.CompleteLesson(context.Background(), user.ID, "no-such-lesson", nil)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCourseCompletionAwardsAchievementOnce(t *testing.T) {
	st, svc, user := newLessonFixture(t)

	lessons, err := svc.ListLessons(context.Background())
	require.NoError(t, err)

	var progress *model.UserProgress
	for _, lesson := range lessons {
		progress, err = svc.CompleteLesson(context.Background(), user.ID, lesson.ID, nil)
		require.NoError(t, err)
	}
	require.InDelta(t, 100.0, progress.TotalProgress, 1e-9)
	require.Nil(t, progress.CurrentLessonID)

	achievementFilter := store.NotificationFilter{Limit: 10}
	notifications, err := st.GetNotifications(context.Background(), user.ID, achievementFilter)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, model.NotificationAchievement, notifications[0].Type)

	// Re-completing the final lesson must not award a second achievement.
	_, err = svc.CompleteLesson(context.Background(), user.ID, lessons[3].ID, nil)
	require.NoError(t, err)

	notifications, err = st.GetNotifications(context.Background(), user.ID, achievementFilter)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
}

func TestNextLessonForNewUser(t *testing.T) {
	_, svc, user := newLessonFixture(t)

	next, err := svc.NextLesson(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, 1, next.Order)
}

func TestProgressWithNoLessons(t *testing.T) {
	st := testutil.NewTestStore(t)
	user := createTestUser(t, st, "early@example.com")
	svc := NewLessonService(st)

	progress, err := svc.Progress(context.Background(), user.ID)
	require.NoError(t, err)
	require.Zero(t, progress.TotalProgress)
	require.Zero(t, progress.TotalLessons)

	_, err = svc.NextLesson(context.Background(), user.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
