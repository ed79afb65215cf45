package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nhle/waterwise/internal/model"
	"github.com/nhle/waterwise/internal/store"
	"github.com/nhle/waterwise/tests/testutil"
)

func litres(v float64) *float64 {
	return &v
}

func fullInput(perCategory float64) LogUsageInput {
	return LogUsageInput{
		Shower:         litres(perCategory),
		Toilet:         litres(perCategory),
		WashingMachine: litres(perCategory),
		Dishwasher:     litres(perCategory),
		Garden:         litres(perCategory),
		Other:          litres(perCategory),
	}
}

func createTestUser(t *testing.T, s store.Store, email string) *model.User {
	t.Helper()

	user, err := s.CreateUser(context.Background(), model.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Preferences:  model.Preferences{Notifications: true},
	})
	require.NoError(t, err)
	return user
}

func TestTotalLitres(t *testing.T) {
	total := TotalLitres(model.UsageAmounts{
		Shower:         40,
		Toilet:         20,
		WashingMachine: 30,
		Dishwasher:     10,
		Garden:         35,
		Other:          15,
	})
	require.InDelta(t, 150.0, total, 1e-9)
}

func TestTargetAchievedBoundary(t *testing.T) {
	require.True(t, TargetAchieved(0))
	require.True(t, TargetAchieved(model.DailyTargetLitres))
	require.False(t, TargetAchieved(model.DailyTargetLitres+0.01))
}

func TestLogUsageComputesDerivedFields(t *testing.T) {
	st := testutil.NewTestStore(t)
	user := createTestUser(t, st, "derived@example.com")
	svc := NewUsageService(st)

	in := fullInput(5)
	in.Notes = "laundry day"

	entry, err := svc.LogUsage(context.Background(), user.ID, in)
	require.NoError(t, err)
	require.InDelta(t, 30.0, entry.TotalLitres, 1e-9)
	require.True(t, entry.TargetAchieved)
	require.Equal(t, "laundry day", entry.Notes)
	require.NotEmpty(t, entry.ID)
}

func TestLogUsageReportsEveryBadField(t *testing.T) {
	st := testutil.NewTestStore(t)
	user := createTestUser(t, st, "badfields@example.com")
	svc := NewUsageService(st)

	_, err := svc.LogUsage(context.Background(), user.ID, LogUsageInput{
		Shower: litres(-1),
		Toilet: litres(10),
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	// shower negative plus four missing categories.
	require.Len(t, verr.Fields, 5)

	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Message
	}
	require.Contains(t, fields, model.CategoryShower)
	require.Contains(t, fields, model.CategoryGarden)
	require.NotContains(t, fields, model.CategoryToilet)
}

func TestLogUsageOverTargetCreatesNotification(t *testing.T) {
	st := testutil.NewTestStore(t)
	user := createTestUser(t, st, "thirsty@example.com")
	svc := NewUsageService(st)

	_, err := svc.LogUsage(context.Background(), user.ID, fullInput(25))
	require.NoError(t, err)

	notifications, err := st.GetNotifications(context.Background(), user.ID, store.NotificationFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, model.NotificationWaterUsage, notifications[0].Type)
}

func TestLogUsageUnderTargetCreatesNoNotification(t *testing.T) {
	st := testutil.NewTestStore(t)
	user := createTestUser(t, st, "frugal@example.com")
	svc := NewUsageService(st)

	_, err := svc.LogUsage(context.Background(), user.ID, fullInput(5))
	require.NoError(t, err)

	notifications, err := st.GetNotifications(context.Background(), user.ID, store.NotificationFilter{Limit: 10})
	require.NoError(t, err)
	require.Empty(t, notifications)
}

func TestLogUsageRespectsNotificationOptOut(t *testing.T) {
	st := testutil.NewTestStore(t)
	svc := NewUsageService(st)

	user, err := st.CreateUser(context.Background(), model.User{
		Name:         "Quiet User",
		Email:        "quiet@example.com",
		PasswordHash: "not-a-real-hash",
		Preferences:  model.Preferences{Notifications: false},
	})
	require.NoError(t, err)

	_, err = svc.LogUsage(context.Background(), user.ID, fullInput(25))
	require.NoError(t, err)

	notifications, err := st.GetNotifications(context.Background(), user.ID, store.NotificationFilter{Limit: 10})
	require.NoError(t, err)
	require.Empty(t, notifications)
}

func TestRecentLogsEmptyForNewUser(t *testing.T) {
	st := testutil.NewTestStore(t)
	user := createTestUser(t, st, "empty@example.com")
	svc := NewUsageService(st)

	entries, err := svc.RecentLogs(context.Background(), user.ID, 0)
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}

func TestRecentLogsNewestFirstWithLimit(t *testing.T) {
	st := testutil.NewTestStore(t)
	user := createTestUser(t, st, "recent@example.com")
	svc := NewUsageService(st)

	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		in := fullInput(float64(i + 1))
		day := base.AddDate(0, 0, i)
		in.Date = &day
		_, err := svc.LogUsage(context.Background(), user.ID, in)
		require.NoError(t, err)
	}

	entries, err := svc.RecentLogs(context.Background(), user.ID, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.True(t, entries[0].Date.After(entries[1].Date))
	require.InDelta(t, 18.0, entries[0].TotalLitres, 1e-9)
}

func TestStatsSingleEntry(t *testing.T) {
	st := testutil.NewTestStore(t)
	user := createTestUser(t, st, "stats@example.com")

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc := NewUsageServiceWithClock(st, func() time.Time { return now })

	in := fullInput(25)
	in.Date = &now
	_, err := svc.LogUsage(context.Background(), user.ID, in)
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background(), user.ID)
	require.NoError(t, err)
	require.InDelta(t, 150.0, stats.DailyUsage, 1e-9)
	require.InDelta(t, 150.0, stats.WeeklyUsage, 1e-9)
	require.InDelta(t, 150.0, stats.MonthlyUsage, 1e-9)
	require.InDelta(t, 0.0, stats.TargetAchievement, 1e-9)
	require.NotNil(t, stats.LastLogDate)
}

func TestStatsMixedDays(t *testing.T) {
	st := testutil.NewTestStore(t)
	user := createTestUser(t, st, "mixed@example.com")

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc := NewUsageServiceWithClock(st, func() time.Time { return now })

	under := fullInput(5) // 30 L, under target
	yesterday := now.AddDate(0, 0, -1)
	under.Date = &yesterday
	_, err := svc.LogUsage(context.Background(), user.ID, under)
	require.NoError(t, err)

	over := fullInput(25) // 150 L, over target
	over.Date = &now
	_, err = svc.LogUsage(context.Background(), user.ID, over)
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background(), user.ID)
	require.NoError(t, err)
	require.InDelta(t, 150.0, stats.DailyUsage, 1e-9)
	require.InDelta(t, 180.0, stats.WeeklyUsage, 1e-9)
	require.InDelta(t, 50.0, stats.TargetAchievement, 1e-9)
}

func TestStatsNoEntries(t *testing.T) {
	st := testutil.NewTestStore(t)
	user := createTestUser(t, st, "nothing@example.com")
	svc := NewUsageService(st)

	stats, err := svc.Stats(context.Background(), user.ID)
	require.NoError(t, err)
	require.Zero(t, stats.DailyUsage)
	require.Zero(t, stats.TargetAchievement)
	require.Nil(t, stats.LastLogDate)
}

func TestActivityBreakdownIncludesAllCategories(t *testing.T) {
	st := testutil.NewTestStore(t)
	user := createTestUser(t, st, "breakdown@example.com")
	svc := NewUsageService(st)

	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	in := LogUsageInput{
		Date:           &day,
		Shower:         litres(40),
		Toilet:         litres(10),
		WashingMachine: litres(0),
		Dishwasher:     litres(0),
		Garden:         litres(0),
		Other:          litres(0),
	}
	_, err := svc.LogUsage(context.Background(), user.ID, in)
	require.NoError(t, err)

	breakdown, err := svc.ActivityBreakdown(context.Background(), user.ID, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, breakdown, len(model.Categories))
	require.InDelta(t, 40.0, breakdown[model.CategoryShower], 1e-9)
	require.InDelta(t, 0.0, breakdown[model.CategoryGarden], 1e-9)
}

func TestWeeklyReport(t *testing.T) {
	st := testutil.NewTestStore(t)
	user := createTestUser(t, st, "weekly@example.com")
	svc := NewUsageService(st)

	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	day1 := fullInput(5) // 30 L
	d1 := start.Add(10 * time.Hour)
	day1.Date = &d1
	_, err := svc.LogUsage(context.Background(), user.ID, day1)
	require.NoError(t, err)

	day2 := fullInput(15) // 90 L
	d2 := start.AddDate(0, 0, 2)
	day2.Date = &d2
	_, err = svc.LogUsage(context.Background(), user.ID, day2)
	require.NoError(t, err)

	report, err := svc.WeeklyReport(context.Background(), user.ID, start)
	require.NoError(t, err)
	require.InDelta(t, 120.0, report.TotalUsage, 1e-9)
	require.InDelta(t, 60.0, report.AverageDailyUsage, 1e-9)
	require.Equal(t, 1, report.DaysUnderTarget)
	require.Len(t, report.DailyBreakdown, 2)
}

func TestWeeklyReportEmptyWindow(t *testing.T) {
	st := testutil.NewTestStore(t)
	user := createTestUser(t, st, "quietweek@example.com")
	svc := NewUsageService(st)

	report, err := svc.WeeklyReport(context.Background(), user.ID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Zero(t, report.TotalUsage)
	require.Zero(t, report.AverageDailyUsage)
	require.Empty(t, report.DailyBreakdown)
}
