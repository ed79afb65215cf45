package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nhle/waterwise/internal/model"
	"github.com/nhle/waterwise/internal/store"
)

// Default and maximum result sizes for recent-log queries.
const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

// TotalLitres sums the per-category amounts of an entry. Derived fields
// are always recomputed from the inputs, never trusted from a request.
func TotalLitres(a model.UsageAmounts) float64 {
	return a.Shower + a.Toilet + a.WashingMachine + a.Dishwasher + a.Garden + a.Other
}

// TargetAchieved reports whether a day's total meets the fixed
// conservation goal.
func TargetAchieved(total float64) bool {
	return total <= model.DailyTargetLitres
}

// UsageService records water-usage entries and computes aggregate
// statistics. All time windows are evaluated against the injected clock
// at call time; nothing is cached.
type UsageService struct {
	store store.Store
	now   func() time.Time
}

// NewUsageService creates a new usage service using the real clock.
func NewUsageService(s store.Store) *UsageService {
	return &UsageService{store: s, now: time.Now}
}

// NewUsageServiceWithClock creates a usage service with a fixed clock,
// for tests that need deterministic windows.
func NewUsageServiceWithClock(s store.Store, now func() time.Time) *UsageService {
	return &UsageService{store: s, now: now}
}

// LogUsageInput carries the fields of a usage-log request. Category
// amounts are pointers so missing fields can be told apart from zeros.
type LogUsageInput struct {
	Date           *time.Time `json:"date"`
	Shower         *float64   `json:"shower"`
	Toilet         *float64   `json:"toilet"`
	WashingMachine *float64   `json:"washingMachine"`
	Dishwasher     *float64   `json:"dishwasher"`
	Garden         *float64   `json:"garden"`
	Other          *float64   `json:"other"`
	Notes          string     `json:"notes"`
}

// LogUsage validates and persists a usage entry, computing the derived
// totals. Validation reports every missing or negative category, not
// just the first. When the entry exceeds the daily target and the user
// has notifications enabled, a water_usage notification is created.
func (s *UsageService) LogUsage(ctx context.Context, userID string, in LogUsageInput) (*model.WaterUsageEntry, error) {
	var v validation
	amounts := model.UsageAmounts{}

	categories := []struct {
		name  string
		value *float64
		dst   *float64
	}{
		{model.CategoryShower, in.Shower, &amounts.Shower},
		{model.CategoryToilet, in.Toilet, &amounts.Toilet},
		{model.CategoryWashingMachine, in.WashingMachine, &amounts.WashingMachine},
		{model.CategoryDishwasher, in.Dishwasher, &amounts.Dishwasher},
		{model.CategoryGarden, in.Garden, &amounts.Garden},
		{model.CategoryOther, in.Other, &amounts.Other},
	}
	for _, c := range categories {
		switch {
		case c.value == nil:
			v.add(c.name, "is required")
		case *c.value < 0:
			v.add(c.name, "must be a non-negative number")
		default:
			*c.dst = *c.value
		}
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	date := s.now().UTC()
	if in.Date != nil {
		date = in.Date.UTC()
	}

	total := TotalLitres(amounts)
	entry := model.WaterUsageEntry{
		UserID:         userID,
		Date:           date,
		Amounts:        amounts,
		TotalLitres:    total,
		TargetAchieved: TargetAchieved(total),
		Notes:          in.Notes,
	}

	created, err := s.store.CreateUsageEntry(ctx, entry)
	if err != nil {
		return nil, err
	}

	if !created.TargetAchieved {
		if err := s.notifyTargetExceeded(ctx, userID, created); err != nil {
			return nil, err
		}
	}

	return created, nil
}

// notifyTargetExceeded creates a water_usage notification for users who
// opted in to notifications.
func (s *UsageService) notifyTargetExceeded(ctx context.Context, userID string, entry *model.WaterUsageEntry) error {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.Preferences.Notifications {
		return nil
	}

	_, err = s.store.CreateNotification(ctx, model.Notification{
		UserID:   userID,
		Type:     model.NotificationWaterUsage,
		Title:    "Daily target exceeded",
		Message: fmt.Sprintf("You used %.0f litres on %s, above the %.0f litre daily target.",
			entry.TotalLitres, entry.Date.Format("2 Jan 2006"), model.DailyTargetLitres),
		Priority: model.PriorityMedium,
	})
	return err
}

// RecentLogs returns the user's entries ordered by date descending. A
// user with no entries gets an empty list, not an error.
func (s *UsageService) RecentLogs(ctx context.Context, userID string, limit int) ([]model.WaterUsageEntry, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	entries, err := s.store.GetRecentUsageEntries(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.WaterUsageEntry{}
	}
	return entries, nil
}

// Stats computes the aggregate usage view for a user. Every call
// re-reads the store and evaluates the trailing windows against the
// current clock.
func (s *UsageService) Stats(ctx context.Context, userID string) (*model.UsageStats, error) {
	stats := &model.UsageStats{}

	recent, err := s.store.GetRecentUsageEntries(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(recent) == 0 {
		return stats, nil
	}

	last := recent[0].Date
	stats.LastLogDate = &last

	// Daily usage is the total of the most recent logged day.
	lastDay := dayStart(last)
	dayEntries, err := s.store.GetUsageEntries(ctx, userID, lastDay, lastDay.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	for _, e := range dayEntries {
		stats.DailyUsage += e.TotalLitres
	}

	today := dayStart(s.now().UTC())
	windowEnd := today.AddDate(0, 0, 1)

	weekEntries, err := s.store.GetUsageEntries(ctx, userID, windowEnd.AddDate(0, 0, -7), windowEnd)
	if err != nil {
		return nil, err
	}
	for _, e := range weekEntries {
		stats.WeeklyUsage += e.TotalLitres
	}

	monthEntries, err := s.store.GetUsageEntries(ctx, userID, windowEnd.AddDate(0, 0, -30), windowEnd)
	if err != nil {
		return nil, err
	}
	dayTotals := map[time.Time]float64{}
	for _, e := range monthEntries {
		stats.MonthlyUsage += e.TotalLitres
		dayTotals[dayStart(e.Date)] += e.TotalLitres
	}

	// Target achievement: percentage of logged days in the trailing
	// 30-day window whose total met the daily target.
	if len(dayTotals) > 0 {
		achieved := 0
		for _, total := range dayTotals {
			if TargetAchieved(total) {
				achieved++
			}
		}
		stats.TargetAchievement = float64(achieved) / float64(len(dayTotals)) * 100
	}

	return stats, nil
}

// ActivityBreakdown sums litres per category across the user's entries
// with date in [from, to). Every category is present in the result,
// zero-valued when unused.
func (s *UsageService) ActivityBreakdown(ctx context.Context, userID string, from, to time.Time) (map[string]float64, error) {
	entries, err := s.store.GetUsageEntries(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	breakdown := make(map[string]float64, len(model.Categories))
	for _, c := range model.Categories {
		breakdown[c] = 0
	}
	for _, e := range entries {
		for category, litres := range e.Amounts.ByCategory() {
			breakdown[category] += litres
		}
	}
	return breakdown, nil
}

// WeeklyReport summarizes the 7-day window starting at startDate.
// AverageDailyUsage is 0 when no days were logged, never NaN.
func (s *UsageService) WeeklyReport(ctx context.Context, userID string, startDate time.Time) (*model.WeeklyReport, error) {
	from := dayStart(startDate.UTC())
	entries, err := s.store.GetUsageEntries(ctx, userID, from, from.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}

	report := &model.WeeklyReport{DailyBreakdown: []model.DayUsage{}}

	dayTotals := map[time.Time]float64{}
	var days []time.Time
	for _, e := range entries {
		day := dayStart(e.Date)
		if _, seen := dayTotals[day]; !seen {
			days = append(days, day)
		}
		dayTotals[day] += e.TotalLitres
		report.TotalUsage += e.TotalLitres
	}

	for _, day := range days {
		total := dayTotals[day]
		achieved := TargetAchieved(total)
		if achieved {
			report.DaysUnderTarget++
		}
		report.DailyBreakdown = append(report.DailyBreakdown, model.DayUsage{
			Date:           day,
			TotalLitres:    total,
			TargetAchieved: achieved,
		})
	}

	if len(days) > 0 {
		report.AverageDailyUsage = report.TotalUsage / float64(len(days))
	}

	return report, nil
}

// dayStart truncates a time to midnight UTC.
func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
