package model

import "time"

// DailyTargetLitres is the fixed per-day conservation goal. A day's
// usage at or under this total counts as achieving the target.
const DailyTargetLitres = 50.0

// Usage category names, used as keys in activity breakdowns.
const (
	CategoryShower         = "shower"
	CategoryToilet         = "toilet"
	CategoryWashingMachine = "washingMachine"
	CategoryDishwasher     = "dishwasher"
	CategoryGarden         = "garden"
	CategoryOther          = "other"
)

// Categories lists all usage categories in display order.
var Categories = []string{
	CategoryShower,
	CategoryToilet,
	CategoryWashingMachine,
	CategoryDishwasher,
	CategoryGarden,
	CategoryOther,
}

// UsageAmounts holds the litres logged per category for a single entry.
type UsageAmounts struct {
	Shower         float64 `json:"shower" db:"shower"`
	Toilet         float64 `json:"toilet" db:"toilet"`
	WashingMachine float64 `json:"washingMachine" db:"washing_machine"`
	Dishwasher     float64 `json:"dishwasher" db:"dishwasher"`
	Garden         float64 `json:"garden" db:"garden"`
	Other          float64 `json:"other" db:"other"`
}

// ByCategory returns the amounts keyed by category name.
func (a UsageAmounts) ByCategory() map[string]float64 {
	return map[string]float64{
		CategoryShower:         a.Shower,
		CategoryToilet:         a.Toilet,
		CategoryWashingMachine: a.WashingMachine,
		CategoryDishwasher:     a.Dishwasher,
		CategoryGarden:         a.Garden,
		CategoryOther:          a.Other,
	}
}

// WaterUsageEntry is one logged day of household water consumption.
// Entries are immutable once created and owned by exactly one user.
type WaterUsageEntry struct {
	// ID is the unique identifier for this entry.
	ID string `json:"id" db:"id"`

	// UserID is the owning user.
	UserID string `json:"user_id" db:"user_id"`

	// Date is the day this usage was logged for.
	Date time.Time `json:"date" db:"date"`

	// Amounts holds the per-category litres.
	Amounts UsageAmounts `json:"amounts"`

	// TotalLitres is the sum of all category amounts. It is always
	// recomputed by the service from the amounts, never taken from input.
	TotalLitres float64 `json:"total_litres" db:"total_litres"`

	// TargetAchieved reports whether TotalLitres is at or under
	// DailyTargetLitres.
	TargetAchieved bool `json:"target_achieved" db:"target_achieved"`

	// Notes is optional free text attached by the user.
	Notes string `json:"notes" db:"notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UsageStats is the aggregate view of a user's recent consumption.
// All windows are trailing and relative to the time of the request.
type UsageStats struct {
	// DailyUsage is the total for the most recent logged day, 0 if none.
	DailyUsage float64 `json:"dailyUsage"`

	// WeeklyUsage is the sum over the trailing 7-day window.
	WeeklyUsage float64 `json:"weeklyUsage"`

	// MonthlyUsage is the sum over the trailing 30-day window.
	MonthlyUsage float64 `json:"monthlyUsage"`

	// TargetAchievement is the percentage of logged days in the trailing
	// 30-day window whose total met the daily target.
	TargetAchievement float64 `json:"targetAchievement"`

	// LastLogDate is the date of the most recent entry, nil if none.
	LastLogDate *time.Time `json:"lastLogDate,omitempty"`
}

// DayUsage is one day's slice of a weekly report.
type DayUsage struct {
	Date           time.Time `json:"date"`
	TotalLitres    float64   `json:"total_litres"`
	TargetAchieved bool      `json:"target_achieved"`
}

// WeeklyReport summarizes the 7-day window starting at a given date.
type WeeklyReport struct {
	TotalUsage        float64    `json:"totalUsage"`
	AverageDailyUsage float64    `json:"averageDailyUsage"`
	DaysUnderTarget   int        `json:"daysUnderTarget"`
	DailyBreakdown    []DayUsage `json:"dailyBreakdown"`
}
