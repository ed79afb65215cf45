package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/waterwise/internal/model"
)

// CreateUsageEntry inserts a new water-usage entry. Generates a UUID if
// ID is empty. The derived fields (TotalLitres, TargetAchieved) are
// computed by the caller; the store persists them as given.
func (s *SQLiteStore) CreateUsageEntry(ctx context.Context, entry model.WaterUsageEntry) (*model.WaterUsageEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO water_usage (
			id, user_id, date,
			shower, toilet, washing_machine, dishwasher, garden, other,
			total_litres, target_achieved, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.Date.UTC(),
		entry.Amounts.Shower, entry.Amounts.Toilet, entry.Amounts.WashingMachine,
		entry.Amounts.Dishwasher, entry.Amounts.Garden, entry.Amounts.Other,
		entry.TotalLitres, boolToInt(entry.TargetAchieved), entry.Notes, entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating usage entry: %w", err)
	}

	return &entry, nil
}

// GetUsageEntries retrieves entries for a user with date in [from, to),
// ordered by date ascending.
func (s *SQLiteStore) GetUsageEntries(ctx context.Context, userID string, from, to time.Time) ([]model.WaterUsageEntry, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT * FROM water_usage
		WHERE user_id = ? AND date >= ? AND date < ?
		ORDER BY date ASC`,
		userID, from.UTC(), to.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("querying usage entries: %w", err)
	}
	defer rows.Close()

	return scanUsageEntries(rows)
}

// GetRecentUsageEntries retrieves up to limit entries for a user,
// ordered by date descending.
func (s *SQLiteStore) GetRecentUsageEntries(ctx context.Context, userID string, limit int) ([]model.WaterUsageEntry, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT * FROM water_usage
		WHERE user_id = ?
		ORDER BY date DESC
		LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying recent usage entries: %w", err)
	}
	defer rows.Close()

	return scanUsageEntries(rows)
}

// scanUsageEntries drains a result set of water_usage rows.
func scanUsageEntries(rows *sqlx.Rows) ([]model.WaterUsageEntry, error) {
	var entries []model.WaterUsageEntry
	for rows.Next() {
		var (
			entry          model.WaterUsageEntry
			targetAchieved int
		)
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Date,
			&entry.Amounts.Shower, &entry.Amounts.Toilet, &entry.Amounts.WashingMachine,
			&entry.Amounts.Dishwasher, &entry.Amounts.Garden, &entry.Amounts.Other,
			&entry.TotalLitres, &targetAchieved, &entry.Notes, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning usage row: %w", err)
		}
		entry.TargetAchieved = targetAchieved != 0
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
