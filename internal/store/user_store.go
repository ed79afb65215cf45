package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/waterwise/internal/model"
)

// CreateUser inserts a new user. Generates a UUID if ID is empty.
// Returns ErrDuplicateEmail when the email is already registered; the
// unique constraint is what resolves concurrent duplicate registrations
// to exactly one success.
func (s *SQLiteStore) CreateUser(ctx context.Context, user model.User) (*model.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Household.WaterSource == "" {
		user.Household.WaterSource = model.WaterSourceMains
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (
			id, name, email, password_hash,
			household_size, water_source, has_garden, garden_size, has_pool, pool_size,
			notifications_enabled, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.PasswordHash,
		user.Household.Size, user.Household.WaterSource,
		boolToInt(user.Household.HasGarden), user.Household.GardenSize,
		boolToInt(user.Household.HasPool), user.Household.PoolSize,
		boolToInt(user.Preferences.Notifications),
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return nil, fmt.Errorf("creating user %s: %w", user.Email, ErrDuplicateEmail)
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return &user, nil
}

// GetUserByID retrieves a single user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}
	return user, nil
}

// GetUserByEmail retrieves a single user by email.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM users WHERE email = ?", email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return user, nil
}

// UpdateHousehold replaces the household profile for a user.
func (s *SQLiteStore) UpdateHousehold(ctx context.Context, userID string, h model.Household) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			household_size = ?, water_source = ?,
			has_garden = ?, garden_size = ?, has_pool = ?, pool_size = ?,
			updated_at = ?
		WHERE id = ?`,
		h.Size, h.WaterSource,
		boolToInt(h.HasGarden), h.GardenSize, boolToInt(h.HasPool), h.PoolSize,
		time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("updating household for user %s: %w", userID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return nil
}

// scanUser scans a user row from a sqlx.Row.
func scanUser(row *sqlx.Row) (*model.User, error) {
	var (
		user          model.User
		hasGarden     int
		hasPool       int
		notifications int
	)

	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Household.Size, &user.Household.WaterSource,
		&hasGarden, &user.Household.GardenSize,
		&hasPool, &user.Household.PoolSize,
		&notifications, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Household.HasGarden = hasGarden != 0
	user.Household.HasPool = hasPool != 0
	user.Preferences.Notifications = notifications != 0

	return &user, nil
}
