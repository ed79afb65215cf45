package model

import "time"

// Water source constants for the household profile.
const (
	WaterSourceMains     = "mains"
	WaterSourceWell      = "well"
	WaterSourceRainwater = "rainwater"
)

// Household describes the physical household a user tracks usage for.
// It is filled in by the setup flow after registration.
type Household struct {
	Size        int    `json:"size" db:"household_size"`
	WaterSource string `json:"water_source" db:"water_source"`
	HasGarden   bool   `json:"has_garden" db:"has_garden"`
	GardenSize  int    `json:"garden_size" db:"garden_size"`
	HasPool     bool   `json:"has_pool" db:"has_pool"`
	PoolSize    int    `json:"pool_size" db:"pool_size"`
}

// Preferences holds per-user application settings.
type Preferences struct {
	Notifications bool `json:"notifications" db:"notifications_enabled"`
}

// User is a registered account. The password hash never leaves the
// server; the JSON tag keeps it out of API responses.
type User struct {
	// ID is the unique identifier for this user.
	ID string `json:"id" db:"id"`

	// Name is the user's display name.
	Name string `json:"name" db:"name"`

	// Email is the unique login identifier.
	Email string `json:"email" db:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-" db:"password_hash"`

	// Household describes the tracked household.
	Household Household `json:"household"`

	// Preferences holds application settings.
	Preferences Preferences `json:"preferences"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
