package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nhle/waterwise/internal/model"
	"github.com/nhle/waterwise/internal/store"
	"github.com/nhle/waterwise/internal/token"
)

// AuthService registers and authenticates users and issues session tokens.
type AuthService struct {
	store  store.Store
	tokens *token.Manager
}

// NewAuthService creates a new auth service.
func NewAuthService(s store.Store, tokens *token.Manager) *AuthService {
	return &AuthService{store: s, tokens: tokens}
}

// RegisterInput carries the fields of a registration request. Household
// and Preferences are optional at registration and can be set later by
// the setup flow.
type RegisterInput struct {
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Password    string             `json:"password"`
	Household   *model.Household   `json:"household,omitempty"`
	Preferences *model.Preferences `json:"preferences,omitempty"`
}

// Register creates a new account, storing a one-way hash of the
// password, and returns the created user with a signed session token.
// A duplicate email fails with store.ErrDuplicateEmail.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	var v validation
	if strings.TrimSpace(in.Name) == "" {
		v.add("name", "is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		v.add("email", "is required")
	} else if !strings.Contains(in.Email, "@") {
		v.add("email", "must be a valid email address")
	}
	if in.Password == "" {
		v.add("password", "is required")
	} else if len(in.Password) < 6 {
		v.add("password", "must be at least 6 characters")
	}
	if err := v.err(); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	user := model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Preferences:  model.Preferences{Notifications: true},
	}
	if in.Household != nil {
		user.Household = *in.Household
	}
	if in.Preferences != nil {
		user.Preferences = *in.Preferences
	}

	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return nil, "", err
	}

	signed, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, "", err
	}
	return created, signed, nil
}

// Login verifies credentials and returns the user with a signed session
// token. Unknown emails and wrong passwords both fail with
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, signed, nil
}

// Me returns the account for an authenticated user ID.
func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

// UpdateHousehold replaces the user's household profile and returns the
// refreshed account.
func (s *AuthService) UpdateHousehold(ctx context.Context, userID string, h model.Household) (*model.User, error) {
	var v validation
	if h.Size < 0 {
		v.add("size", "must be a non-negative number")
	}
	if h.GardenSize < 0 {
		v.add("garden_size", "must be a non-negative number")
	}
	if h.PoolSize < 0 {
		v.add("pool_size", "must be a non-negative number")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	if h.WaterSource == "" {
		h.WaterSource = model.WaterSourceMains
	}

	if err := s.store.UpdateHousehold(ctx, userID, h); err != nil {
		return nil, err
	}
	return s.store.GetUserByID(ctx, userID)
}
