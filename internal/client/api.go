package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/nhle/waterwise/internal/model"
)

// AuthResponse is the payload returned by register and login.
type AuthResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// RegisterRequest carries the fields for account creation.
type RegisterRequest struct {
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Password  string           `json:"password"`
	Household *model.Household `json:"household,omitempty"`
}

// ProgressSummary is the payload returned by GET /api/progress.
type ProgressSummary struct {
	CompletedLessons []model.CompletedLesson `json:"completed_lessons"`
	CurrentLessonID  *string                 `json:"current_lesson_id"`
	TotalLessons     int                     `json:"total_lessons"`
	Progress         float64                 `json:"progress"`
}

// Register creates an account and stores the returned session token
// on the client.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.Post(ctx, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Login authenticates with email and password and stores the returned
// session token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := c.Post(ctx, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.Get(ctx, "/api/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateHousehold replaces the authenticated user's household profile.
func (c *Client) UpdateHousehold(ctx context.Context, household model.Household) (*model.User, error) {
	var user model.User
	if err := c.Put(ctx, "/api/auth/household", household, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// LogUsageRequest carries the per-category amounts for a usage entry.
// Nil fields are rejected by the server.
type LogUsageRequest struct {
	Date           *time.Time `json:"date,omitempty"`
	Shower         *float64   `json:"shower"`
	Toilet         *float64   `json:"toilet"`
	WashingMachine *float64   `json:"washingMachine"`
	Dishwasher     *float64   `json:"dishwasher"`
	Garden         *float64   `json:"garden"`
	Other          *float64   `json:"other"`
	Notes          string     `json:"notes,omitempty"`
}

// LogUsage records a water usage entry.
func (c *Client) LogUsage(ctx context.Context, req LogUsageRequest) (*model.WaterUsageEntry, error) {
	var entry model.WaterUsageEntry
	if err := c.Post(ctx, "/api/water-usage", req, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UsageStats returns the authenticated user's usage statistics.
func (c *Client) UsageStats(ctx context.Context) (*model.UsageStats, error) {
	var stats model.UsageStats
	if err := c.Get(ctx, "/api/water-usage/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RecentLogs returns the most recent usage entries, newest first.
// A limit of 0 uses the server default.
func (c *Client) RecentLogs(ctx context.Context, limit int) ([]model.WaterUsageEntry, error) {
	path := "/api/water-usage/recent"
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}
	var entries []model.WaterUsageEntry
	if err := c.Get(ctx, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ActivityBreakdown returns per-category totals for the given window.
// Zero times use the server's default trailing 30 days.
func (c *Client) ActivityBreakdown(ctx context.Context, start, end time.Time) (map[string]float64, error) {
	q := url.Values{}
	if !start.IsZero() {
		q.Set("start", start.Format(time.RFC3339))
	}
	if !end.IsZero() {
		q.Set("end", end.Format(time.RFC3339))
	}
	path := "/api/water-usage/activities"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var breakdown map[string]float64
	if err := c.Get(ctx, path, &breakdown); err != nil {
		return nil, err
	}
	return breakdown, nil
}

// WeeklyReport returns the aggregated report for the week starting at start.
func (c *Client) WeeklyReport(ctx context.Context, start time.Time) (*model.WeeklyReport, error) {
	path := "/api/water-usage/weekly"
	if !start.IsZero() {
		path += "?start=" + url.QueryEscape(start.Format(time.RFC3339))
	}
	var report model.WeeklyReport
	if err := c.Get(ctx, path, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Lessons returns all lessons ordered by their position in the course.
func (c *Client) Lessons(ctx context.Context) ([]model.Lesson, error) {
	var lessons []model.Lesson
	if err := c.Get(ctx, "/api/lessons", &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

// Lesson returns a single lesson by ID.
func (c *Client) Lesson(ctx context.Context, id string) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := c.Get(ctx, "/api/lessons/"+url.PathEscape(id), &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// NextLesson returns the next uncompleted lesson for the user.
func (c *Client) NextLesson(ctx context.Context) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := c.Get(ctx, "/api/lessons/next", &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// CompleteLesson marks a lesson complete. quizScore may be nil for
// lessons without a quiz.
func (c *Client) CompleteLesson(ctx context.Context, id string, quizScore *int) (*model.UserProgress, error) {
	var body interface{}
	if quizScore != nil {
		body = map[string]int{"quizScore": *quizScore}
	}
	var progress model.UserProgress
	if err := c.Post(ctx, "/api/lessons/"+url.PathEscape(id)+"/complete", body, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// Progress returns the user's course progress summary.
func (c *Client) Progress(ctx context.Context) (*ProgressSummary, error) {
	var summary ProgressSummary
	if err := c.Get(ctx, "/api/progress", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// NotificationsOptions filters a notification listing.
type NotificationsOptions struct {
	UnreadOnly bool
	Type       string
	Limit      int
}

// Notifications returns the user's notifications, newest first.
func (c *Client) Notifications(ctx context.Context, opts NotificationsOptions) ([]model.Notification, error) {
	q := url.Values{}
	if opts.UnreadOnly {
		q.Set("unreadOnly", "true")
	}
	if opts.Type != "" {
		q.Set("type", opts.Type)
	}
	if opts.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", opts.Limit))
	}
	path := "/api/notifications"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var notifications []model.Notification
	if err := c.Get(ctx, path, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead marks a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.Patch(ctx, "/api/notifications/"+url.PathEscape(id)+"/read", nil, nil)
}

// MarkAllNotificationsRead marks all of the user's notifications as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.Patch(ctx, "/api/notifications/read-all", nil, nil)
}

// DeleteNotification deletes a notification.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.Delete(ctx, "/api/notifications/"+url.PathEscape(id))
}

// UnreadCount returns the number of unread notifications.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.Get(ctx, "/api/notifications/unread-count", &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
