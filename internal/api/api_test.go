package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/nhle/waterwise/internal/model"
	"github.com/nhle/waterwise/internal/service"
	"github.com/nhle/waterwise/internal/store"
	"github.com/nhle/waterwise/internal/token"
	"github.com/nhle/waterwise/tests/testutil"
)

// newTestRouter builds a router backed by an in-memory store with the
// lesson curriculum seeded.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := testutil.NewTestStore(t)
	require.NoError(t, store.SeedLessons(context.Background(), st))

	tokens := token.NewManager("test-secret", time.Hour)
	server := NewServer(
		service.NewAuthService(st, tokens),
		service.NewUsageService(st),
		service.NewLessonService(st),
		service.NewNotificationService(st),
		tokens,
	)
	return server.Router("http://localhost:5173")
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, r *gin.Engine, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerUser registers an account and returns its bearer token.
func registerUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string     `json:"token"`
		User  model.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthFlow(t *testing.T) {
	r := newTestRouter(t)
	bearer := registerUser(t, r, "flow@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var user model.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	require.Equal(t, "flow@example.com", user.Email)
	// The password hash must never appear in API responses.
	require.NotContains(t, w.Body.String(), "password")

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "flow@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRejections(t *testing.T) {
	r := newTestRouter(t)

	// No header.
	w := doJSON(t, r, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Malformed token.
	w = doJSON(t, r, http.MethodGet, "/api/auth/me", "garbage", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong scheme.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDuplicateEmailConflict(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r, "taken@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Other",
		"email":    "taken@example.com",
		"password": "secret2",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "Email already exists")
}

func TestLoginInvalidCredentials(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r, "victim@example.com")

	unknown := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "whatever",
	})
	wrong := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "victim@example.com", "password": "wrong",
	})

	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	// Both failures carry the identical message.
	require.JSONEq(t, unknown.Body.String(), wrong.Body.String())
}

func TestLogUsageAndStats(t *testing.T) {
	r := newTestRouter(t)
	bearer := registerUser(t, r, "stats@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/water-usage", bearer, map[string]float64{
		"shower": 40, "toilet": 20, "washingMachine": 30,
		"dishwasher": 10, "garden": 35, "other": 15,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var entry model.WaterUsageEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	require.InDelta(t, 150.0, entry.TotalLitres, 1e-9)
	require.False(t, entry.TargetAchieved)

	w = doJSON(t, r, http.MethodGet, "/api/water-usage/stats", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats model.UsageStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	require.InDelta(t, 150.0, stats.DailyUsage, 1e-9)
	require.InDelta(t, 150.0, stats.WeeklyUsage, 1e-9)
	require.InDelta(t, 0.0, stats.TargetAchievement, 1e-9)

	w = doJSON(t, r, http.MethodGet, "/api/water-usage/recent?limit=5", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []model.WaterUsageEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
}

func TestLogUsageValidation(t *testing.T) {
	r := newTestRouter(t)
	bearer := registerUser(t, r, "invalid@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/water-usage", bearer, map[string]float64{
		"shower": -5,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Message string `json:"message"`
		Fields  []struct {
			Field string `json:"field"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Message)
	// shower negative plus five missing categories.
	require.Len(t, resp.Fields, 6)
}

func TestLessonsFlow(t *testing.T) {
	r := newTestRouter(t)
	bearer := registerUser(t, r, "learner@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/lessons", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var lessons []model.Lesson
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lessons))
	require.Len(t, lessons, 4)

	// /lessons/next must route to the next-lesson handler, not /:id.
	w = doJSON(t, r, http.MethodGet, "/api/lessons/next", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var next model.Lesson
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &next))
	require.Equal(t, lessons[0].ID, next.ID)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/lessons/%s/complete", lessons[0].ID), bearer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/progress", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var progress struct {
		CompletedLessons []model.CompletedLesson `json:"completed_lessons"`
		CurrentLessonID  *string                 `json:"current_lesson_id"`
		TotalLessons     int                     `json:"total_lessons"`
		Progress         float64                 `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &progress))
	require.Len(t, progress.CompletedLessons, 1)
	require.Equal(t, 4, progress.TotalLessons)
	require.InDelta(t, 25.0, progress.Progress, 1e-9)
	require.NotNil(t, progress.CurrentLessonID)
	require.Equal(t, lessons[1].ID, *progress.CurrentLessonID)

	w = doJSON(t, r, http.MethodGet, "/api/lessons/no-such-lesson", bearer, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompleteLessonWithQuizScore(t *testing.T) {
	r := newTestRouter(t)
	bearer := registerUser(t, r, "quiz@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/lessons", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var lessons []model.Lesson
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lessons))

	quizID := lessons[3].ID
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/lessons/%s/complete", quizID), bearer,
		map[string]int{"quizScore": 150})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/lessons/%s/complete", quizID), bearer,
		map[string]int{"quizScore": 80})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestNotificationEndpoints(t *testing.T) {
	r := newTestRouter(t)
	bearer := registerUser(t, r, "inbox@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/notifications", bearer, map[string]string{
		"type":    "tip",
		"title":   "Fix that drip",
		"message": "A dripping tap can waste over 5,000 litres a year.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created model.Notification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, model.PriorityMedium, created.Priority)

	w = doJSON(t, r, http.MethodGet, "/api/notifications/unread-count", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var count struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &count))
	require.Equal(t, 1, count.Count)

	w = doJSON(t, r, http.MethodPatch, "/api/notifications/"+created.ID+"/read", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/notifications/unread-count", bearer, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &count))
	require.Zero(t, count.Count)

	w = doJSON(t, r, http.MethodDelete, "/api/notifications/"+created.ID, bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/notifications/"+created.ID, bearer, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUsersAreIsolated(t *testing.T) {
	r := newTestRouter(t)
	alice := registerUser(t, r, "alice@example.com")
	bob := registerUser(t, r, "bob@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/water-usage", alice, map[string]float64{
		"shower": 10, "toilet": 5, "washingMachine": 0,
		"dishwasher": 0, "garden": 0, "other": 0,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/water-usage/recent", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []model.WaterUsageEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Empty(t, entries)
}
