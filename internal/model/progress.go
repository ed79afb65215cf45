package model

import "time"

// CompletedLesson records one lesson a user has finished. QuizScore is
// set only for quiz lessons and ranges 0-100.
type CompletedLesson struct {
	LessonID    string    `json:"lesson_id" db:"lesson_id"`
	CompletedAt time.Time `json:"completed_at" db:"completed_at"`
	QuizScore   *int      `json:"quiz_score,omitempty" db:"quiz_score"`
}

// UserProgress tracks a user's position in the lesson sequence. There is
// at most one record per user, created lazily on first read or first
// completion. TotalProgress is recomputed from the completed count and
// the current lesson count on every read, never served stale.
type UserProgress struct {
	ID               string            `json:"id" db:"id"`
	UserID           string            `json:"user_id" db:"user_id"`
	CompletedLessons []CompletedLesson `json:"completed_lessons"`
	CurrentLessonID  *string           `json:"current_lesson_id,omitempty" db:"current_lesson_id"`
	TotalProgress    float64           `json:"total_progress" db:"total_progress"`
	TotalLessons     int               `json:"total_lessons" db:"-"`
	UpdatedAt        time.Time         `json:"updated_at" db:"updated_at"`
}
