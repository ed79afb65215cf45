package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/waterwise/internal/model"
)

// GetProgress retrieves the progress record for a user, including its
// completed lessons. Returns ErrNotFound when no record exists yet.
func (s *SQLiteStore) GetProgress(ctx context.Context, userID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	var currentLessonID sql.NullString

	err := s.db.QueryRowxContext(ctx,
		"SELECT id, user_id, current_lesson_id, total_progress, updated_at FROM user_progress WHERE user_id = ?",
		userID,
	).Scan(
		&progress.ID, &progress.UserID, &currentLessonID,
		&progress.TotalProgress, &progress.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("progress for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("getting progress for user %s: %w", userID, err)
	}

	if currentLessonID.Valid {
		progress.CurrentLessonID = &currentLessonID.String
	}

	completed, err := s.GetCompletedLessons(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress.CompletedLessons = completed

	return &progress, nil
}

// CreateProgress inserts a new progress record. Generates a UUID if ID
// is empty.
func (s *SQLiteStore) CreateProgress(ctx context.Context, progress model.UserProgress) (*model.UserProgress, error) {
	if progress.ID == "" {
		progress.ID = uuid.New().String()
	}
	progress.UpdatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_progress (id, user_id, current_lesson_id, total_progress, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		progress.ID, progress.UserID, progress.CurrentLessonID,
		progress.TotalProgress, progress.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating progress for user %s: %w", progress.UserID, err)
	}

	return &progress, nil
}

// UpdateProgress updates the current lesson and total progress of an
// existing record.
func (s *SQLiteStore) UpdateProgress(ctx context.Context, progress model.UserProgress) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE user_progress SET current_lesson_id = ?, total_progress = ?, updated_at = ?
		WHERE user_id = ?`,
		progress.CurrentLessonID, progress.TotalProgress, time.Now().UTC(), progress.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating progress for user %s: %w", progress.UserID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("progress for user %s: %w", progress.UserID, ErrNotFound)
	}
	return nil
}

// AddCompletedLesson records a lesson completion. The primary key on
// (user_id, lesson_id) plus INSERT OR IGNORE makes this idempotent:
// concurrent or repeated completions leave exactly one row.
func (s *SQLiteStore) AddCompletedLesson(ctx context.Context, userID, lessonID string, completedAt time.Time, quizScore *int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO completed_lessons (user_id, lesson_id, completed_at, quiz_score)
		VALUES (?, ?, ?, ?)`,
		userID, lessonID, completedAt.UTC(), quizScore,
	)
	if err != nil {
		return fmt.Errorf("recording completion of lesson %s for user %s: %w", lessonID, userID, err)
	}
	return nil
}

// GetCompletedLessons retrieves a user's completed lessons, oldest first.
func (s *SQLiteStore) GetCompletedLessons(ctx context.Context, userID string) ([]model.CompletedLesson, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT lesson_id, completed_at, quiz_score FROM completed_lessons
		WHERE user_id = ?
		ORDER BY completed_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying completed lessons: %w", err)
	}
	defer rows.Close()

	var completed []model.CompletedLesson
	for rows.Next() {
		var (
			c     model.CompletedLesson
			score sql.NullInt64
		)
		if err := rows.Scan(&c.LessonID, &c.CompletedAt, &score); err != nil {
			return nil, fmt.Errorf("scanning completed lesson row: %w", err)
		}
		if score.Valid {
			v := int(score.Int64)
			c.QuizScore = &v
		}
		completed = append(completed, c)
	}
	return completed, rows.Err()
}
