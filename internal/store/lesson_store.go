package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/waterwise/internal/model"
)

// CreateLesson inserts a new lesson. Generates a UUID if ID is empty.
// Quiz questions are stored as a JSON column.
func (s *SQLiteStore) CreateLesson(ctx context.Context, lesson model.Lesson) (*model.Lesson, error) {
	if lesson.ID == "" {
		lesson.ID = uuid.New().String()
	}
	lesson.CreatedAt = time.Now().UTC()

	questions, err := json.Marshal(lesson.QuizQuestions)
	if err != nil {
		return nil, fmt.Errorf("marshaling quiz questions for lesson %s: %w", lesson.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO lessons (
			id, title, content, type, duration_minutes, sort_order, category,
			quiz_questions, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lesson.ID, lesson.Title, lesson.Content, string(lesson.Type),
		lesson.DurationMinutes, lesson.Order, lesson.Category,
		string(questions), lesson.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating lesson: %w", err)
	}

	return &lesson, nil
}

// GetLessons retrieves all lessons ordered by their sort order ascending.
func (s *SQLiteStore) GetLessons(ctx context.Context) ([]model.Lesson, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM lessons ORDER BY sort_order ASC")
	if err != nil {
		return nil, fmt.Errorf("querying lessons: %w", err)
	}
	defer rows.Close()

	var lessons []model.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}
	return lessons, rows.Err()
}

// GetLessonByID retrieves a single lesson by ID.
func (s *SQLiteStore) GetLessonByID(ctx context.Context, id string) (*model.Lesson, error) {
	var (
		lesson     model.Lesson
		lessonType string
		questions  string
	)

	err := s.db.QueryRowxContext(ctx, "SELECT * FROM lessons WHERE id = ?", id).Scan(
		&lesson.ID, &lesson.Title, &lesson.Content, &lessonType,
		&lesson.DurationMinutes, &lesson.Order, &lesson.Category,
		&questions, &lesson.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lesson %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting lesson %s: %w", id, err)
	}

	lesson.Type = model.LessonType(lessonType)
	if err := json.Unmarshal([]byte(questions), &lesson.QuizQuestions); err != nil {
		return nil, fmt.Errorf("unmarshaling quiz questions for lesson %s: %w", id, err)
	}

	return &lesson, nil
}

// CountLessons returns the total number of lessons.
func (s *SQLiteStore) CountLessons(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM lessons"); err != nil {
		return 0, fmt.Errorf("counting lessons: %w", err)
	}
	return count, nil
}

// scanLesson scans a lesson row from a sqlx.Rows result set.
func scanLesson(rows *sqlx.Rows) (model.Lesson, error) {
	var (
		lesson     model.Lesson
		lessonType string
		questions  string
	)

	err := rows.Scan(
		&lesson.ID, &lesson.Title, &lesson.Content, &lessonType,
		&lesson.DurationMinutes, &lesson.Order, &lesson.Category,
		&questions, &lesson.CreatedAt,
	)
	if err != nil {
		return model.Lesson{}, fmt.Errorf("scanning lesson row: %w", err)
	}

	lesson.Type = model.LessonType(lessonType)
	if questions != "" {
		if err := json.Unmarshal([]byte(questions), &lesson.QuizQuestions); err != nil {
			return model.Lesson{}, fmt.Errorf("unmarshaling quiz questions: %w", err)
		}
	}

	return lesson, nil
}
