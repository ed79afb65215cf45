package model

import "time"

// LessonType identifies how a lesson is presented.
type LessonType string

const (
	LessonTypeInfo  LessonType = "info"
	LessonTypeVideo LessonType = "video"
	LessonTypeQuiz  LessonType = "quiz"
)

// Lesson category constants.
const (
	LessonCategoryConservation = "water_conservation"
	LessonCategoryScarcity     = "water_scarcity"
	LessonCategorySustainable  = "sustainable_practices"
	LessonCategorySDG          = "sdg_goals"
)

// QuizQuestion is a single multiple-choice question inside a quiz lesson.
// CorrectAnswer is the index into Options.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// Lesson is a unit of educational content on water conservation.
// Lessons are static reference data, not owned by any user; Order
// defines the display and sequencing position.
type Lesson struct {
	ID              string         `json:"id" db:"id"`
	Title           string         `json:"title" db:"title"`
	Content         string         `json:"content" db:"content"`
	Type            LessonType     `json:"type" db:"type"`
	DurationMinutes int            `json:"duration_minutes" db:"duration_minutes"`
	Order           int            `json:"order" db:"sort_order"`
	Category        string         `json:"category" db:"category"`
	QuizQuestions   []QuizQuestion `json:"quiz_questions,omitempty" db:"-"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
}
