package service

import (
	"context"
	"errors"
	"time"

	"github.com/nhle/waterwise/internal/model"
	"github.com/nhle/waterwise/internal/store"
)

// LessonService serves lesson content and tracks per-user completion.
type LessonService struct {
	store store.Store
	now   func() time.Time
}

// NewLessonService creates a new lesson service using the real clock.
func NewLessonService(s store.Store) *LessonService {
	return &LessonService{store: s, now: time.Now}
}

// ListLessons returns all lessons ordered by their sequence position.
func (s *LessonService) ListLessons(ctx context.Context) ([]model.Lesson, error) {
	lessons, err := s.store.GetLessons(ctx)
	if err != nil {
		return nil, err
	}
	if lessons == nil {
		lessons = []model.Lesson{}
	}
	return lessons, nil
}

// GetLesson returns a single lesson by ID.
func (s *LessonService) GetLesson(ctx context.Context, id string) (*model.Lesson, error) {
	return s.store.GetLessonByID(ctx, id)
}

// Progress returns the user's progress record, creating an empty one on
// first access. The progress percentage is recomputed from the current
// completed count and lesson count on every read and the refreshed
// value is persisted, so it is never served stale.
func (s *LessonService) Progress(ctx context.Context, userID string) (*model.UserProgress, error) {
	progress, err := s.ensureProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, err := s.store.CountLessons(ctx)
	if err != nil {
		return nil, err
	}

	progress.TotalLessons = total
	progress.TotalProgress = progressPercent(len(progress.CompletedLessons), total)
	if err := s.store.UpdateProgress(ctx, *progress); err != nil {
		return nil, err
	}

	return progress, nil
}

// CompleteLesson marks a lesson as completed for a user. Completing an
// already-completed lesson is a no-op success, never an error or a
// duplicate. The current lesson is recomputed as the first lesson by
// order not yet completed. Finishing the final lesson produces an
// achievement notification.
func (s *LessonService) CompleteLesson(ctx context.Context, userID, lessonID string, quizScore *int) (*model.UserProgress, error) {
	if quizScore != nil && (*quizScore < 0 || *quizScore > 100) {
		return nil, &ValidationError{Fields: []FieldError{
			{Field: "quizScore", Message: "must be between 0 and 100"},
		}}
	}

	if _, err := s.store.GetLessonByID(ctx, lessonID); err != nil {
		return nil, err
	}

	progress, err := s.ensureProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	completedBefore := len(progress.CompletedLessons)

	if err := s.store.AddCompletedLesson(ctx, userID, lessonID, s.now().UTC(), quizScore); err != nil {
		return nil, err
	}

	completed, err := s.store.GetCompletedLessons(ctx, userID)
	if err != nil {
		return nil, err
	}

	lessons, err := s.store.GetLessons(ctx)
	if err != nil {
		return nil, err
	}

	done := make(map[string]bool, len(completed))
	for _, c := range completed {
		done[c.LessonID] = true
	}

	// Current lesson is the first by order not yet completed, unset
	// when everything is done.
	progress.CurrentLessonID = nil
	for i := range lessons {
		if !done[lessons[i].ID] {
			progress.CurrentLessonID = &lessons[i].ID
			break
		}
	}

	progress.CompletedLessons = completed
	progress.TotalLessons = len(lessons)
	progress.TotalProgress = progressPercent(len(completed), len(lessons))

	if err := s.store.UpdateProgress(ctx, *progress); err != nil {
		return nil, err
	}

	if len(lessons) > 0 && len(completed) == len(lessons) && completedBefore < len(lessons) {
		if _, err := s.store.CreateNotification(ctx, model.Notification{
			UserID:   userID,
			Type:     model.NotificationAchievement,
			Title:    "Course complete",
			Message:  "You have finished every water conservation lesson. Well done!",
			Priority: model.PriorityLow,
		}); err != nil {
			return nil, err
		}
	}

	return progress, nil
}

// NextLesson returns the lesson the user should take next: the current
// lesson when progress has one set, otherwise the first lesson by
// order. It fails with store.ErrNotFound only when no lessons exist.
func (s *LessonService) NextLesson(ctx context.Context, userID string) (*model.Lesson, error) {
	progress, err := s.store.GetProgress(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if progress != nil && progress.CurrentLessonID != nil {
		return s.store.GetLessonByID(ctx, *progress.CurrentLessonID)
	}

	lessons, err := s.store.GetLessons(ctx)
	if err != nil {
		return nil, err
	}
	if len(lessons) == 0 {
		return nil, store.ErrNotFound
	}
	return &lessons[0], nil
}

// ensureProgress fetches the user's progress record, lazily creating an
// empty one when none exists.
func (s *LessonService) ensureProgress(ctx context.Context, userID string) (*model.UserProgress, error) {
	progress, err := s.store.GetProgress(ctx, userID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return s.store.CreateProgress(ctx, model.UserProgress{UserID: userID})
}

// progressPercent computes completed/total as a 0-100 percentage,
// returning 0 when no lessons exist so there is no division by zero.
func progressPercent(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}
