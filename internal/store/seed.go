package store

import (
	"context"
	"fmt"

	"github.com/nhle/waterwise/internal/model"
)

// SeedLessons inserts the built-in lesson set when the lessons table is
// empty. Lessons are static reference data; existing content is never
// overwritten.
func SeedLessons(ctx context.Context, s Store) error {
	count, err := s.CountLessons(ctx)
	if err != nil {
		return fmt.Errorf("checking lesson count: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, lesson := range DefaultLessons() {
		if _, err := s.CreateLesson(ctx, lesson); err != nil {
			return fmt.Errorf("seeding lesson %q: %w", lesson.Title, err)
		}
	}
	return nil
}

// DefaultLessons returns the built-in water conservation curriculum.
func DefaultLessons() []model.Lesson {
	return []model.Lesson{
		{
			Title: "Understanding Water Conservation",
			Content: "Water is one of our most precious resources. Despite covering 71% " +
				"of the Earth's surface, only 2.5% of it is fresh water, and less than 1% " +
				"is readily available for human use. Conserving water protects ecosystems, " +
				"reduces energy spent on treatment and pumping, and lowers your bills.",
			Type:            model.LessonTypeInfo,
			DurationMinutes: 15,
			Order:           1,
			Category:        model.LessonCategoryConservation,
		},
		{
			Title: "Efficient Water Usage at Home",
			Content: "Small changes in your daily routine can lead to significant water " +
				"savings: fix leaking taps and pipes, install water-efficient fixtures, " +
				"take shorter showers, and only run full loads in washing machines and " +
				"dishwashers.",
			Type:            model.LessonTypeInfo,
			DurationMinutes: 20,
			Order:           2,
			Category:        model.LessonCategorySustainable,
		},
		{
			Title: "Smart Garden Watering",
			Content: "Your garden can thrive while using less water: water early in the " +
				"morning or in the evening, use drip irrigation, choose drought-resistant " +
				"plants, and mulch beds to retain moisture.",
			Type:            model.LessonTypeVideo,
			DurationMinutes: 25,
			Order:           3,
			Category:        model.LessonCategorySustainable,
		},
		{
			Title: "Water Scarcity Around the World",
			Content: "Over two billion people live in countries experiencing high water " +
				"stress. Understanding global scarcity puts household conservation in " +
				"context and connects it to the UN Sustainable Development Goals.",
			Type:            model.LessonTypeQuiz,
			DurationMinutes: 10,
			Order:           4,
			Category:        model.LessonCategoryScarcity,
			QuizQuestions: []model.QuizQuestion{
				{
					Question: "How much of the Earth's water is readily available fresh water?",
					Options:  []string{"Less than 1%", "About 10%", "About 25%", "Over half"},
					CorrectAnswer: 0,
				},
				{
					Question: "Which habit saves the most water in a typical household?",
					Options: []string{
						"Leaving taps running",
						"Shorter showers and full appliance loads",
						"Watering the garden at noon",
						"Daily pool top-ups",
					},
					CorrectAnswer: 1,
				},
			},
		},
	}
}
