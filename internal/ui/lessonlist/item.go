package lessonlist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/waterwise/internal/model"
	"github.com/nhle/waterwise/internal/theme"
)

// LessonItem wraps a model.Lesson so it can be used in a bubbles/list.
type LessonItem struct {
	Lesson    model.Lesson
	Completed bool
	Current   bool
}

// FilterValue returns the string used for fuzzy filtering.
func (i LessonItem) FilterValue() string { return i.Lesson.Title }

// Title returns the lesson title for the list.
func (i LessonItem) Title() string { return i.Lesson.Title }

// Description returns a short summary line for the list.
func (i LessonItem) Description() string {
	return fmt.Sprintf("%s | %d min", i.Lesson.Type, i.Lesson.DurationMinutes)
}

// ItemDelegate implements list.ItemDelegate for rendering lesson rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single lesson line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	li, ok := item.(LessonItem)
	if !ok {
		return
	}

	var prefix string
	switch {
	case li.Completed:
		prefix = "✓"
	case li.Current:
		prefix = "▸"
	default:
		prefix = "○"
	}

	typeBadge := theme.LessonTypeStyle(li.Lesson.Type).Render(string(li.Lesson.Type))
	duration := theme.DimmedStyle.Render(fmt.Sprintf("%d min", li.Lesson.DurationMinutes))

	line := fmt.Sprintf("%s %2d. %s %s %s", prefix, li.Lesson.Order, li.Lesson.Title, typeBadge, duration)

	if li.Completed {
		line = theme.DimmedStyle.Render(line)
	}

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
