// Package lessonlist implements the lesson browser and detail view.
package lessonlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/waterwise/internal/client"
	"github.com/nhle/waterwise/internal/keys"
	"github.com/nhle/waterwise/internal/model"
	"github.com/nhle/waterwise/internal/theme"
)

// LessonsLoadedMsg is sent when lessons and progress have been loaded.
type LessonsLoadedMsg struct {
	Lessons         []model.Lesson
	Completed       map[string]bool
	CurrentLessonID string
}

// LessonCompletedMsg is sent after a lesson is marked complete.
type LessonCompletedMsg struct {
	Progress *model.UserProgress
}

// loadErrMsg carries a load or completion failure.
type loadErrMsg struct {
	err error
}

// Model is the lesson browser view component. It shows the lesson list
// and, once a lesson is opened, its content in a detail panel.
type Model struct {
	list      list.Model
	client    *client.Client
	keys      *keys.KeyMap
	detail    *model.Lesson
	completed map[string]bool
	loadErr   error
	width     int
	height    int
}

// New creates a new lesson list model.
func New(c *client.Client, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Lessons"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:      l,
		client:    c,
		keys:      k,
		completed: make(map[string]bool),
		width:     width,
		height:    height,
	}
}

// Init returns a command that loads the lessons.
func (m Model) Init() tea.Cmd {
	return m.LoadLessons()
}

// LoadLessons fetches the lessons and the user's progress.
func (m Model) LoadLessons() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx := context.Background()

		lessons, err := c.Lessons(ctx)
		if err != nil {
			return loadErrMsg{err: fmt.Errorf("loading lessons: %w", err)}
		}

		progress, err := c.Progress(ctx)
		if err != nil {
			return loadErrMsg{err: fmt.Errorf("loading progress: %w", err)}
		}

		completed := make(map[string]bool, len(progress.CompletedLessons))
		for _, cl := range progress.CompletedLessons {
			completed[cl.LessonID] = true
		}

		currentID := ""
		if progress.CurrentLessonID != nil {
			currentID = *progress.CurrentLessonID
		}

		return LessonsLoadedMsg{
			Lessons:         lessons,
			Completed:       completed,
			CurrentLessonID: currentID,
		}
	}
}

// completeLesson marks the given lesson complete on the server.
func (m Model) completeLesson(id string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		progress, err := c.CompleteLesson(context.Background(), id, nil)
		if err != nil {
			return loadErrMsg{err: fmt.Errorf("completing lesson: %w", err)}
		}
		return LessonCompletedMsg{Progress: progress}
	}
}

// Update handles messages for the lesson view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LessonsLoadedMsg:
		m.loadErr = nil
		m.completed = msg.Completed
		items := make([]list.Item, len(msg.Lessons))
		for i, lesson := range msg.Lessons {
			items[i] = LessonItem{
				Lesson:    lesson,
				Completed: msg.Completed[lesson.ID],
				Current:   lesson.ID == msg.CurrentLessonID,
			}
		}
		return m, m.list.SetItems(items)

	case LessonCompletedMsg:
		// Reload so completion markers and the current lesson update.
		return m, m.LoadLessons()

	case loadErrMsg:
		m.loadErr = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleKeys processes key input for both list and detail modes.
func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.detail != nil {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.detail = nil
			return m, nil
		case key.Matches(msg, m.keys.Complete):
			return m, m.completeLesson(m.detail.ID)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Select):
		if item, ok := m.list.SelectedItem().(LessonItem); ok {
			lesson := item.Lesson
			m.detail = &lesson
		}
		return m, nil
	case key.Matches(msg, m.keys.Complete):
		if item, ok := m.list.SelectedItem().(LessonItem); ok {
			return m, m.completeLesson(item.Lesson.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.LoadLessons()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// InDetail reports whether the detail panel is open. The root model
// uses this to decide whether esc should leave the lesson view.
func (m Model) InDetail() bool {
	return m.detail != nil
}

// View renders the lesson list or the open lesson's detail panel.
func (m Model) View() string {
	if m.loadErr != nil {
		return theme.PanelStyle.Render(
			theme.ErrorStyle.Render("Could not load lessons: " + m.loadErr.Error()),
		)
	}
	if m.detail != nil {
		return m.renderDetail(*m.detail)
	}
	return m.list.View()
}

// renderDetail renders a lesson's full content, including quiz questions.
func (m Model) renderDetail(lesson model.Lesson) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)

	var b strings.Builder
	b.WriteString(titleStyle.Render(lesson.Title) + "\n")
	b.WriteString(theme.LessonTypeStyle(lesson.Type).Render(string(lesson.Type)))
	b.WriteString(theme.DimmedStyle.Render(fmt.Sprintf(" %d min", lesson.DurationMinutes)))
	if m.completed[lesson.ID] {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorGreen).Render("  ✓ completed"))
	}
	b.WriteString("\n\n")
	b.WriteString(lesson.Content + "\n")

	for i, q := range lesson.QuizQuestions {
		b.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, q.Question))
		for j, opt := range q.Options {
			b.WriteString(fmt.Sprintf("   %c) %s\n", 'a'+j, opt))
		}
	}

	b.WriteString("\n" + theme.HelpStyle.Render("c: mark complete  esc: back"))

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(b.String())
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
