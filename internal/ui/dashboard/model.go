// Package dashboard renders the usage statistics overview.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/waterwise/internal/client"
	"github.com/nhle/waterwise/internal/model"
	"github.com/nhle/waterwise/internal/theme"
)

// statsLoadedMsg carries the usage statistics from the server.
type statsLoadedMsg struct {
	stats *model.UsageStats
}

// recentLoadedMsg carries the most recent usage entries.
type recentLoadedMsg struct {
	entries []model.WaterUsageEntry
}

// progressLoadedMsg carries the course progress summary.
type progressLoadedMsg struct {
	progress *client.ProgressSummary
}

// errMsg carries a load failure to be shown inline.
type errMsg struct {
	err error
}

// Model is the dashboard view component.
type Model struct {
	client   *client.Client
	stats    *model.UsageStats
	recent   []model.WaterUsageEntry
	progress *client.ProgressSummary
	loadErr  error
	width    int
	height   int
}

// New creates a new dashboard model.
func New(c *client.Client, width, height int) Model {
	return Model{
		client: c,
		width:  width,
		height: height,
	}
}

// Init loads the dashboard data.
func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh reloads stats, recent entries, and progress from the server.
func (m Model) Refresh() tea.Cmd {
	c := m.client
	return tea.Batch(
		func() tea.Msg {
			stats, err := c.UsageStats(context.Background())
			if err != nil {
				return errMsg{err: err}
			}
			return statsLoadedMsg{stats: stats}
		},
		func() tea.Msg {
			entries, err := c.RecentLogs(context.Background(), 5)
			if err != nil {
				return errMsg{err: err}
			}
			return recentLoadedMsg{entries: entries}
		},
		func() tea.Msg {
			progress, err := c.Progress(context.Background())
			if err != nil {
				return errMsg{err: err}
			}
			return progressLoadedMsg{progress: progress}
		},
	)
}

// Update handles messages for the dashboard view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		m.stats = msg.stats
		m.loadErr = nil
	case recentLoadedMsg:
		m.recent = msg.entries
	case progressLoadedMsg:
		m.progress = msg.progress
	case errMsg:
		m.loadErr = msg.err
	}
	return m, nil
}

// View renders the dashboard panels.
func (m Model) View() string {
	if m.loadErr != nil {
		return theme.PanelStyle.Render(
			theme.ErrorStyle.Render("Could not load dashboard: " + m.loadErr.Error()),
		)
	}
	if m.stats == nil {
		return theme.PanelStyle.Render("Loading...")
	}

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderStatsPanel(),
		m.renderProgressPanel(),
	)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		panels,
		m.renderRecentPanel(),
	)
}

// renderStatsPanel renders the daily/weekly/monthly usage figures.
func (m Model) renderStatsPanel() string {
	s := m.stats

	labelStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(20)
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	b.WriteString(title.Render("Water usage") + "\n\n")

	b.WriteString(labelStyle.Render("Today") +
		theme.UsageStyle(s.DailyUsage).Render(fmt.Sprintf("%.1f L", s.DailyUsage)) + "\n")
	b.WriteString(labelStyle.Render("Last 7 days") +
		fmt.Sprintf("%.1f L", s.WeeklyUsage) + "\n")
	b.WriteString(labelStyle.Render("Last 30 days") +
		fmt.Sprintf("%.1f L", s.MonthlyUsage) + "\n")
	b.WriteString(labelStyle.Render("Days under target") +
		fmt.Sprintf("%.0f%%", s.TargetAchievement) + "\n")
	b.WriteString(labelStyle.Render("Daily target") +
		fmt.Sprintf("%.0f L", model.DailyTargetLitres) + "\n")
	if s.LastLogDate != nil {
		b.WriteString(labelStyle.Render("Last log") +
			s.LastLogDate.Format("Jan 02") + "\n")
	}

	return theme.PanelStyle.Render(b.String())
}

// renderProgressPanel renders the course progress summary.
func (m Model) renderProgressPanel() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	var b strings.Builder
	b.WriteString(title.Render("Learning") + "\n\n")

	if m.progress == nil {
		b.WriteString("Loading...")
	} else {
		b.WriteString(fmt.Sprintf(
			"%d of %d lessons completed\n",
			len(m.progress.CompletedLessons), m.progress.TotalLessons,
		))
		b.WriteString(renderProgressBar(m.progress.Progress, 24) + "\n")
		b.WriteString(theme.HelpStyle.Render("press l to open the lessons"))
	}

	return theme.PanelStyle.Render(b.String())
}

// renderRecentPanel renders the latest usage entries, newest first.
func (m Model) renderRecentPanel() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	var b strings.Builder
	b.WriteString(title.Render("Recent entries") + "\n\n")

	if len(m.recent) == 0 {
		b.WriteString(theme.HelpStyle.Render("No usage logged yet. Press a to add an entry."))
	}
	for _, entry := range m.recent {
		marker := theme.UsageStyle(entry.TotalLitres).Render("●")
		line := fmt.Sprintf(
			"%s %s  %s",
			marker,
			entry.Date.Format("Mon Jan 02"),
			theme.UsageStyle(entry.TotalLitres).Render(fmt.Sprintf("%6.1f L", entry.TotalLitres)),
		)
		if entry.Notes != "" {
			line += "  " + theme.DimmedStyle.Render(entry.Notes)
		}
		b.WriteString(line + "\n")
	}

	return theme.PanelStyle.Width(m.width - 4).Render(b.String())
}

// renderProgressBar draws a simple unicode progress bar for a 0-100 value.
func renderProgressBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(theme.ColorBlue).Render(bar) +
		fmt.Sprintf(" %.0f%%", percent)
}

// SetSize updates the dashboard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
