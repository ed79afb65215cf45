// Package notificationlist implements the notification inbox view.
package notificationlist

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/waterwise/internal/client"
	"github.com/nhle/waterwise/internal/keys"
	"github.com/nhle/waterwise/internal/model"
	"github.com/nhle/waterwise/internal/theme"
)

// NotificationsLoadedMsg is sent when notifications have been loaded.
type NotificationsLoadedMsg struct {
	Notifications []model.Notification
}

// UnreadChangedMsg signals the root model to refresh the unread badge.
type UnreadChangedMsg struct{}

// loadErrMsg carries a load or action failure.
type loadErrMsg struct {
	err error
}

// NotificationItem wraps a model.Notification for use in a bubbles/list.
type NotificationItem struct {
	Notification model.Notification
}

// FilterValue returns the string used for fuzzy filtering.
func (i NotificationItem) FilterValue() string { return i.Notification.Title }

// Title returns the notification title for the list.
func (i NotificationItem) Title() string { return i.Notification.Title }

// Description returns the notification message line.
func (i NotificationItem) Description() string { return i.Notification.Message }

// ItemDelegate implements list.ItemDelegate for notification rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a notification as a two-line row.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ni, ok := item.(NotificationItem)
	if !ok {
		return
	}
	n := ni.Notification

	prefix := "●"
	if n.IsRead {
		prefix = " "
	}

	typeBadge := theme.NotificationTypeStyle(n.Type).Render(string(n.Type))
	priBadge := theme.PriorityStyle(n.Priority).Render(n.Priority)
	when := theme.DimmedStyle.Render(n.CreatedAt.Format("Jan 02 15:04"))

	line := fmt.Sprintf("%s %s %s %s  %s", prefix, typeBadge, priBadge, n.Title, when)
	second := "  " + n.Message

	if n.IsRead {
		line = theme.DimmedStyle.Render(line)
		second = theme.DimmedStyle.Render(second)
	}

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
		second = theme.SelectedItemStyle.Render(second)
	} else {
		line = theme.ListItemStyle.Render(line)
		second = theme.ListItemStyle.Render(second)
	}

	fmt.Fprint(w, line+"\n"+second)
}

// Model is the notification inbox view component.
type Model struct {
	list    list.Model
	client  *client.Client
	keys    *keys.KeyMap
	loadErr error
	width   int
	height  int
}

// New creates a new notification list model.
func New(c *client.Client, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Notifications"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		client: c,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init returns a command that loads the notifications.
func (m Model) Init() tea.Cmd {
	return m.LoadNotifications()
}

// LoadNotifications fetches the user's notifications, newest first.
func (m Model) LoadNotifications() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		notifications, err := c.Notifications(context.Background(), client.NotificationsOptions{Limit: 50})
		if err != nil {
			return loadErrMsg{err: fmt.Errorf("loading notifications: %w", err)}
		}
		return NotificationsLoadedMsg{Notifications: notifications}
	}
}

// Update handles messages for the notification view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case NotificationsLoadedMsg:
		m.loadErr = nil
		items := make([]list.Item, len(msg.Notifications))
		for i, n := range msg.Notifications {
			items[i] = NotificationItem{Notification: n}
		}
		return m, m.list.SetItems(items)

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

// handleKeys processes key input for the notification list.
func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.MarkRead):
		if item, ok := m.list.SelectedItem().(NotificationItem); ok {
			return m, m.markRead(item.Notification.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.ReadAll):
		return m, m.markAllRead()
	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.list.SelectedItem().(NotificationItem); ok {
			return m, m.delete(item.Notification.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.LoadNotifications()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// markRead marks one notification as read, then reloads.
func (m Model) markRead(id string) tea.Cmd {
	c := m.client
	return tea.Sequence(
		func() tea.Msg {
			if err := c.MarkNotificationRead(context.Background(), id); err != nil {
				return loadErrMsg{err: fmt.Errorf("marking notification read: %w", err)}
			}
			return UnreadChangedMsg{}
		},
		m.LoadNotifications(),
	)
}

// markAllRead marks every notification as read, then reloads.
func (m Model) markAllRead() tea.Cmd {
	c := m.client
	return tea.Sequence(
		func() tea.Msg {
			if err := c.MarkAllNotificationsRead(context.Background()); err != nil {
				return loadErrMsg{err: fmt.Errorf("marking all read: %w", err)}
			}
			return UnreadChangedMsg{}
		},
		m.LoadNotifications(),
	)
}

// delete removes a notification, then reloads.
func (m Model) delete(id string) tea.Cmd {
	c := m.client
	return tea.Sequence(
		func() tea.Msg {
			if err := c.DeleteNotification(context.Background(), id); err != nil {
				return loadErrMsg{err: fmt.Errorf("deleting notification: %w", err)}
			}
			return UnreadChangedMsg{}
		},
		m.LoadNotifications(),
	)
}

// View renders the notification list.
func (m Model) View() string {
	if m.loadErr != nil {
		return theme.PanelStyle.Render(
			theme.ErrorStyle.Render("Could not load notifications: " + m.loadErr.Error()),
		)
	}
	return m.list.View()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
