package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/waterwise/internal/client"
	"github.com/nhle/waterwise/internal/credential"
	"github.com/nhle/waterwise/internal/model"
	"github.com/nhle/waterwise/internal/ui/authform"
)

// sessionLoadedMsg is sent when a stored session token is still valid.
type sessionLoadedMsg struct {
	user *model.User
}

// sessionErrMsg is sent when the stored session token is rejected.
type sessionErrMsg struct {
	err error
}

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	resp *client.AuthResponse
	err  error
}

// registerResultMsg carries the outcome of a registration attempt.
type registerResultMsg struct {
	resp *client.AuthResponse
	err  error
}

// usageLoggedMsg carries the outcome of submitting a usage entry.
type usageLoggedMsg struct {
	entry *model.WaterUsageEntry
	err   error
}

// unreadCountMsg carries the number of unread notifications.
type unreadCountMsg struct {
	count int
}

// unreadTickMsg triggers a periodic unread count refresh.
type unreadTickMsg struct{}

// errorNoticeMsg surfaces a non-fatal error to the user.
type errorNoticeMsg struct {
	text string
}

// unreadPollInterval is how often the unread badge refreshes.
const unreadPollInterval = time.Minute

// loadSession validates the stored token by fetching the profile.
func (m Model) loadSession() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		user, err := c.Me(context.Background())
		if err != nil {
			return sessionErrMsg{err: err}
		}
		return sessionLoadedMsg{user: user}
	}
}

// login authenticates and persists the session token in the keyring.
func (m Model) login(email, password string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		resp, err := c.Login(context.Background(), email, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		// Best effort; a headless keyring should not block login.
		_ = credential.SetSessionToken(resp.Token)
		return loginResultMsg{resp: resp}
	}
}

// register creates the account and persists the session token.
func (m Model) register(msg authform.RegisterSubmittedMsg) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		resp, err := c.Register(context.Background(), client.RegisterRequest{
			Name:      msg.Name,
			Email:     msg.Email,
			Password:  msg.Password,
			Household: msg.Household,
		})
		if err != nil {
			return registerResultMsg{err: err}
		}
		_ = credential.SetSessionToken(resp.Token)
		return registerResultMsg{resp: resp}
	}
}

// logout clears the stored token and returns to the login form.
func (m *Model) logout() tea.Cmd {
	_ = credential.ClearSessionToken()
	m.client.SetToken("")
	m.user = nil
	m.unreadCount = 0
	m.currentView = ViewAuth
	return m.authView.StartLogin()
}

// logUsage submits a usage entry to the server.
func (m Model) logUsage(req client.LogUsageRequest) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		entry, err := c.LogUsage(context.Background(), req)
		return usageLoggedMsg{entry: entry, err: err}
	}
}

// fetchUnreadCount refreshes the unread notification badge.
func (m Model) fetchUnreadCount() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		count, err := c.UnreadCount(context.Background())
		if err != nil {
			return unreadCountMsg{count: 0}
		}
		return unreadCountMsg{count: count}
	}
}

// scheduleUnreadTick arms the next periodic unread refresh.
func (m Model) scheduleUnreadTick() tea.Cmd {
	return tea.Tick(unreadPollInterval, func(time.Time) tea.Msg {
		return unreadTickMsg{}
	})
}

// authErrorText extracts a readable message from an API failure.
func authErrorText(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Could not reach the server. Is it running?"
}
