// Package app wires the terminal client views into the root Bubble Tea model.
package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/waterwise/internal/client"
	"github.com/nhle/waterwise/internal/keys"
	"github.com/nhle/waterwise/internal/model"
	"github.com/nhle/waterwise/internal/ui"
	"github.com/nhle/waterwise/internal/ui/authform"
	"github.com/nhle/waterwise/internal/ui/dashboard"
	"github.com/nhle/waterwise/internal/ui/helpview"
	"github.com/nhle/waterwise/internal/ui/lessonlist"
	"github.com/nhle/waterwise/internal/ui/notificationlist"
	"github.com/nhle/waterwise/internal/ui/usageform"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewAuth ViewState = iota
	ViewDashboard
	ViewLessons
	ViewNotifications
	ViewLogUsage
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and the authenticated session.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	client       *client.Client
	keys         *keys.KeyMap

	authView         authform.Model
	dashboardView    dashboard.Model
	lessonView       lessonlist.Model
	notificationView notificationlist.Model
	usageFormView    usageform.Model
	helpView         helpview.Model

	user        *model.User
	unreadCount int
	notice      string
	ready       bool
}

// New creates the root application model. The client may already carry
// a session token restored from the keyring.
func New(c *client.Client) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView:      ViewAuth,
		client:           c,
		keys:             k,
		authView:         authform.New(80, 24),
		dashboardView:    dashboard.New(c, 80, 24),
		lessonView:       lessonlist.New(c, k, 80, 24),
		notificationView: notificationlist.New(c, k, 80, 24),
		usageFormView:    usageform.New(80, 24),
		helpView:         helpview.New(k, 80, 24),
	}
}

// Init restores the stored session if a token is present, otherwise
// starts the login form built by the auth view's constructor.
func (m Model) Init() tea.Cmd {
	if m.client.Token() != "" {
		return m.loadSession()
	}
	return m.authView.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.authView.SetSize(contentWidth, contentHeight)
		m.dashboardView.SetSize(contentWidth, contentHeight)
		m.lessonView.SetSize(contentWidth, contentHeight)
		m.notificationView.SetSize(contentWidth, contentHeight)
		m.usageFormView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		// Forward to the active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case sessionLoadedMsg:
		m.user = msg.user
		return m.enterDashboard()

	case sessionErrMsg:
		// The stored token is missing or expired; fall back to login.
		m.currentView = ViewAuth
		return m, m.authView.StartLogin()

	case loginResultMsg:
		if msg.err != nil {
			return m, m.authView.SetError(authErrorText(msg.err))
		}
		m.user = &msg.resp.User
		return m.enterDashboard()

	case registerResultMsg:
		if msg.err != nil {
			return m, m.authView.SetError(authErrorText(msg.err))
		}
		m.user = &msg.resp.User
		return m.enterDashboard()

	case authform.LoginSubmittedMsg:
		return m, m.login(msg.Email, msg.Password)

	case authform.RegisterSubmittedMsg:
		return m, m.register(msg)

	case usageform.SubmittedMsg:
		m.notice = ""
		return m, m.logUsage(msg.Request)

	case usageform.CancelMsg:
		m.currentView = ViewDashboard
		return m, m.dashboardView.Refresh()

	case usageLoggedMsg:
		if msg.err != nil {
			// Reopen the form with the server's validation message.
			return m, tea.Sequence(
				m.usageFormView.Start(),
				func() tea.Msg { return errorNoticeMsg{text: authErrorText(msg.err)} },
			)
		}
		m.currentView = ViewDashboard
		return m, tea.Batch(m.dashboardView.Refresh(), m.fetchUnreadCount())

	case notificationlist.UnreadChangedMsg:
		return m, m.fetchUnreadCount()

	case unreadCountMsg:
		m.unreadCount = msg.count
		return m, nil

	case unreadTickMsg:
		return m, tea.Batch(m.fetchUnreadCount(), m.scheduleUnreadTick())

	case errorNoticeMsg:
		m.notice = msg.text
		return m, nil

	case tea.KeyMsg:
		if handled, mdl, cmd := m.handleGlobalKeys(msg); handled {
			return mdl, cmd
		}
		return m.updateActiveView(msg)
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes view switching and quit keys. Returns
// handled=false when the key should go to the active view instead,
// such as while a form is capturing input.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	// Ctrl+C always quits, even inside forms.
	if msg.String() == "ctrl+c" {
		return true, m, tea.Quit
	}

	// Forms own the keyboard while active.
	if m.currentView == ViewAuth || m.currentView == ViewLogUsage {
		return false, m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return true, m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
		} else {
			m.previousView = m.currentView
			m.currentView = ViewHelp
		}
		return true, m, nil

	case key.Matches(msg, m.keys.Back):
		// Let the lesson view close its own detail panel first.
		if m.currentView == ViewLessons && m.lessonView.InDetail() {
			return false, m, nil
		}
		if m.currentView != ViewDashboard {
			m.currentView = ViewDashboard
			return true, m, m.dashboardView.Refresh()
		}
		return true, m, nil

	case key.Matches(msg, m.keys.Dashboard):
		m.currentView = ViewDashboard
		return true, m, m.dashboardView.Refresh()

	case key.Matches(msg, m.keys.Lessons):
		m.currentView = ViewLessons
		return true, m, m.lessonView.LoadLessons()

	case key.Matches(msg, m.keys.Notifications):
		m.currentView = ViewNotifications
		return true, m, m.notificationView.LoadNotifications()

	case key.Matches(msg, m.keys.LogUsage):
		m.currentView = ViewLogUsage
		return true, m, m.usageFormView.Start()

	case key.Matches(msg, m.keys.Logout):
		return true, m, m.logout()
	}

	return false, m, nil
}

// enterDashboard switches to the dashboard after authentication and
// starts the background unread poll.
func (m Model) enterDashboard() (tea.Model, tea.Cmd) {
	m.currentView = ViewDashboard
	return m, tea.Batch(
		m.dashboardView.Refresh(),
		m.fetchUnreadCount(),
		m.scheduleUnreadTick(),
	)
}

// updateActiveView forwards a message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewAuth:
		m.authView, cmd = m.authView.Update(msg)
	case ViewDashboard:
		m.dashboardView, cmd = m.dashboardView.Update(msg)
	case ViewLessons:
		m.lessonView, cmd = m.lessonView.Update(msg)
	case ViewNotifications:
		m.notificationView, cmd = m.notificationView.Update(msg)
	case ViewLogUsage:
		m.usageFormView, cmd = m.usageFormView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}
	return m, cmd
}

// View renders the active view inside the standard frame.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var content string
	switch m.currentView {
	case ViewAuth:
		content = m.authView.View()
	case ViewDashboard:
		content = m.dashboardView.View()
	case ViewLessons:
		content = m.lessonView.View()
	case ViewNotifications:
		content = m.notificationView.View()
	case ViewLogUsage:
		content = m.usageFormView.View()
	case ViewHelp:
		content = m.helpView.View()
	}

	header := m.layout.RenderHeader("WaterWise", m.headerStatus())
	statusBar := m.layout.RenderStatusBar(m.statusHints())
	return m.layout.RenderWithFrame(header, content, statusBar)
}

// headerStatus returns the right-hand header text: the signed-in user
// and the unread notification count.
func (m Model) headerStatus() string {
	if m.user == nil {
		return ""
	}
	status := m.user.Name
	if m.unreadCount > 0 {
		status = fmt.Sprintf("%s  ✉ %d", m.user.Name, m.unreadCount)
	}
	return status
}

// statusHints returns the keyboard hints for the bottom bar, or the
// latest error notice when one is pending.
func (m Model) statusHints() string {
	if m.notice != "" {
		return m.notice
	}
	switch m.currentView {
	case ViewAuth:
		return "enter: submit  ctrl+n: switch login/register  ctrl+c: quit"
	case ViewLogUsage:
		return "enter: next field  esc: cancel"
	case ViewLessons:
		return "enter: open  c: complete  d: dashboard  ?: help  q: quit"
	case ViewNotifications:
		return "m: mark read  M: all read  x: delete  d: dashboard  q: quit"
	default:
		return "a: log usage  l: lessons  n: notifications  ?: help  q: quit"
	}
}
