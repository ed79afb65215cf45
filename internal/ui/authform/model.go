// Package authform implements the login and registration forms.
package authform

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/waterwise/internal/model"
	"github.com/nhle/waterwise/internal/theme"
)

// LoginSubmittedMsg is dispatched when the login form is submitted.
type LoginSubmittedMsg struct {
	Email    string
	Password string
}

// RegisterSubmittedMsg is dispatched when the registration form is submitted.
type RegisterSubmittedMsg struct {
	Name      string
	Email     string
	Password  string
	Household *model.Household
}

// mode selects which of the two forms is active.
type mode int

const (
	modeLogin mode = iota
	modeRegister
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name          string
	email         string
	password      string
	householdSize string
	waterSource   string
	hasGarden     bool
}

// Model is the Bubble Tea model for the login and registration forms.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	mode     mode
	errorMsg string
	width    int
	height   int
}

// New creates a new auth form model starting in login mode.
func New(width, height int) Model {
	m := Model{
		fb:     &formBindings{householdSize: "1", waterSource: model.WaterSourceMains},
		width:  width,
		height: height,
	}
	m.form = m.buildLoginForm()
	return m
}

// Init starts the login form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// StartLogin initializes the form for logging in.
func (m *Model) StartLogin() tea.Cmd {
	m.mode = modeLogin
	m.errorMsg = ""
	m.fb.password = ""
	m.form = m.buildLoginForm()
	return m.form.Init()
}

// StartRegister initializes the form for creating an account.
func (m *Model) StartRegister() tea.Cmd {
	m.mode = modeRegister
	m.errorMsg = ""
	m.fb.password = ""
	m.form = m.buildRegisterForm()
	return m.form.Init()
}

// SetError displays a server-side error message above the form and
// re-opens it so the user can retry.
func (m *Model) SetError(msg string) tea.Cmd {
	m.errorMsg = msg
	if m.mode == modeRegister {
		m.form = m.buildRegisterForm()
	} else {
		m.form = m.buildLoginForm()
	}
	return m.form.Init()
}

// Update handles messages for the auth form. Ctrl+N switches between
// the login and registration forms.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+n" {
		if m.mode == modeLogin {
			return m, m.StartRegister()
		}
		return m, m.StartLogin()
	}

	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}

	return m, cmd
}

// handleSubmit emits the submission message for the active mode.
func (m *Model) handleSubmit() tea.Cmd {
	fb := *m.fb
	if m.mode == modeRegister {
		return func() tea.Msg {
			return RegisterSubmittedMsg{
				Name:      fb.name,
				Email:     fb.email,
				Password:  fb.password,
				Household: householdFromBindings(fb),
			}
		}
	}
	return func() tea.Msg {
		return LoginSubmittedMsg{Email: fb.email, Password: fb.password}
	}
}

// householdFromBindings converts the optional household fields. Returns
// nil when the size field is not a positive number.
func householdFromBindings(fb formBindings) *model.Household {
	size, err := strconv.Atoi(fb.householdSize)
	if err != nil || size <= 0 {
		return nil
	}
	return &model.Household{
		Size:        size,
		WaterSource: fb.waterSource,
		HasGarden:   fb.hasGarden,
	}
}

// buildLoginForm constructs the login form.
func (m *Model) buildLoginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&m.fb.email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password),
		),
	).WithWidth(min(m.width-4, 60)).WithShowHelp(false)
}

// buildRegisterForm constructs the registration form with the optional
// household profile fields.
func (m *Model) buildRegisterForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&m.fb.name),
			huh.NewInput().
				Title("Email").
				Value(&m.fb.email),
			huh.NewInput().
				Title("Password (min 6 characters)").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Household size").
				Value(&m.fb.householdSize),
			huh.NewSelect[string]().
				Title("Water source").
				Options(
					huh.NewOption("Mains", model.WaterSourceMains),
					huh.NewOption("Well", model.WaterSourceWell),
					huh.NewOption("Rainwater", model.WaterSourceRainwater),
				).
				Value(&m.fb.waterSource),
			huh.NewConfirm().
				Title("Do you have a garden?").
				Value(&m.fb.hasGarden),
		),
	).WithWidth(min(m.width-4, 60)).WithShowHelp(false)
}

// View renders the auth form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Log in to WaterWise"
	hint := "ctrl+n: create an account"
	if m.mode == modeRegister {
		titleText = "Create a WaterWise account"
		hint = "ctrl+n: back to login"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n"
	if m.errorMsg != "" {
		content += theme.ErrorStyle.Render(m.errorMsg) + "\n\n"
	}
	content += m.form.View() + "\n" + theme.HelpStyle.Render(hint)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
