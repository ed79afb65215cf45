// Package usageform implements the daily water usage entry form.
package usageform

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/waterwise/internal/client"
	"github.com/nhle/waterwise/internal/theme"
)

// SubmittedMsg is dispatched when the usage form is submitted with
// valid amounts.
type SubmittedMsg struct {
	Request client.LogUsageRequest
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	shower         string
	toilet         string
	washingMachine string
	dishwasher     string
	garden         string
	other          string
	notes          string
}

// Model is the Bubble Tea model for the usage entry form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new usage form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Start resets the fields and opens the form.
func (m *Model) Start() tea.Cmd {
	*m.fb = formBindings{
		shower: "0", toilet: "0", washingMachine: "0",
		dishwasher: "0", garden: "0", other: "0",
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the usage form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
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
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// handleSubmit parses the amounts and emits the submission message.
// Field validators guarantee the values parse.
func (m *Model) handleSubmit() tea.Cmd {
	fb := *m.fb
	return func() tea.Msg {
		return SubmittedMsg{Request: client.LogUsageRequest{
			Shower:         parseAmount(fb.shower),
			Toilet:         parseAmount(fb.toilet),
			WashingMachine: parseAmount(fb.washingMachine),
			Dishwasher:     parseAmount(fb.dishwasher),
			Garden:         parseAmount(fb.garden),
			Other:          parseAmount(fb.other),
			Notes:          strings.TrimSpace(fb.notes),
		}}
	}
}

// parseAmount converts a field value to a float pointer. An empty field
// counts as zero litres.
func parseAmount(v string) *float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		zero := 0.0
		return &zero
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

// validateAmount rejects values that are not non-negative numbers.
func validateAmount(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("enter a number of litres")
	}
	if f < 0 {
		return fmt.Errorf("litres cannot be negative")
	}
	return nil
}

// buildForm constructs the usage entry form.
func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Shower (litres)").
				Validate(validateAmount).
				Value(&m.fb.shower),
			huh.NewInput().
				Title("Toilet (litres)").
				Validate(validateAmount).
				Value(&m.fb.toilet),
			huh.NewInput().
				Title("Washing machine (litres)").
				Validate(validateAmount).
				Value(&m.fb.washingMachine),
			huh.NewInput().
				Title("Dishwasher (litres)").
				Validate(validateAmount).
				Value(&m.fb.dishwasher),
			huh.NewInput().
				Title("Garden (litres)").
				Validate(validateAmount).
				Value(&m.fb.garden),
			huh.NewInput().
				Title("Other (litres)").
				Validate(validateAmount).
				Value(&m.fb.other),
			huh.NewText().
				Title("Notes").
				Lines(2).
				Value(&m.fb.notes),
		),
	).WithWidth(min(m.width-4, 60)).WithShowHelp(false)
}

// View renders the usage form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Log today's water usage") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
