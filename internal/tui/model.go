// Package tui is the interactive terminal browser for race results.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dcrhub/internal/formatter"
	"dcrhub/internal/models"
	"dcrhub/internal/view"
)

// chromeHeight is the number of lines used by everything but the results.
const chromeHeight = 10

// Controller is the filter state the browser drives. SetInput, Clear and
// ShareableURL are called from Update, so keystrokes reach it in order.
type Controller interface {
	Seed(pageURL string, inputs models.FilterState) (models.FilterState, error)
	Load(ctx context.Context) error
	SetInput(field models.FilterField, value string)
	Clear()
	ShareableURL() string
}

// ResultsMsg carries a render of the result list.
type ResultsMsg struct {
	Status  string
	Records []models.DisplayRecord
}

// ErrorMsg carries a load failure message.
type ErrorMsg struct {
	Message string
}

type loadedMsg struct{}

// Model is the bubbletea model of the browser.
type Model struct {
	ctx      context.Context
	ctrl     Controller
	status   string
	errMsg   string
	shareURL string
	inputs   []textinput.Model
	records  []models.DisplayRecord
	viewport viewport.Model
	styles   Styles
	focus    int
}

// NewModel creates a browser showing the seeded filter values.
func NewModel(ctx context.Context, ctrl Controller, initial models.FilterState) Model {
	placeholders := map[models.FilterField]string{
		models.FieldDate:   "yyyy-mm-dd or dd/mm/yyyy",
		models.FieldCourse: "Course",
		models.FieldQuery:  "Horse, race, note…",
	}

	inputs := make([]textinput.Model, 0, len(models.FilterFields))

	for _, field := range models.FilterFields {
		ti := textinput.New()
		ti.Prompt = string(field) + ": "
		ti.Placeholder = placeholders[field]
		ti.CharLimit = 64
		ti.Width = 24
		ti.SetValue(initial.Get(field))
		inputs = append(inputs, ti)
	}

	inputs[0].Focus()

	return Model{
		ctx:      ctx,
		ctrl:     ctrl,
		status:   view.LoadingStatus,
		inputs:   inputs,
		viewport: viewport.New(80, 20),
		styles:   DefaultStyles(),
		shareURL: ctrl.ShareableURL(),
	}
}

// Init starts the initial load.
func (m Model) Init() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl

	return tea.Batch(textinput.Blink, func() tea.Msg {
		// Failures are rendered by the controller.
		_ = ctrl.Load(ctx)

		return loadedMsg{}
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		m.refresh()

		return m, nil
	case ResultsMsg:
		m.records = msg.Records
		m.status = msg.Status
		m.errMsg = ""
		m.shareURL = m.ctrl.ShareableURL()
		m.refresh()

		return m, nil
	case ErrorMsg:
		m.errMsg = msg.Message
		m.refresh()

		return m, nil
	case loadedMsg:
		m.shareURL = m.ctrl.ShareableURL()

		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab":
		step := 1
		if msg.String() == "shift+tab" {
			step = len(m.inputs) - 1
		}

		m.inputs[m.focus].Blur()
		m.focus = (m.focus + step) % len(m.inputs)

		return m, m.inputs[m.focus].Focus()
	case "esc":
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}

		m.ctrl.Clear()
		m.shareURL = m.ctrl.ShareableURL()

		return m, nil
	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)

		return m, cmd
	}

	before := m.inputs[m.focus].Value()

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	after := m.inputs[m.focus].Value()
	if after == before {
		return m, cmd
	}

	m.ctrl.SetInput(models.FilterFields[m.focus], after)

	return m, cmd
}

// View renders the browser.
func (m Model) View() string {
	boxes := make([]string, 0, len(m.inputs))

	for i, in := range m.inputs {
		style := m.styles.Input
		if i == m.focus {
			style = m.styles.FocusedInput
		}

		boxes = append(boxes, style.Render(in.View()))
	}

	status := m.styles.Status.Render(m.status)
	if m.errMsg != "" {
		status = m.styles.Error.Render(m.errMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("DCR Hub results"),
		lipgloss.JoinHorizontal(lipgloss.Top, boxes...),
		status,
		m.viewport.View(),
		m.styles.Footer.Render(m.shareURL+"\ntab: next filter · esc: clear · ↑/↓ pgup/pgdn: scroll · ctrl+c: quit"),
	)
}

func (m *Model) refresh() {
	if m.errMsg != "" && len(m.records) == 0 {
		m.viewport.SetContent("")

		return
	}

	m.viewport.SetContent(formatter.FormatTable(formatter.ResultsTable(m.records)))
}
