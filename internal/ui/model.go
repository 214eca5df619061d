// Package ui implements the interactive cocktail search screen: a text field
// on top, recipe cards below, and a help bar at the bottom.
package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/cocktails/internal/cocktail"
	"github.com/smileynet/cocktails/internal/search"
)

// Title is shown in the header line.
const Title = "🍸 Cocktail Guide"

// headerHeight covers the title line and the bordered input (3 lines).
const headerHeight = 4

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

// Model is the root Bubble Tea model for the search screen.
type Model struct {
	ctrl     search.Controller
	pane     *resultsPane
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	width     int
	height    int
	prevValue string // last text reported to the controller
	spinning  bool
	seen      int // pane version currently in the viewport
}

// NewModel creates a search screen backed by searcher. Options configure the
// underlying search.Controller.
func NewModel(searcher cocktail.Searcher, opts ...search.Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Search cocktails..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 100
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	pane := newResultsPane()
	return Model{
		ctrl:     search.New(searcher, pane, opts...),
		pane:     pane,
		input:    ti,
		spinner:  s,
		viewport: viewport.New(0, 0),
		help:     help.New(),
		keys:     KeyMap(),
		seen:     -1,
	}
}

// Controller returns the search controller state.
func (m Model) Controller() search.Controller { return m.ctrl }

// Value returns the text field contents.
func (m Model) Value() string { return m.input.Value() }

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(m.input.Prompt)-inputBorder.GetHorizontalFrameSize()-1, 1)
		m.viewport.Width = msg.Width
		m.viewport.Height = m.contentHeight()
		m.seen = -1
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.ctrl.State() != search.StateLoading {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd
	}

	// Timer and result messages belong to the controller; cursor blinks to the input.
	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m, ctrlCmd := m.updateController(msg)
	return m, tea.Batch(inputCmd, ctrlCmd)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.updateController(search.SubmitMsg{})

	case key.Matches(msg, m.keys.Random):
		// The controller drops the text itself; keep the field in step without
		// reporting a change, which would supersede the random request.
		m.input.SetValue("")
		m.prevValue = ""
		return m.updateController(search.RandomMsg{})

	case key.Matches(msg, m.keys.Clear):
		m.input.SetValue("")
		return m.syncText()

	case key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m, syncCmd := m.syncText()
	return m, tea.Batch(inputCmd, syncCmd)
}

// syncText reports the field contents to the controller if they changed.
func (m Model) syncText() (Model, tea.Cmd) {
	value := m.input.Value()
	if value == m.prevValue {
		return m, nil
	}
	m.prevValue = value
	return m.updateController(search.TextChangedMsg{Text: value})
}

// updateController forwards msg to the controller and keeps the spinner and
// viewport in step with the resulting state.
func (m Model) updateController(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.ctrl, cmd = m.ctrl.Update(msg)

	cmds := []tea.Cmd{cmd}
	if m.ctrl.State() == search.StateLoading && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	m.refresh()
	return m, tea.Batch(cmds...)
}

// refresh re-renders the pane into the viewport, scrolling to the top when
// the pane content changed.
func (m *Model) refresh() {
	m.viewport.SetContent(m.pane.View(m.viewport.Width, m.input.Value(), m.spinner.View()))
	if m.pane.version != m.seen {
		m.seen = m.pane.version
		m.viewport.GotoTop()
	}
}

// contentHeight returns the usable height for the results viewport.
func (m Model) contentHeight() int {
	h := m.height - headerHeight - helpBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// View renders the header, input, results and help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := headerStyle.Render(Title)
	input := inputBorder.Width(max(m.width-inputBorder.GetHorizontalFrameSize(), 1)).Render(m.input.View())
	helpView := m.help.View(m.keys)

	return lipgloss.JoinVertical(lipgloss.Left, header, input, m.viewport.View(), helpView)
}
