// Package tui is the terminal front end of the chat client.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/seqcls/verdict/internal/chat"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// header + status + input + help
	chromeHeight = 6
	minWrapWidth = 20
)

// Model is the bubbletea model wrapping a chat session
type Model struct {
	session       *chat.Session
	backendURL    string
	markdownStyle string

	input    textinput.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer

	width       int
	height      int
	showDetails bool
	notice      string
}

// MarkdownStyle picks the glamour style for the terminal background. It
// queries the terminal, so call it before the program starts reading input.
func MarkdownStyle() string {
	if lipgloss.HasDarkBackground() {
		return styles.DarkStyle
	}
	return styles.LightStyle
}

// New creates the UI for session. backendURL is shown in the status line and
// markdownStyle names a glamour standard style.
func New(session *chat.Session, backendURL, markdownStyle string) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask a yes/no question..."
	ti.CharLimit = 2000
	ti.Focus()

	m := Model{
		session:       session,
		backendURL:    backendURL,
		markdownStyle: markdownStyle,
		input:         ti,
		viewport:      viewport.New(defaultWidth, defaultHeight-chromeHeight),
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

// Init starts the cursor and the initial health check
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, checkStatusCmd(m.session))
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	wrap := width - 4
	if wrap < minWrapWidth {
		wrap = minWrapWidth
	}

	m.input.Width = wrap
	m.viewport.Width = width
	m.viewport.Height = height - chromeHeight
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.markdownStyle),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		renderer = nil
	}
	m.renderer = renderer
	m.refreshContent()
}

func (m *Model) refreshContent() {
	m.viewport.SetContent(m.renderTurns())
	m.viewport.GotoBottom()
}
