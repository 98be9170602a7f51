package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/seqcls/verdict/internal/chat"
)

// Update applies a message to the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case statusMsg:
		return m, nil

	case answeredMsg:
		m.refreshContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyCtrlR:
		m.notice = ""
		return m, checkStatusCmd(m.session)

	case tea.KeyCtrlL:
		m.session.Clear()
		m.notice = ""
		m.refreshContent()
		return m, nil

	case tea.KeyCtrlD:
		m.showDetails = !m.showDetails
		m.refreshContent()
		return m, nil

	case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	err := m.session.Submit(m.input.Value())
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		return m, nil
	case errors.Is(err, chat.ErrBusy):
		m.notice = "Still waiting for the previous answer."
		return m, nil
	case err != nil:
		m.notice = err.Error()
		return m, nil
	}

	m.notice = ""
	m.input.Reset()
	m.refreshContent()

	req, ok := m.session.NextRequest()
	if !ok {
		return m, nil
	}
	return m, answerCmd(m.session, req)
}
