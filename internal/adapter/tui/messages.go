package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/seqcls/verdict/internal/chat"
)

// statusMsg reports that a health check finished
type statusMsg struct {
	status chat.Status
}

// answeredMsg reports that a handed-out request was resolved
type answeredMsg struct{}

func checkStatusCmd(session *chat.Session) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{status: session.Refresh(context.Background())}
	}
}

func answerCmd(session *chat.Session, req chat.Request) tea.Cmd {
	return func() tea.Msg {
		session.Complete(context.Background(), req)
		return answeredMsg{}
	}
}
