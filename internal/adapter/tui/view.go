package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/seqcls/verdict/internal/domain/entity"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	userStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63"))
)

// View renders the whole screen
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Verdict chat"))
	b.WriteString(mutedStyle.Render("  API: " + m.backendURL))
	if model := m.session.Status().Model; model != "" {
		b.WriteString(mutedStyle.Render("  Model: " + model))
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(inputBoxStyle.Width(m.width - 2).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("enter send • ctrl+r refresh status • ctrl+l clear • ctrl+d details • esc quit"))

	return b.String()
}

func (m Model) renderStatus() string {
	if m.notice != "" {
		return noticeStyle.Render(m.notice)
	}

	status := m.session.Status()
	switch {
	case !status.Checked:
		return mutedStyle.Render("Checking backend...")
	case status.Healthy:
		return okStyle.Render(status.Summary)
	default:
		return failStyle.Render(status.Summary)
	}
}

func (m Model) renderTurns() string {
	var b strings.Builder
	for _, turn := range m.session.Turns() {
		b.WriteString(m.renderTurn(turn))
		b.WriteString("\n")
	}
	if m.session.InFlight() {
		b.WriteString(mutedStyle.Render("Thinking..."))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderTurn(turn entity.Turn) string {
	if turn.IsUser() {
		return userStyle.Render("You: ") + turn.Content + "\n"
	}

	content := turn.Content
	if m.showDetails && turn.Detail != nil {
		content += "\n\n" + detailBlock(turn.Detail)
	}
	return m.renderMarkdown(content)
}

func (m Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content + "\n"
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content + "\n"
	}
	return rendered
}

func detailBlock(detail any) string {
	if s, ok := detail.(string); ok {
		return "```\n" + s + "\n```"
	}
	raw, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return fmt.Sprintf("```\n%v\n```", detail)
	}
	return "```json\n" + string(raw) + "\n```"
}
