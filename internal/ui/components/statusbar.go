package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/johanforsgren/profilexport/internal/domain"
	"github.com/johanforsgren/profilexport/internal/logger"
)

// StatusBarModel is the notification surface of the TUI.
type StatusBarModel struct {
	width    int
	title    string
	message  string
	severity domain.Severity
}

func NewStatusBar() *StatusBarModel {
	return &StatusBarModel{severity: domain.SeverityInfo}
}

func (m *StatusBarModel) SetWidth(width int) {
	m.width = width
}

func (m *StatusBarModel) Notify(title, message string, severity domain.Severity) {
	logger.Log("Notify [%s] %s: %s", severity, title, message)
	m.title = title
	m.message = message
	m.severity = severity
}

func (m *StatusBarModel) ClearMessage() {
	m.title = ""
	m.message = ""
	m.severity = domain.SeverityInfo
}

func (m *StatusBarModel) Message() string {
	return m.message
}

func (m *StatusBarModel) Severity() domain.Severity {
	return m.severity
}

func (m *StatusBarModel) View() string {
	content := " " + m.message
	if m.title != "" && m.message != "" {
		content = " " + m.title + ": " + m.message
	}

	if m.width > 3 && lipgloss.Width(content) > m.width {
		content = content[:m.width-3] + "..."
	} else if lipgloss.Width(content) < m.width {
		content += strings.Repeat(" ", m.width-lipgloss.Width(content))
	}

	bgColor := lipgloss.Color("#374151")
	switch m.severity {
	case domain.SeverityDanger:
		bgColor = lipgloss.Color("#991B1B")
	case domain.SeveritySuccess:
		bgColor = lipgloss.Color("#065F46")
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F9FAFB")).
		Background(bgColor).
		Width(m.width)

	return style.Render(content)
}
