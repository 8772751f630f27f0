package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/johanforsgren/profilexport/internal/logger"
)

var levelColors = map[logger.Level]lipgloss.Color{
	logger.LevelInfo:      lipgloss.Color("#E5E7EB"),
	logger.LevelWarn:      lipgloss.Color("#F59E0B"),
	logger.LevelError:     lipgloss.Color("#EF4444"),
	logger.LevelFileWrite: lipgloss.Color("#10B981"),
}

type LogsViewModel struct {
	width  int
	height int
	offset int
	active bool
	logs   []logger.LogEntry
}

func NewLogsView() *LogsViewModel {
	return &LogsViewModel{}
}

func (m *LogsViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *LogsViewModel) Activate() {
	m.active = true
	m.logs = logger.Entries()
	m.offset = m.maxOffset()
}

func (m *LogsViewModel) Deactivate() {
	m.active = false
	m.offset = 0
}

func (m *LogsViewModel) IsActive() bool {
	return m.active
}

func (m *LogsViewModel) visibleLines() int {
	if m.height < 10 {
		return 1
	}
	return m.height - 8
}

func (m *LogsViewModel) maxOffset() int {
	if n := len(m.logs) - m.visibleLines(); n > 0 {
		return n
	}
	return 0
}

func (m *LogsViewModel) Update(msg tea.Msg) tea.Cmd {
	if !m.active {
		return nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "up", "k":
		m.offset--
	case "down", "j":
		m.offset++
	case "pgup":
		m.offset -= m.visibleLines()
	case "pgdown":
		m.offset += m.visibleLines()
	case "g", "home":
		m.offset = 0
	case "G", "end":
		m.offset = m.maxOffset()
	case "r":
		m.logs = logger.Entries()
		m.offset = m.maxOffset()
	}

	if m.offset < 0 {
		m.offset = 0
	}
	if m.offset > m.maxOffset() {
		m.offset = m.maxOffset()
	}
	return nil
}

func (m *LogsViewModel) View() string {
	if !m.active {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true)

	b.WriteString(titleStyle.Render(fmt.Sprintf("Session Logs (%d entries)", len(m.logs))))
	b.WriteString("\n\n")

	if len(m.logs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Italic(true)
		b.WriteString(emptyStyle.Render("No logs yet"))
	} else {
		end := m.offset + m.visibleLines()
		if end > len(m.logs) {
			end = len(m.logs)
		}

		for _, entry := range m.logs[m.offset:end] {
			color, ok := levelColors[entry.Level]
			if !ok {
				color = levelColors[logger.LevelInfo]
			}
			lineStyle := lipgloss.NewStyle().Foreground(color)
			b.WriteString(lineStyle.Render(fmt.Sprintf("[%s] %s", entry.Timestamp.Format("15:04:05.000"), entry.Line())))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true)

	scrollInfo := ""
	if len(m.logs) > m.visibleLines() {
		scrollInfo = fmt.Sprintf(" | %d-%d of %d", m.offset+1, m.offset+m.visibleLines(), len(m.logs))
	}
	b.WriteString(helpStyle.Render("j/k: Scroll | g/G: Top/Bottom | r: Refresh | Esc: Close" + scrollInfo))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7C3AED")).
		Padding(1, 2)
	if m.width > 4 {
		boxStyle = boxStyle.Width(m.width - 4)
	}

	return boxStyle.Render(b.String())
}
