package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TopBarModel struct {
	width       int
	server      string
	authMode    string
	profiles    int
	selected    int
	generation  string
	currentView string
	shortcuts   []string
}

var (
	titleStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleOrangeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	valueWhiteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	shortcutBlueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	descGrayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
)

const (
	contextRows     = 4
	contextColWidth = 50
	colMargin       = 4
)

func NewTopBar() *TopBarModel {
	return &TopBarModel{}
}

func (m *TopBarModel) SetWidth(width int) {
	m.width = width
}

func (m *TopBarModel) SetServer(server string, authenticated bool) {
	m.server = server
	m.authMode = "anonymous"
	if authenticated {
		m.authMode = "bearer token"
	}
}

// SetSnapshot records the size of the held snapshot and how many rows are
// checked. An empty generation means nothing has been fetched yet.
func (m *TopBarModel) SetSnapshot(generation string, profiles, selected int) {
	m.generation = generation
	m.profiles = profiles
	m.selected = selected
}

func (m *TopBarModel) SetView(view string) {
	m.currentView = view
}

func (m *TopBarModel) SetShortcuts(shortcuts []string) {
	m.shortcuts = shortcuts
}

func (m *TopBarModel) View() string {
	lines := []string{titleOrangeStyle.Render("profilexport"), ""}

	context := m.buildContextInfo()
	col1, col2, col1Width := m.buildShortcutsDisplay()

	for i := 0; i < contextRows; i++ {
		var ctx, sc1, sc2 string
		if i < len(context) {
			ctx = context[i]
		}
		if i < len(col1) {
			sc1 = col1[i]
		}
		if i < len(col2) {
			sc2 = col2[i]
		}

		padding := contextColWidth - lipgloss.Width(ctx)
		if padding < 1 {
			padding = 1
		}
		line := ctx + strings.Repeat(" ", padding) + sc1

		if sc2 != "" {
			gap := col1Width - lipgloss.Width(sc1) + colMargin
			if gap < colMargin {
				gap = colMargin
			}
			line += strings.Repeat(" ", gap) + sc2
		}

		lines = append(lines, line)
	}

	return titleStyle.Width(m.width).Render(strings.Join(lines, "\n"))
}

func (m *TopBarModel) buildContextInfo() []string {
	server := m.server
	if server == "" {
		server = "not configured"
	}
	if len(server) > 40 {
		server = server[:37] + "..."
	}

	snapshot := "not loaded"
	if m.generation != "" {
		snapshot = fmt.Sprintf("%d profile(s), %d selected", m.profiles, m.selected)
	}

	view := m.currentView
	if view == "" {
		view = "Home"
	}

	return []string{
		titleOrangeStyle.Render("Server: ") + valueWhiteStyle.Render(server),
		titleOrangeStyle.Render("Auth: ") + valueWhiteStyle.Render(m.authMode),
		titleOrangeStyle.Render("Snapshot: ") + valueWhiteStyle.Render(snapshot),
		titleOrangeStyle.Render("View: ") + valueWhiteStyle.Render(view),
	}
}

func (m *TopBarModel) buildShortcutsDisplay() ([]string, []string, int) {
	var formatted []string
	maxWidth := 0

	for _, shortcut := range m.shortcuts {
		parts := strings.SplitN(shortcut, ">", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimPrefix(parts[0], "<")
		desc := strings.TrimSpace(parts[1])

		entry := shortcutBlueStyle.Render("<"+key+">") + " " + descGrayStyle.Render(desc)
		formatted = append(formatted, entry)

		if w := lipgloss.Width(entry); w > maxWidth {
			maxWidth = w
		}
	}

	if len(formatted) <= contextRows {
		return formatted, nil, maxWidth
	}
	return formatted[:contextRows], formatted[contextRows:], maxWidth
}
