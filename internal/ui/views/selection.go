package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/johanforsgren/profilexport/internal/domain"
	"github.com/johanforsgren/profilexport/internal/logger"
)

// ProfileItem is one checkbox row. The checked state is read from the
// session at render time so the list never holds a stale copy.
type ProfileItem struct {
	row     domain.Row
	checked func(int) bool
}

func (i ProfileItem) FilterValue() string { return i.row.Label }
func (i ProfileItem) Title() string {
	box := "[ ]"
	if i.checked != nil && i.checked(i.row.Index) {
		box = "[x]"
	}
	return box + " " + i.row.Label
}
func (i ProfileItem) Description() string { return "" }
func (i ProfileItem) Index() int          { return i.row.Index }

// SelectionViewModel is the overlay that lists the fetched profiles with a
// checkbox each. It implements domain.Surface.
type SelectionViewModel struct {
	list    list.Model
	checked func(int) bool
	rows    []domain.Row
	open    bool
	width   int
	height  int
}

func NewSelectionView(checked func(int) bool) *SelectionViewModel {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Select profiles to export"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return &SelectionViewModel{
		list:    l,
		checked: checked,
	}
}

func (m *SelectionViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	listHeight := height - 14
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(width-10, listHeight)
}

func (m *SelectionViewModel) Open(rows []domain.Row) {
	m.rows = rows
	items := make([]list.Item, len(rows))
	for i, row := range rows {
		items[i] = ProfileItem{row: row, checked: m.checked}
	}
	m.list.SetItems(items)
	m.list.Select(0)
	m.open = true
	logger.Log("Selection opened with %d profile(s)", len(rows))
}

func (m *SelectionViewModel) Close() {
	m.open = false
	m.rows = nil
	m.list.SetItems([]list.Item{})
}

func (m *SelectionViewModel) IsOpen() bool {
	return m.open
}

func (m *SelectionViewModel) Rows() []domain.Row {
	return m.rows
}

// Current returns the snapshot index of the highlighted row.
func (m *SelectionViewModel) Current() (int, bool) {
	item, ok := m.list.SelectedItem().(ProfileItem)
	if !ok {
		return 0, false
	}
	return item.Index(), true
}

func (m *SelectionViewModel) Update(msg tea.Msg) tea.Cmd {
	if !m.open {
		return nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return cmd
}

func (m *SelectionViewModel) View() string {
	if !m.open {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n\n")

	count := 0
	for _, row := range m.rows {
		if m.checked != nil && m.checked(row.Index) {
			count++
		}
	}

	countStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true)
	b.WriteString(countStyle.Render(fmt.Sprintf("%d of %d selected", count, len(m.rows))))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true)
	b.WriteString(helpStyle.Render("j/k: Move | Space: Toggle | a/n: All/None | Enter: Export | Esc: Cancel"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7C3AED")).
		Padding(1, 2)
	if m.width > 4 {
		boxStyle = boxStyle.Width(m.width - 4)
	}

	return boxStyle.Render(b.String())
}
