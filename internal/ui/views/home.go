package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HomeViewModel is shown while no overlay is open. It carries the spinner
// that runs while a fetch is in flight.
type HomeViewModel struct {
	spinner  spinner.Model
	width    int
	height   int
	endpoint string
	outDir   string
	loading  bool
}

func NewHomeView(endpoint, outDir string) *HomeViewModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))

	return &HomeViewModel{
		spinner:  s,
		endpoint: endpoint,
		outDir:   outDir,
	}
}

func (m *HomeViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// StartLoading returns the first spinner tick.
func (m *HomeViewModel) StartLoading() tea.Cmd {
	m.loading = true
	return m.spinner.Tick
}

func (m *HomeViewModel) StopLoading() {
	m.loading = false
}

func (m *HomeViewModel) IsLoading() bool {
	return m.loading
}

func (m *HomeViewModel) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); ok && !m.loading {
		return nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

func (m *HomeViewModel) View() string {
	var b strings.Builder

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)

	b.WriteString(labelStyle.Render("Source: ") + valueStyle.Render(m.endpoint))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Output: ") + valueStyle.Render(m.outDir))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(fmt.Sprintf("%s Retrieving saved profiles...", m.spinner.View()))
	} else {
		b.WriteString(mutedStyle.Render("Press e to choose profiles to export, : for commands."))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
