package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/johanforsgren/profilexport/internal/domain"
	"github.com/johanforsgren/profilexport/internal/logger"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	dangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
)

// Console is the notifier used when no richer UI host is present.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stderr
	}
	return &Console{out: out}
}

func (c *Console) Notify(title, message string, severity domain.Severity) {
	logger.Log("Notify [%s] %s: %s", severity, title, message)
	tag := StyleFor(severity).Render("[" + strings.ToUpper(string(severity)) + "]")
	fmt.Fprintf(c.out, "%s %s: %s\n", tag, title, message)
}

func StyleFor(severity domain.Severity) lipgloss.Style {
	switch severity {
	case domain.SeveritySuccess:
		return successStyle
	case domain.SeverityDanger:
		return dangerStyle
	default:
		return infoStyle
	}
}

// Discard drops notifications after logging them.
type Discard struct{}

func (Discard) Notify(title, message string, severity domain.Severity) {
	logger.Log("Notify [%s] %s: %s", severity, title, message)
}
