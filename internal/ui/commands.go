package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/johanforsgren/profilexport/internal/domain"
	"github.com/johanforsgren/profilexport/internal/logger"
)

type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandQuit
	CommandOpen
	CommandExport
	CommandSelectAll
	CommandSelectNone
	CommandCancel
	CommandLogs
	CommandHelp
)

type Command struct {
	Type CommandType
	Name string
	Args []string
}

func ParseCommand(input string) Command {
	input = strings.TrimSpace(input)

	if !strings.HasPrefix(input, ":") {
		return Command{Type: CommandUnknown}
	}

	parts := strings.Fields(strings.TrimPrefix(input, ":"))
	if len(parts) == 0 {
		return Command{Type: CommandUnknown}
	}

	name := parts[0]
	args := parts[1:]

	var t CommandType
	switch name {
	case "q", "quit":
		t = CommandQuit
	case "o", "open", "reload":
		t = CommandOpen
	case "e", "export":
		t = CommandExport
	case "all":
		t = CommandSelectAll
	case "none":
		t = CommandSelectNone
	case "c", "cancel":
		t = CommandCancel
	case "l", "logs":
		t = CommandLogs
	case "h", "help":
		t = CommandHelp
	default:
		t = CommandUnknown
	}
	return Command{Type: t, Name: name, Args: args}
}

type KeyHandler func(m Model) (Model, tea.Cmd)

type KeyBinding struct {
	Binding     key.Binding
	AvailableIn []ViewState
	Handler     KeyHandler
}

func (b *KeyBinding) availableIn(state ViewState) bool {
	for _, s := range b.AvailableIn {
		if s == state {
			return true
		}
	}
	return false
}

type CommandRegistry struct {
	keyBindings []*KeyBinding
	commands    map[CommandType]KeyHandler
}

func NewCommandRegistry() *CommandRegistry {
	r := &CommandRegistry{commands: make(map[CommandType]KeyHandler)}
	r.registerKeyBindings()
	r.registerCommands()
	return r
}

func (r *CommandRegistry) bind(keys []string, help, desc string, handler KeyHandler, states ...ViewState) {
	r.keyBindings = append(r.keyBindings, &KeyBinding{
		Binding:     key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc)),
		AvailableIn: states,
		Handler:     handler,
	})
}

func (r *CommandRegistry) registerKeyBindings() {
	r.bind([]string{"ctrl+c"}, "ctrl+c", "Quit", handleForceQuitKey, ViewHome, ViewSelection)
	r.bind([]string{"e"}, "e", "Choose profiles", handleOpenKey, ViewHome)
	r.bind([]string{" ", "x"}, "space", "Toggle", handleToggleKey, ViewSelection)
	r.bind([]string{"a"}, "a", "Select all", handleSelectAllKey, ViewSelection)
	r.bind([]string{"n"}, "n", "Select none", handleSelectNoneKey, ViewSelection)
	r.bind([]string{"enter"}, "enter", "Export", handleExportKey, ViewSelection)
	r.bind([]string{"r"}, "r", "Reload", handleOpenKey, ViewSelection)
	r.bind([]string{"esc"}, "esc", "Cancel", handleCancelKey, ViewSelection)
	r.bind([]string{"L"}, "L", "Logs", handleLogsKey, ViewHome, ViewSelection)
	r.bind([]string{":"}, ":", "Command", handleCommandBarKey, ViewHome, ViewSelection)
	r.bind([]string{"q"}, "q", "Quit", handleQuitKey, ViewHome, ViewSelection)
}

func (r *CommandRegistry) registerCommands() {
	r.commands[CommandQuit] = handleForceQuitKey
	r.commands[CommandOpen] = handleOpenKey
	r.commands[CommandExport] = handleExportCommand
	r.commands[CommandSelectAll] = handleSelectAllKey
	r.commands[CommandSelectNone] = handleSelectNoneKey
	r.commands[CommandCancel] = handleCancelKey
	r.commands[CommandLogs] = handleLogsKey
	r.commands[CommandHelp] = handleHelpCommand
}

func (r *CommandRegistry) HandleKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	state := m.state()
	for _, binding := range r.keyBindings {
		if binding.availableIn(state) && key.Matches(msg, binding.Binding) {
			next, cmd := binding.Handler(m)
			return next, cmd, true
		}
	}
	return m, nil, false
}

func (r *CommandRegistry) ExecuteCommand(m Model, cmd Command) (Model, tea.Cmd) {
	handler, ok := r.commands[cmd.Type]
	if !ok {
		m.statusBar.Notify("Command", fmt.Sprintf("Unknown command: %s", cmd.Name), domain.SeverityDanger)
		return m, nil
	}
	return handler(m)
}

// GetContextualShortcuts lists the bindings for state as "<key> description".
func (r *CommandRegistry) GetContextualShortcuts(state ViewState) []string {
	var shortcuts []string
	for _, binding := range r.keyBindings {
		if !binding.availableIn(state) {
			continue
		}
		help := binding.Binding.Help()
		shortcuts = append(shortcuts, fmt.Sprintf("<%s> %s", help.Key, help.Desc))
	}
	return shortcuts
}

func (m Model) handleCommand() (Model, tea.Cmd) {
	input := m.commandBar.Submit()
	cmd := ParseCommand(input)
	if cmd.Name == "" {
		return m, nil
	}

	logger.Log("UI: Executing command: %s %v", cmd.Name, cmd.Args)
	return m.commandRegistry.ExecuteCommand(m, cmd)
}

func handleForceQuitKey(m Model) (Model, tea.Cmd) {
	return m, tea.Quit
}

func handleQuitKey(m Model) (Model, tea.Cmd) {
	if m.state() == ViewSelection {
		m.selector.Dismiss()
		return m, nil
	}
	return m, tea.Quit
}

func handleOpenKey(m Model) (Model, tea.Cmd) {
	return m.requestProfiles()
}

func handleToggleKey(m Model) (Model, tea.Cmd) {
	if index, ok := m.selectionView.Current(); ok {
		m.session.Toggle(index)
	}
	return m, nil
}

func handleSelectAllKey(m Model) (Model, tea.Cmd) {
	if m.state() == ViewSelection {
		m.session.SetAll(true)
	}
	return m, nil
}

func handleSelectNoneKey(m Model) (Model, tea.Cmd) {
	if m.state() == ViewSelection {
		m.session.SetAll(false)
	}
	return m, nil
}

func handleExportKey(m Model) (Model, tea.Cmd) {
	return m.exportSelected()
}

// handleExportCommand exports when the selection is open and opens it
// otherwise.
func handleExportCommand(m Model) (Model, tea.Cmd) {
	if m.state() != ViewSelection {
		return m.requestProfiles()
	}
	return m.exportSelected()
}

func handleCancelKey(m Model) (Model, tea.Cmd) {
	m.selector.Dismiss()
	return m, nil
}

func handleLogsKey(m Model) (Model, tea.Cmd) {
	m.logsView.Activate()
	return m, nil
}

func handleCommandBarKey(m Model) (Model, tea.Cmd) {
	m.commandBar.Activate()
	return m, nil
}

func handleHelpCommand(m Model) (Model, tea.Cmd) {
	m.statusBar.Notify("Help", ":open  :export  :all  :none  :cancel  :logs  :q", domain.SeverityInfo)
	return m, nil
}
