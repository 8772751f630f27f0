package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/johanforsgren/profilexport/internal/domain"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  CommandType
		args  int
	}{
		{":q", CommandQuit, 0},
		{":quit", CommandQuit, 0},
		{":open", CommandOpen, 0},
		{":reload", CommandOpen, 0},
		{" :export ", CommandExport, 0},
		{":all", CommandSelectAll, 0},
		{":none", CommandSelectNone, 0},
		{":cancel", CommandCancel, 0},
		{":logs", CommandLogs, 0},
		{":help me", CommandHelp, 1},
		{":bogus", CommandUnknown, 0},
		{"export", CommandUnknown, 0},
		{":", CommandUnknown, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd := ParseCommand(tt.input)
			if cmd.Type != tt.want {
				t.Errorf("ParseCommand(%q).Type = %v, want %v", tt.input, cmd.Type, tt.want)
			}
			if len(cmd.Args) != tt.args {
				t.Errorf("ParseCommand(%q) args = %v", tt.input, cmd.Args)
			}
		})
	}
}

func TestKeyBindingsRegistered(t *testing.T) {
	registry := NewCommandRegistry()

	testCases := []struct {
		key         string
		description string
		viewState   ViewState
	}{
		{"e", "Choose profiles", ViewHome},
		{" ", "Toggle", ViewSelection},
		{"a", "Select all", ViewSelection},
		{"n", "Select none", ViewSelection},
		{"enter", "Export", ViewSelection},
		{"esc", "Cancel", ViewSelection},
		{"L", "Logs", ViewHome},
	}

	for _, tc := range testCases {
		found := false
		for _, binding := range registry.keyBindings {
			if !binding.availableIn(tc.viewState) || binding.Binding.Help().Desc != tc.description {
				continue
			}
			for _, k := range binding.Binding.Keys() {
				if k == tc.key {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("expected key binding for %q (%s) in view %v", tc.key, tc.description, tc.viewState)
		}
	}
}

func TestSelectionKeysInactiveOnHome(t *testing.T) {
	registry := NewCommandRegistry()
	m := createTestModel(t, &mockFetcher{}, &mockSink{})

	_, _, handled := registry.HandleKey(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if handled {
		t.Error("select all must not be bound outside the selection overlay")
	}
}

func TestContextualShortcuts(t *testing.T) {
	registry := NewCommandRegistry()

	home := strings.Join(registry.GetContextualShortcuts(ViewHome), "\n")
	if !strings.Contains(home, "<e> Choose profiles") {
		t.Errorf("expected open shortcut on home, got:\n%s", home)
	}
	if strings.Contains(home, "Export") {
		t.Error("export shortcut should only show in the overlay")
	}

	overlay := strings.Join(registry.GetContextualShortcuts(ViewSelection), "\n")
	if !strings.Contains(overlay, "<space> Toggle") {
		t.Errorf("expected toggle shortcut in overlay, got:\n%s", overlay)
	}
}

func typeCommand(t *testing.T, m Model, command string) Model {
	t.Helper()
	m = press(t, m, ":")
	if !m.commandBar.IsActive() {
		t.Fatal("expected command bar to open")
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(strings.TrimPrefix(command, ":"))})
	m = next.(Model)
	return press(t, m, "enter")
}

func TestCommandBar_SelectAllAndExport(t *testing.T) {
	sink := &mockSink{}
	m := openSelection(t, &mockFetcher{profiles: profiles(t, twoProfiles)}, sink)

	m = typeCommand(t, m, ":all")
	if len(m.session.Checked()) != 2 {
		t.Fatalf("expected :all to check every profile, got %v", m.session.Checked())
	}

	m = typeCommand(t, m, ":export")
	if _, ok := sink.saved[domain.ArtifactFileName]; !ok {
		t.Error("expected :export to save the artifact")
	}
	if m.commandBar.IsActive() {
		t.Error("command bar should close after submitting")
	}
	if got := m.commandBar.History(); len(got) != 2 {
		t.Errorf("expected 2 commands in history, got %v", got)
	}
}

func TestCommandBar_UnknownCommand(t *testing.T) {
	m := createTestModel(t, &mockFetcher{}, &mockSink{})

	m = typeCommand(t, m, ":frobnicate")

	if m.statusBar.Severity() != domain.SeverityDanger {
		t.Error("expected danger notification for unknown command")
	}
	if !strings.Contains(m.statusBar.Message(), "frobnicate") {
		t.Errorf("unexpected status %q", m.statusBar.Message())
	}
}

func TestCommandBar_ExportFromHomeOpensSelection(t *testing.T) {
	m := createTestModel(t, &mockFetcher{}, &mockSink{})

	m = typeCommand(t, m, ":export")

	if m.inFlight != 1 {
		t.Errorf("expected :export on home to fetch profiles, got %d in flight", m.inFlight)
	}
}
