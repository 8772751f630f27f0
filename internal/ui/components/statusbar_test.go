package components

import (
	"strings"
	"testing"

	"github.com/johanforsgren/profilexport/internal/domain"
)

func TestStatusBar_Notify(t *testing.T) {
	bar := NewStatusBar()
	bar.SetWidth(80)

	bar.Notify("Export", "Exported 2 profile(s) to /tmp/selected_db_configs.json.", domain.SeveritySuccess)

	if bar.Severity() != domain.SeveritySuccess {
		t.Errorf("expected success severity, got %q", bar.Severity())
	}
	if !strings.Contains(bar.View(), "Export: Exported 2 profile(s)") {
		t.Errorf("unexpected view %q", bar.View())
	}

	bar.ClearMessage()
	if bar.Message() != "" || bar.Severity() != domain.SeverityInfo {
		t.Error("expected cleared status bar")
	}
}

func TestStatusBar_TruncatesLongMessages(t *testing.T) {
	bar := NewStatusBar()
	bar.SetWidth(20)

	bar.Notify("Info", strings.Repeat("x", 100), domain.SeverityInfo)

	if !strings.Contains(bar.View(), "...") {
		t.Error("expected truncated message")
	}
}
