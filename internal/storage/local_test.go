package storage

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFileSinkSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	sink, err := NewFileSink(dir)
	if err != nil {
		t.Fatalf("NewFileSink failed: %v", err)
	}

	path, err := sink.Save(context.Background(), "selected_db_configs.json", []byte("[]\n"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if path != filepath.Join(dir, "selected_db_configs.json") {
		t.Errorf("unexpected path %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read artifact: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("unexpected content %q", data)
	}

	if runtime.GOOS != "windows" {
		info, _ := os.Stat(path)
		if info.Mode().Perm() != 0600 {
			t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
		}
	}
}

func TestFileSinkOverwrites(t *testing.T) {
	sink, err := NewFileSink(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileSink failed: %v", err)
	}

	sink.Save(context.Background(), "out.json", []byte("first"))
	path, err := sink.Save(context.Background(), "out.json", []byte("second"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("expected overwrite, got %q", data)
	}

	entries, _ := os.ReadDir(sink.Dir())
	if len(entries) != 1 {
		t.Errorf("expected no leftover temp files, found %d entries", len(entries))
	}
}

func TestFileSinkRejectsPaths(t *testing.T) {
	sink, err := NewFileSink(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileSink failed: %v", err)
	}

	for _, name := range []string{"", "../escape.json", "sub/dir.json"} {
		if _, err := sink.Save(context.Background(), name, []byte("x")); err == nil {
			t.Errorf("expected error for name %q", name)
		}
	}
}

func TestFileSinkHonoursCancelledContext(t *testing.T) {
	sink, err := NewFileSink(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileSink failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sink.Save(ctx, "out.json", []byte("x")); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestNewFileSinkDefaultsToWorkingDirectory(t *testing.T) {
	sink, err := NewFileSink("")
	if err != nil {
		t.Fatalf("NewFileSink failed: %v", err)
	}

	wd, _ := os.Getwd()
	if sink.Dir() != wd {
		t.Errorf("expected %s, got %s", wd, sink.Dir())
	}
}
