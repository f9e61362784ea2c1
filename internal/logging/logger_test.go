package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"biblefetch/internal/config"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Format: "xml"})
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = dir
	cfg.Logging.Format = "console"
	cfg.Logging.Level = "info"

	logger, err := NewFromConfig(&cfg)
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("sort complete", String(FieldLanguage, "eng"), Int("filesets", 3))

	data, err := os.ReadFile(filepath.Join(dir, "biblefetch.log"))
	if err != nil {
		t.Fatal(err)
	}
	line := string(data)
	if !strings.Contains(line, "sort complete") {
		t.Fatalf("log line missing message: %q", line)
	}
	if !strings.Contains(line, "language=eng") || !strings.Contains(line, "filesets=3") {
		t.Fatalf("log line missing attrs: %q", line)
	}
}

func TestComponentPrefixesConsoleOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = dir

	base, err := NewFromConfig(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	logger := NewComponentLogger(base, "downloader")
	logger.Info("chapter saved")

	data, err := os.ReadFile(filepath.Join(dir, "biblefetch.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "downloader: chapter saved") {
		t.Fatalf("component prefix missing: %q", data)
	}
}

func TestNewNopDiscards(t *testing.T) {
	t.Parallel()

	logger := NewNop()
	if logger.Enabled(nil, slog.LevelError) { //nolint:staticcheck
		t.Fatal("nop logger should be disabled at every level")
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.log")
	newPath := filepath.Join(dir, "new.log")
	if err := os.WriteFile(oldPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(newPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	stale := time.Now().AddDate(0, 0, -90)
	if err := os.Chtimes(oldPath, stale, stale); err != nil {
		t.Fatal(err)
	}

	CleanupOldLogs(NewNop(), 30, RetentionTarget{Dir: dir, Pattern: "*.log"})

	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Fatal("stale log not pruned")
	}
	if _, err := os.Stat(newPath); err != nil {
		t.Fatal("fresh log should survive pruning")
	}
}
