package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Fatal("missing file reported as existing")
	}
	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	if cfg.API.BaseURL != "https://4.dbt.io/api" {
		t.Fatalf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.Download.Workers != 4 {
		t.Fatalf("workers = %d", cfg.Download.Workers)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("log format = %q", cfg.Logging.Format)
	}
}

func TestLoadParsesAndExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
cache_dir = "` + dir + `/cache"

[api]
key = "file-key"
request_timeout = 10

[download]
workers = 2
content_types = ["Audio", "audio", " text "]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("config file not detected")
	}
	if cfg.Paths.CacheDir != filepath.Join(dir, "cache") {
		t.Fatalf("cache dir = %q", cfg.Paths.CacheDir)
	}
	if cfg.API.Key != "file-key" {
		t.Fatalf("api key = %q", cfg.API.Key)
	}
	if len(cfg.Download.ContentTypes) != 2 {
		t.Fatalf("content types not deduplicated: %v", cfg.Download.ContentTypes)
	}
}

func TestLoadAPIKeyFromEnvironment(t *testing.T) {
	t.Setenv("BIBLE_API_KEY", "env-key")

	cfg, _, _, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.Key != "env-key" {
		t.Fatalf("api key = %q, want env fallback", cfg.API.Key)
	}
}

func TestLoadRejectsUnknownContentType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[download]
content_types = ["video"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, _, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "unknown type") {
		t.Fatalf("expected content type validation error, got %v", err)
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	expanded, err := ExpandPath("~/data")
	if err != nil {
		t.Fatal(err)
	}
	if expanded != filepath.Join(home, "data") {
		t.Fatalf("expanded = %q", expanded)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Paths.CacheDir = filepath.Join(dir, "cache")
	cfg.Paths.SortedDir = filepath.Join(dir, "sorted")
	cfg.Paths.DownloadsDir = filepath.Join(dir, "downloads")
	cfg.Paths.DownloadLogDir = filepath.Join(dir, "download_log")
	cfg.Paths.ExportDir = filepath.Join(dir, "exports")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Paths.DatabasePath = filepath.Join(dir, "db", "biblefetch.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	for _, created := range []string{cfg.Paths.CacheDir, cfg.Paths.SortedDir, filepath.Dir(cfg.Paths.DatabasePath)} {
		info, err := os.Stat(created)
		if err != nil || !info.IsDir() {
			t.Fatalf("directory %q not created: %v", created, err)
		}
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[api]") {
		t.Fatal("sample missing api section")
	}

	// The sample must itself load cleanly.
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}
