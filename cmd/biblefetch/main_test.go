package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"biblefetch/internal/catalog"
	"biblefetch/internal/config"
)

func writeTestConfig(t *testing.T, base string) string {
	t.Helper()

	cfg := config.Default()
	cfg.API.Key = "test-key"
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.Paths.SortedDir = filepath.Join(base, "sorted")
	cfg.Paths.DownloadsDir = filepath.Join(base, "downloads")
	cfg.Paths.DownloadLogDir = filepath.Join(base, "download_log")
	cfg.Paths.ExportDir = filepath.Join(base, "export")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.DatabasePath = filepath.Join(base, "biblefetch.db")
	cfg.Paths.StorySetPath = filepath.Join(base, "story-set.conf")
	cfg.Paths.RegionsPath = filepath.Join(base, "regions.conf")
	cfg.Paths.TemplateDir = filepath.Join(base, "templates")

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// writeCacheFixture seeds the catalog cache with one English translation
// whose audio fileset has timing data.
func writeCacheFixture(t *testing.T, cacheDir string) {
	t.Helper()

	records := []catalog.Record{{
		ISO: "eng", Language: "English", Abbr: "ENGWEB", Name: "World English Bible",
		Filesets: map[string][]catalog.FilesetDescriptor{
			"dbp-prod": {
				{ID: "ENGWEBN1DA", Type: "audio", Size: "NT"},
				{ID: "ENGWEBN_ET", Type: "text_plain", Size: "NT"},
			},
		},
	}}
	if err := catalog.WritePage(cacheDir, 1, records); err != nil {
		t.Fatal(err)
	}

	samplesDir := filepath.Join(cacheDir, "samples")
	if err := os.MkdirAll(samplesDir, 0o755); err != nil {
		t.Fatal(err)
	}
	timing, err := json.Marshal([]map[string]string{{"fileset_id": "ENGWEBN1DA"}})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(samplesDir, "audio_timestamps_filesets.json"), timing, 0o644); err != nil {
		t.Fatal(err)
	}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "biblefetch ") {
		t.Fatalf("output = %q", out)
	}
}

func TestConfigNewCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCLI(t, "", "config", "new", "--path", target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("output = %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	if _, err := runCLI(t, "", "config", "new", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
	if _, err := runCLI(t, "", "config", "new", "--path", target, "--overwrite"); err != nil {
		t.Fatal(err)
	}
}

func TestSortAndLanguagesCommands(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	writeCacheFixture(t, filepath.Join(base, "cache"))

	out, err := runCLI(t, configPath, "sort")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Languages") || !strings.Contains(out, "Syncable pairs") {
		t.Fatalf("sort output = %q", out)
	}

	metaPath := filepath.Join(base, "sorted", "eng", "ENGWEBN1DA", "metadata.json")
	if _, err := os.Stat(metaPath); err != nil {
		t.Fatalf("sorted metadata not written: %v", err)
	}

	out, err = runCLI(t, configPath, "languages", "--book-set", "TIMING_NT")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "eng") || !strings.Contains(out, "English") {
		t.Fatalf("languages output = %q", out)
	}

	out, err = runCLI(t, configPath, "languages", "--counts")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "with-timecode") {
		t.Fatalf("counts output = %q", out)
	}
}

func TestDownloadCommandValidation(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	if _, err := runCLI(t, configPath, "download", "eng"); err == nil {
		t.Fatal("expected error without --books")
	}
	if _, err := runCLI(t, configPath, "download", "--book-set", "NOPE", "--books", "GEN"); err == nil {
		t.Fatal("expected error for invalid book set")
	}
	if _, err := runCLI(t, configPath, "download", "--books", "GEN"); err == nil {
		t.Fatal("expected error without language or book set")
	}
}

func TestParseContentTypes(t *testing.T) {
	types, err := parseContentTypes("Audio, text")
	if err != nil {
		t.Fatal(err)
	}
	if len(types) != 2 || types[0] != "audio" || types[1] != "text" {
		t.Fatalf("types = %v", types)
	}
	if _, err := parseContentTypes("video"); err == nil {
		t.Fatal("expected error for invalid content type")
	}
}
