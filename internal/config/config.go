package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration for the pipeline stages.
type Paths struct {
	CacheDir       string `toml:"cache_dir"`
	SortedDir      string `toml:"sorted_dir"`
	DownloadsDir   string `toml:"downloads_dir"`
	DownloadLogDir string `toml:"download_log_dir"`
	ExportDir      string `toml:"export_dir"`
	LogDir         string `toml:"log_dir"`
	DatabasePath   string `toml:"database_path"`
	StorySetPath   string `toml:"story_set_path"`
	RegionsPath    string `toml:"regions_path"`
	TemplateDir    string `toml:"template_dir"`
}

// API contains configuration for the Bible Brain content API.
type API struct {
	Key             string `toml:"key"`
	BaseURL         string `toml:"base_url"`
	RequestTimeout  int    `toml:"request_timeout"`
	DownloadTimeout int    `toml:"download_timeout"`
	PageLimit       int    `toml:"page_limit"`
}

// Download contains configuration for the chapter download stage.
type Download struct {
	Workers      int      `toml:"workers"`
	ContentTypes []string `toml:"content_types"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for biblefetch.
//
// Configuration sections by subsystem:
//   - Paths: cache, sorted-output, download, and export directories
//   - API: Bible Brain connection settings
//   - Download: worker count and content type selection
//   - Logging: log format, level, and retention
type Config struct {
	Paths    Paths    `toml:"paths"`
	API      API      `toml:"api"`
	Download Download `toml:"download"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/biblefetch/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/biblefetch/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("biblefetch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the pipeline writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Paths.CacheDir,
		c.Paths.SortedDir,
		c.Paths.DownloadsDir,
		c.Paths.DownloadLogDir,
		c.Paths.ExportDir,
		c.Paths.LogDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if dbDir := filepath.Dir(c.Paths.DatabasePath); dbDir != "" {
		if err := os.MkdirAll(dbDir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dbDir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
