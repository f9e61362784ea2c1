package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeAPI(); err != nil {
		return err
	}
	c.normalizeDownload()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	fields := []struct {
		name  string
		value *string
		def   string
	}{
		{"paths.cache_dir", &c.Paths.CacheDir, defaultCacheDir},
		{"paths.sorted_dir", &c.Paths.SortedDir, defaultSortedDir},
		{"paths.downloads_dir", &c.Paths.DownloadsDir, defaultDownloadsDir},
		{"paths.download_log_dir", &c.Paths.DownloadLogDir, defaultDownloadLogDir},
		{"paths.export_dir", &c.Paths.ExportDir, defaultExportDir},
		{"paths.log_dir", &c.Paths.LogDir, defaultLogDir},
		{"paths.database_path", &c.Paths.DatabasePath, defaultDatabasePath},
		{"paths.story_set_path", &c.Paths.StorySetPath, defaultStorySetPath},
		{"paths.regions_path", &c.Paths.RegionsPath, defaultRegionsPath},
		{"paths.template_dir", &c.Paths.TemplateDir, defaultTemplateDir},
	}
	for _, field := range fields {
		if strings.TrimSpace(*field.value) == "" {
			*field.value = field.def
		}
		expanded, err := expandPath(*field.value)
		if err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
		*field.value = expanded
	}
	return nil
}

func (c *Config) normalizeAPI() error {
	c.API.Key = strings.TrimSpace(c.API.Key)
	if c.API.Key == "" {
		if value, ok := os.LookupEnv("BIBLE_API_KEY"); ok {
			c.API.Key = strings.TrimSpace(value)
		}
	}
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultAPIBaseURL
	}
	if c.API.RequestTimeout <= 0 {
		c.API.RequestTimeout = defaultRequestTimeout
	}
	if c.API.DownloadTimeout <= 0 {
		c.API.DownloadTimeout = defaultDownloadTimeout
	}
	if c.API.PageLimit <= 0 {
		c.API.PageLimit = defaultPageLimit
	}
	return nil
}

func (c *Config) normalizeDownload() {
	if c.Download.Workers <= 0 {
		c.Download.Workers = defaultWorkers
	}
	if len(c.Download.ContentTypes) == 0 {
		c.Download.ContentTypes = []string{"audio", "text", "timing"}
		return
	}
	types := make([]string, 0, len(c.Download.ContentTypes))
	seen := make(map[string]struct{}, len(c.Download.ContentTypes))
	for _, contentType := range c.Download.ContentTypes {
		normalized := strings.ToLower(strings.TrimSpace(contentType))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		types = append(types, normalized)
	}
	if len(types) == 0 {
		types = []string{"audio", "text", "timing"}
	}
	c.Download.ContentTypes = types
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
