package config

const (
	defaultCacheDir        = "~/.local/share/biblefetch/api-cache"
	defaultSortedDir       = "~/.local/share/biblefetch/sorted"
	defaultDownloadsDir    = "~/.local/share/biblefetch/downloads"
	defaultDownloadLogDir  = "~/.local/share/biblefetch/download_log"
	defaultExportDir       = "~/.local/share/biblefetch/exports"
	defaultLogDir          = "~/.local/share/biblefetch/logs"
	defaultDatabasePath    = "~/.local/share/biblefetch/biblefetch.db"
	defaultStorySetPath    = "~/.config/biblefetch/story-set.conf"
	defaultRegionsPath     = "~/.config/biblefetch/regions.conf"
	defaultTemplateDir     = "~/.config/biblefetch/templates"
	defaultAPIBaseURL      = "https://4.dbt.io/api"
	defaultRequestTimeout  = 30
	defaultDownloadTimeout = 120
	defaultPageLimit       = 50
	defaultWorkers         = 4
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultRetentionDays   = 60
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir:       defaultCacheDir,
			SortedDir:      defaultSortedDir,
			DownloadsDir:   defaultDownloadsDir,
			DownloadLogDir: defaultDownloadLogDir,
			ExportDir:      defaultExportDir,
			LogDir:         defaultLogDir,
			DatabasePath:   defaultDatabasePath,
			StorySetPath:   defaultStorySetPath,
			RegionsPath:    defaultRegionsPath,
			TemplateDir:    defaultTemplateDir,
		},
		API: API{
			BaseURL:         defaultAPIBaseURL,
			RequestTimeout:  defaultRequestTimeout,
			DownloadTimeout: defaultDownloadTimeout,
			PageLimit:       defaultPageLimit,
		},
		Download: Download{
			Workers:      defaultWorkers,
			ContentTypes: []string{"audio", "text", "timing"},
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultRetentionDays,
		},
	}
}
