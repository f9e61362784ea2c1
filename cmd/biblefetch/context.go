package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"biblefetch/internal/config"
	"biblefetch/internal/logging"
	"biblefetch/internal/services"
	"biblefetch/internal/services/biblebrain"
	"biblefetch/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// loggerValue builds the configured logger once. A config failure falls back
// to a no-op logger so error paths can still render their own output.
func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// apiClient returns a catalog client, failing when no API key is configured.
func (c *commandContext) apiClient() (*biblebrain.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.API.Key) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "cli", "api_client",
			"api key not set; add it to the config or export BIBLE_API_KEY", nil)
	}
	opts := []biblebrain.Option{}
	if cfg.API.BaseURL != "" {
		opts = append(opts, biblebrain.WithBaseURL(cfg.API.BaseURL))
	}
	return biblebrain.NewClient(cfg.API.Key, opts...), nil
}

func (c *commandContext) openStore() (*store.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.Paths.DatabasePath)
}

// acquireLock takes the single-writer lock guarding the output trees. The
// caller must Unlock the returned lock.
func (c *commandContext) acquireLock() (*flock.Flock, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	lock := flock.New(filepath.Join(cfg.Paths.LogDir, "biblefetch.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another biblefetch run holds the lock at %s", lock.Path())
	}
	return lock, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
