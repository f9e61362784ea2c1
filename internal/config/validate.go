package config

import (
	"errors"
	"fmt"
)

var validContentTypes = map[string]struct{}{
	"audio":  {},
	"text":   {},
	"timing": {},
}

// Validate ensures the configuration is usable. The API key is deliberately
// not required here: sorting runs entirely from the local cache, and the
// commands that do reach the API report the missing key themselves.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url must be set")
	}
	if err := ensurePositiveMap(map[string]int{
		"api.request_timeout":  c.API.RequestTimeout,
		"api.download_timeout": c.API.DownloadTimeout,
		"api.page_limit":       c.API.PageLimit,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDownload() error {
	if c.Download.Workers <= 0 {
		return errors.New("download.workers must be positive")
	}
	for _, contentType := range c.Download.ContentTypes {
		if _, ok := validContentTypes[contentType]; !ok {
			return fmt.Errorf("download.content_types: unknown type %q (expected audio, text, or timing)", contentType)
		}
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
