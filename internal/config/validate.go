package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStream(); err != nil {
		return err
	}
	if err := c.validateSegmenter(); err != nil {
		return err
	}
	if err := c.validateRetention(); err != nil {
		return err
	}
	if err := c.validateChannel(); err != nil {
		return err
	}
	if err := c.validateShows(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStream() error {
	if c.Stream.URL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/aircheck/config.toml"
		}
		return fmt.Errorf("stream.url is required. Edit %s (create with 'aircheck config init')", defaultPath)
	}
	parsed, err := url.Parse(c.Stream.URL)
	if err != nil || !parsed.IsAbs() {
		return fmt.Errorf("stream.url must be an absolute URL, got %q", c.Stream.URL)
	}
	if c.Stream.CaptureSeconds <= 0 {
		return errors.New("stream.capture_seconds must be positive")
	}
	return nil
}

func (c *Config) validateSegmenter() error {
	if c.Segmenter.MaxPartMiB <= 0 {
		return errors.New("segmenter.max_part_mib must be positive")
	}
	return nil
}

func (c *Config) validateRetention() error {
	if c.Retention.Days <= 0 {
		return errors.New("retention.days must be positive")
	}
	return nil
}

func (c *Config) validateChannel() error {
	if c.Channel.Title == "" {
		return errors.New("channel.title must be set")
	}
	if c.Channel.BaseURL == "" {
		return errors.New("channel.base_url must be set")
	}
	parsed, err := url.Parse(c.Channel.BaseURL)
	if err != nil || !parsed.IsAbs() {
		return fmt.Errorf("channel.base_url must be an absolute URL, got %q", c.Channel.BaseURL)
	}
	switch strings.ToLower(c.Channel.Explicit) {
	case "yes", "no", "true", "false":
	default:
		return fmt.Errorf("channel.explicit must be yes or no, got %q", c.Channel.Explicit)
	}
	return nil
}

func (c *Config) validateShows() error {
	for i, show := range c.Shows {
		if show.Name == "" {
			return fmt.Errorf("show[%d].name must be set", i)
		}
		if show.Weekday < 0 || show.Weekday > 6 {
			return fmt.Errorf("show %q: weekday must be 0 (Monday) through 6 (Sunday), got %d", show.Name, show.Weekday)
		}
		if len(show.Hours) == 0 {
			return fmt.Errorf("show %q: at least one hour must be set", show.Name)
		}
		seen := make(map[int]struct{}, len(show.Hours))
		for _, hour := range show.Hours {
			if hour < 0 || hour > 23 {
				return fmt.Errorf("show %q: hour must be 0 through 23, got %d", show.Name, hour)
			}
			if _, dup := seen[hour]; dup {
				return fmt.Errorf("show %q: hour %d listed twice", show.Name, hour)
			}
			seen[hour] = struct{}{}
		}
		if show.ArchiveURL != "" {
			parsed, err := url.Parse(show.ArchiveURL)
			if err != nil || !parsed.IsAbs() {
				return fmt.Errorf("show %q: archive_url must be an absolute URL", show.Name)
			}
		}
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
