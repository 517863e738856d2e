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
	c.normalizeStream()
	c.normalizeChannel()
	c.normalizeShows()
	c.normalizePublish()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeStream() {
	c.Stream.URL = strings.TrimSpace(c.Stream.URL)
	if c.Stream.URL == "" {
		c.Stream.URL = strings.TrimSpace(os.Getenv("AIRCHECK_STREAM_URL"))
	}
	c.Stream.Bitrate = strings.TrimSpace(c.Stream.Bitrate)
	if c.Stream.Bitrate == "" {
		c.Stream.Bitrate = defaultBitrate
	}
	if c.Stream.CaptureSeconds <= 0 {
		c.Stream.CaptureSeconds = defaultCaptureSeconds
	}
	if strings.TrimSpace(c.Stream.FFmpegBinary) == "" {
		c.Stream.FFmpegBinary = defaultFFmpegBinary
	}
	if strings.TrimSpace(c.Stream.FFprobeBinary) == "" {
		c.Stream.FFprobeBinary = defaultFFprobeBinary
	}
}

func (c *Config) normalizeChannel() {
	c.Channel.Title = strings.TrimSpace(c.Channel.Title)
	c.Channel.Author = strings.TrimSpace(c.Channel.Author)
	c.Channel.BaseURL = strings.TrimSpace(c.Channel.BaseURL)
	if c.Channel.BaseURL != "" && !strings.HasSuffix(c.Channel.BaseURL, "/") {
		c.Channel.BaseURL += "/"
	}
	if strings.TrimSpace(c.Channel.Language) == "" {
		c.Channel.Language = defaultLanguage
	}
	if strings.TrimSpace(c.Channel.Explicit) == "" {
		c.Channel.Explicit = defaultExplicit
	}
	if strings.TrimSpace(c.Channel.FeedFile) == "" {
		c.Channel.FeedFile = defaultFeedFile
	}
}

func (c *Config) normalizeShows() {
	for i := range c.Shows {
		c.Shows[i].Name = strings.TrimSpace(c.Shows[i].Name)
		c.Shows[i].ArchiveURL = strings.TrimSpace(c.Shows[i].ArchiveURL)
	}
}

func (c *Config) normalizePublish() {
	if strings.TrimSpace(c.Publish.Remote) == "" {
		c.Publish.Remote = defaultPublishRemote
	}
	if strings.TrimSpace(c.Publish.Branch) == "" {
		c.Publish.Branch = defaultPublishBranch
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
