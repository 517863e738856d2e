package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// DataDir is the published tree: the feed document plus the
	// episodes/ audio directory live here.
	DataDir  string `toml:"data_dir"`
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Stream contains the capture source and encoder settings.
type Stream struct {
	URL            string `toml:"url"`
	Bitrate        string `toml:"bitrate"`
	CaptureSeconds int    `toml:"capture_seconds"`
	FFmpegBinary   string `toml:"ffmpeg_binary"`
	FFprobeBinary  string `toml:"ffprobe_binary"`
}

// Segmenter contains the episode splitting threshold.
type Segmenter struct {
	MaxPartMiB int `toml:"max_part_mib"`
}

// Retention controls how long captured episodes are kept.
type Retention struct {
	Days int `toml:"days"`
}

// Channel contains the static podcast channel metadata rendered into the feed.
type Channel struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Language    string `toml:"language"`
	Author      string `toml:"author"`
	Explicit    string `toml:"explicit"`
	ImageURL    string `toml:"image_url"`
	Category    string `toml:"category"`
	// BaseURL is the public root under which DataDir is served. Enclosure
	// URLs are formed by joining it with each part's relative path.
	BaseURL  string `toml:"base_url"`
	FeedFile string `toml:"feed_file"`
}

// Show describes one recurring weekly broadcast slot.
type Show struct {
	Name string `toml:"name"`
	// Weekday uses 0=Monday through 6=Sunday.
	Weekday int   `toml:"weekday"`
	Hours   []int `toml:"hours"`
	// ArchiveURL optionally points at a Spinitron show archive page used
	// for best-effort playlist metadata.
	ArchiveURL string `toml:"archive_url"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Publish contains configuration for pushing the data directory to a git remote.
type Publish struct {
	Enabled bool   `toml:"enabled"`
	Remote  string `toml:"remote"`
	Branch  string `toml:"branch"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for aircheck.
//
// Configuration sections by subsystem:
//   - Paths: data, state, and log directories
//   - Stream: capture source URL and encoder settings
//   - Segmenter: oversized capture split threshold
//   - Retention: episode age limit
//   - Channel: static podcast feed metadata
//   - Shows: the weekly schedule grid
//   - Notifications: ntfy push notification settings
//   - Publish: git auto-push of generated artifacts
//   - Logging: log format, level, and retention
type Config struct {
	Paths         Paths         `toml:"paths"`
	Stream        Stream        `toml:"stream"`
	Segmenter     Segmenter     `toml:"segmenter"`
	Retention     Retention     `toml:"retention"`
	Channel       Channel       `toml:"channel"`
	Shows         []Show        `toml:"show"`
	Notifications Notifications `toml:"notifications"`
	Publish       Publish       `toml:"publish"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/aircheck/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
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

	defaultPath, err := expandPath("~/.config/aircheck/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("aircheck.toml")
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

// EnsureDirectories creates required directories for a capture run.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.EpisodesDir(), c.Paths.StateDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// EpisodesDir returns the directory holding captured audio under DataDir.
func (c *Config) EpisodesDir() string {
	return filepath.Join(c.Paths.DataDir, "episodes")
}

// FeedPath returns the absolute path of the generated feed document.
func (c *Config) FeedPath() string {
	return filepath.Join(c.Paths.DataDir, c.Channel.FeedFile)
}

// CatalogPath returns the location of the episode catalog database.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.Paths.StateDir, "catalog.db")
}

// LockPath returns the location of the run exclusivity lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "aircheck.lock")
}

// MaxPartBytes returns the segmenter split threshold in bytes.
func (c *Config) MaxPartBytes() int64 {
	return int64(c.Segmenter.MaxPartMiB) * 1024 * 1024
}

// CaptureDuration returns the length of one capture block.
func (c *Config) CaptureDuration() time.Duration {
	return time.Duration(c.Stream.CaptureSeconds) * time.Second
}

// RetentionAge returns the episode retention window as a duration.
func (c *Config) RetentionAge() time.Duration {
	return time.Duration(c.Retention.Days) * 24 * time.Hour
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
