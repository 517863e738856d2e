package testsupport

import (
	"path/filepath"
	"testing"

	"aircheck/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "public")
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Stream.URL = "https://radio.example.com/stream"
	cfg.Channel.Title = "Test Channel"
	cfg.Channel.Description = "Test channel description"
	cfg.Channel.Author = "Test Host"
	cfg.Channel.BaseURL = "https://feeds.example.com/test/"
	cfg.Channel.ImageURL = "https://feeds.example.com/test/channel.jpg"
	cfg.Channel.Category = "Music"

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithShows sets the schedule grid on the test config.
func WithShows(shows ...config.Show) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Shows = shows
	}
}

// WithMaxPartMiB overrides the segment split threshold.
func WithMaxPartMiB(mib int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Segmenter.MaxPartMiB = mib
	}
}

// WithRetentionDays overrides the episode retention window.
func WithRetentionDays(days int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Retention.Days = days
	}
}
