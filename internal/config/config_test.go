package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aircheck/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
[stream]
url = "https://radio.example.com/stream"

[channel]
title = "Test Channel"
base_url = "https://example.com/podcast"
`

func TestLoadMinimalConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}

	if cfg.Stream.Bitrate != "192k" {
		t.Fatalf("unexpected bitrate: %q", cfg.Stream.Bitrate)
	}
	if cfg.Stream.CaptureSeconds != 3600 {
		t.Fatalf("unexpected capture seconds: %d", cfg.Stream.CaptureSeconds)
	}
	if cfg.Segmenter.MaxPartMiB != 99 {
		t.Fatalf("unexpected split threshold: %d", cfg.Segmenter.MaxPartMiB)
	}
	if cfg.MaxPartBytes() != 99*1024*1024 {
		t.Fatalf("unexpected split threshold bytes: %d", cfg.MaxPartBytes())
	}
	if cfg.Retention.Days != 21 {
		t.Fatalf("unexpected retention days: %d", cfg.Retention.Days)
	}
	if cfg.Channel.Language != "en-US" {
		t.Fatalf("unexpected language: %q", cfg.Channel.Language)
	}
	if cfg.Channel.FeedFile != "feed.xml" {
		t.Fatalf("unexpected feed file: %q", cfg.Channel.FeedFile)
	}
}

func TestLoadNormalizesBaseURLTrailingSlash(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !strings.HasSuffix(cfg.Channel.BaseURL, "/") {
		t.Fatalf("expected trailing slash on base URL, got %q", cfg.Channel.BaseURL)
	}
}

func TestLoadStreamURLFromEnv(t *testing.T) {
	t.Setenv("AIRCHECK_STREAM_URL", "https://radio.example.com/live")
	path := writeConfig(t, `
[channel]
title = "Test Channel"
base_url = "https://example.com/podcast/"
`)

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Stream.URL != "https://radio.example.com/live" {
		t.Fatalf("expected stream URL from env, got %q", cfg.Stream.URL)
	}
}

func TestLoadRejectsMissingStreamURL(t *testing.T) {
	t.Setenv("AIRCHECK_STREAM_URL", "")
	path := writeConfig(t, `
[channel]
title = "Test Channel"
base_url = "https://example.com/podcast/"
`)

	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "stream.url") {
		t.Fatalf("expected stream.url error, got %v", err)
	}
}

func TestLoadRejectsInvalidShows(t *testing.T) {
	tests := []struct {
		name string
		show string
		want string
	}{
		{
			name: "missing name",
			show: "[[show]]\nweekday = 2\nhours = [9]\n",
			want: "name must be set",
		},
		{
			name: "weekday out of range",
			show: "[[show]]\nname = \"A\"\nweekday = 7\nhours = [9]\n",
			want: "weekday",
		},
		{
			name: "hour out of range",
			show: "[[show]]\nname = \"A\"\nweekday = 2\nhours = [24]\n",
			want: "hour",
		},
		{
			name: "duplicate hour",
			show: "[[show]]\nname = \"A\"\nweekday = 2\nhours = [9, 9]\n",
			want: "listed twice",
		},
		{
			name: "no hours",
			show: "[[show]]\nname = \"A\"\nweekday = 2\nhours = []\n",
			want: "at least one hour",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, minimalConfig+tc.show)
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestEnsureDirectoriesCreatesTree(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "public")
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.EpisodesDir(), cfg.Paths.StateDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q, err=%v", dir, err)
		}
	}
}

func TestCreateSampleParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if len(cfg.Shows) == 0 {
		t.Fatal("expected sample schedule to define shows")
	}
}
