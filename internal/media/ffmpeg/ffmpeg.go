package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

var commandContext = exec.CommandContext

// Client defines the ffmpeg operations aircheck depends on.
type Client interface {
	// Record captures duration worth of the live stream into outPath,
	// re-encoding to mp3 at the configured bitrate.
	Record(ctx context.Context, streamURL, outPath string, duration time.Duration) error
	// Extract copies the [start, start+length) window of src into dst
	// without re-encoding.
	Extract(ctx context.Context, src, dst string, start, length time.Duration) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithBitrate overrides the default capture bitrate.
func WithBitrate(bitrate string) Option {
	return func(c *CLI) {
		if bitrate != "" {
			c.bitrate = bitrate
		}
	}
}

// CLI wraps the ffmpeg command-line tool.
type CLI struct {
	binary  string
	bitrate string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg", bitrate: "192k"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Record implements Client.
func (c *CLI) Record(ctx context.Context, streamURL, outPath string, duration time.Duration) error {
	if strings.TrimSpace(streamURL) == "" {
		return errors.New("stream URL required")
	}
	if strings.TrimSpace(outPath) == "" {
		return errors.New("output path required")
	}
	if duration <= 0 {
		return errors.New("capture duration must be positive")
	}

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", streamURL,
		"-c:a", "libmp3lame",
		"-b:a", c.bitrate,
		"-t", formatSeconds(duration),
		"-y", outPath,
	}
	if err := c.run(ctx, args); err != nil {
		return fmt.Errorf("record stream: %w", err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return fmt.Errorf("record stream: no output file: %w", err)
	}
	if info.Size() == 0 {
		return errors.New("record stream: empty output file")
	}
	return nil
}

// Extract implements Client.
func (c *CLI) Extract(ctx context.Context, src, dst string, start, length time.Duration) error {
	if strings.TrimSpace(src) == "" || strings.TrimSpace(dst) == "" {
		return errors.New("source and destination paths required")
	}
	if start < 0 || length <= 0 {
		return errors.New("invalid extraction window")
	}

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", src,
		"-ss", formatSeconds(start),
		"-t", formatSeconds(length),
		"-c", "copy",
		"-y", dst,
	}
	if err := c.run(ctx, args); err != nil {
		return fmt.Errorf("extract segment: %w", err)
	}
	return nil
}

func (c *CLI) run(ctx context.Context, args []string) error {
	cmd := commandContext(ctx, c.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			return fmt.Errorf("%s: %w: %s", c.binary, err, detail)
		}
		return fmt.Errorf("%s: %w", c.binary, err)
	}
	return nil
}

func formatSeconds(d time.Duration) string {
	return strconv.Itoa(int(d / time.Second))
}
