package ffmpeg

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func stubCommand(t *testing.T, fn func(ctx context.Context, name string, args ...string) *exec.Cmd) {
	t.Helper()
	original := commandContext
	commandContext = fn
	t.Cleanup(func() { commandContext = original })
}

func TestRecordPassesDurationAndBitrate(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "capture.mp3")

	var gotArgs []string
	stubCommand(t, func(ctx context.Context, name string, args ...string) *exec.Cmd {
		gotArgs = args
		if err := os.WriteFile(outPath, []byte("mp3"), 0o644); err != nil {
			t.Fatalf("stub write: %v", err)
		}
		return exec.CommandContext(ctx, "true")
	})

	cli := NewCLI(WithBitrate("128k"))
	if err := cli.Record(context.Background(), "https://radio.example.com/stream", outPath, time.Hour); err != nil {
		t.Fatalf("Record: %v", err)
	}

	joined := strings.Join(gotArgs, " ")
	if !strings.Contains(joined, "-b:a 128k") {
		t.Fatalf("expected bitrate in args: %s", joined)
	}
	if !strings.Contains(joined, "-t 3600") {
		t.Fatalf("expected duration in args: %s", joined)
	}
	if !strings.Contains(joined, "libmp3lame") {
		t.Fatalf("expected mp3 encoder in args: %s", joined)
	}
}

func TestRecordFailsWithoutOutputFile(t *testing.T) {
	stubCommand(t, func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "true")
	})

	cli := NewCLI()
	outPath := filepath.Join(t.TempDir(), "capture.mp3")
	err := cli.Record(context.Background(), "https://radio.example.com/stream", outPath, time.Hour)
	if err == nil || !strings.Contains(err.Error(), "no output file") {
		t.Fatalf("expected missing output error, got %v", err)
	}
}

func TestRecordFailsOnNonZeroExit(t *testing.T) {
	stubCommand(t, func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "false")
	})

	cli := NewCLI()
	outPath := filepath.Join(t.TempDir(), "capture.mp3")
	if err := cli.Record(context.Background(), "https://radio.example.com/stream", outPath, time.Hour); err == nil {
		t.Fatal("expected error on ffmpeg failure")
	}
}

func TestExtractBuildsCopyWindow(t *testing.T) {
	var gotArgs []string
	stubCommand(t, func(ctx context.Context, name string, args ...string) *exec.Cmd {
		gotArgs = args
		return exec.CommandContext(ctx, "true")
	})

	cli := NewCLI()
	if err := cli.Extract(context.Background(), "/tmp/in.mp3", "/tmp/out.mp3", 1200*time.Second, 1200*time.Second); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	joined := strings.Join(gotArgs, " ")
	if !strings.Contains(joined, "-ss 1200") || !strings.Contains(joined, "-t 1200") {
		t.Fatalf("expected window in args: %s", joined)
	}
	if !strings.Contains(joined, "-c copy") {
		t.Fatalf("expected stream copy in args: %s", joined)
	}
}

func TestExtractRejectsInvalidWindow(t *testing.T) {
	cli := NewCLI()
	if err := cli.Extract(context.Background(), "/tmp/in.mp3", "/tmp/out.mp3", -time.Second, time.Second); err == nil {
		t.Fatal("expected error for negative start")
	}
	if err := cli.Extract(context.Background(), "/tmp/in.mp3", "/tmp/out.mp3", 0, 0); err == nil {
		t.Fatal("expected error for zero length")
	}
}
