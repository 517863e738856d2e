package ffprobe_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"aircheck/internal/media/ffprobe"
)

func stubProbe(t *testing.T, script string) string {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, "ffprobe-stub")
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return bin
}

func TestDurationParsesProbeOutput(t *testing.T) {
	bin := stubProbe(t, "#!/bin/sh\necho '{\"format\":{\"duration\":\"3600.25\",\"size\":\"272629760\"}}'\n")

	seconds, err := ffprobe.Duration(context.Background(), bin, "/tmp/audio.mp3")
	if err != nil {
		t.Fatalf("Duration: %v", err)
	}
	if seconds != 3600.25 {
		t.Fatalf("unexpected duration: %f", seconds)
	}
}

func TestDurationFailsWhenMissing(t *testing.T) {
	bin := stubProbe(t, "#!/bin/sh\necho '{\"format\":{}}'\n")

	if _, err := ffprobe.Duration(context.Background(), bin, "/tmp/audio.mp3"); err == nil {
		t.Fatal("expected error for missing duration")
	}
}

func TestDurationFailsOnProbeError(t *testing.T) {
	bin := stubProbe(t, "#!/bin/sh\necho 'boom' >&2\nexit 1\n")

	if _, err := ffprobe.Duration(context.Background(), bin, "/tmp/audio.mp3"); err == nil {
		t.Fatal("expected error for failing probe")
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := ffprobe.Inspect(context.Background(), "ffprobe", ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
