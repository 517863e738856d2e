package segment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrProbe indicates the duration probe failed; the capture cannot be split
// safely.
var ErrProbe = errors.New("segment: duration probe failed")

// ErrIncomplete indicates fewer part files were produced than expected. The
// original capture is left in place for manual recovery.
var ErrIncomplete = errors.New("segment: incomplete split")

// Part is one produced segment file, ordered by Index.
type Part struct {
	Index     int
	Path      string
	SizeBytes int64
}

// Prober reports a media file's total duration in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Extractor copies a time window of src into dst without re-encoding.
type Extractor interface {
	Extract(ctx context.Context, src, dst string, start, length time.Duration) error
}

// ProbeFunc adapts a plain function to the Prober interface.
type ProbeFunc func(ctx context.Context, path string) (float64, error)

// Duration implements Prober.
func (f ProbeFunc) Duration(ctx context.Context, path string) (float64, error) {
	return f(ctx, path)
}

// Splitter divides oversized captures into bounded-size, time-contiguous
// parts.
type Splitter struct {
	prober    Prober
	extractor Extractor
}

// New constructs a Splitter from its two media capabilities.
func New(prober Prober, extractor Extractor) *Splitter {
	return &Splitter{prober: prober, extractor: extractor}
}

// Split returns the part list for path. Files at or under maxSizeBytes pass
// through untouched as a single part. Larger files are divided into
// ceil(size/maxSizeBytes) parts of ceil(duration/parts) seconds each, so the
// parts fully cover the source with no gap; the last part may run short. On
// success the original file is removed and only the parts remain. On any
// failure the original is preserved and partial output is cleaned up.
func (s *Splitter) Split(ctx context.Context, path string, maxSizeBytes int64) ([]Part, error) {
	if maxSizeBytes <= 0 {
		return nil, errors.New("segment: max size must be positive")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("segment: stat capture: %w", err)
	}
	size := info.Size()

	if size <= maxSizeBytes {
		return []Part{{Index: 1, Path: path, SizeBytes: size}}, nil
	}

	durationSeconds, err := s.prober.Duration(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProbe, err)
	}

	partsCount := int((size + maxSizeBytes - 1) / maxSizeBytes)
	segmentSeconds := int(math.Ceil(durationSeconds / float64(partsCount)))
	if segmentSeconds <= 0 {
		return nil, fmt.Errorf("%w: computed empty segment window", ErrProbe)
	}

	parts := make([]Part, 0, partsCount)
	for i := 0; i < partsCount; i++ {
		partPath := partFileName(path, i+1)
		start := time.Duration(i*segmentSeconds) * time.Second
		length := time.Duration(segmentSeconds) * time.Second
		if err := s.extractor.Extract(ctx, path, partPath, start, length); err != nil {
			removeParts(parts)
			return nil, fmt.Errorf("%w: part %d: %w", ErrIncomplete, i+1, err)
		}
		partInfo, err := os.Stat(partPath)
		if err != nil || partInfo.Size() == 0 {
			removeParts(parts)
			_ = os.Remove(partPath)
			return nil, fmt.Errorf("%w: part %d missing or empty", ErrIncomplete, i+1)
		}
		parts = append(parts, Part{Index: i + 1, Path: partPath, SizeBytes: partInfo.Size()})
	}

	if err := os.Remove(path); err != nil {
		return nil, fmt.Errorf("segment: remove original after split: %w", err)
	}
	return parts, nil
}

func partFileName(path string, index int) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s_part%03d%s", stem, index, ext)
}

func removeParts(parts []Part) {
	for _, part := range parts {
		_ = os.Remove(part.Path)
	}
}
