// Package ffprobe wraps the ffprobe CLI for container-level duration probing.
//
// Only format metadata is requested; aircheck needs the total duration of a
// capture to compute segment boundaries, nothing stream-level.
package ffprobe
