// Package run drives one capture invocation end to end.
//
// Each invocation is a short-lived, single-pass run: acquire the instance
// lock, evict expired episodes, evaluate the weekly schedule, capture the
// matched hour, split oversized audio, enrich with playlist metadata,
// persist the episode, regenerate the feed, then notify and publish.
// Capture and segmentation failures abort the run with the catalog
// untouched; metadata, notification, and publish failures are logged and
// swallowed.
package run
