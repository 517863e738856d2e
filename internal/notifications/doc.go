// Package notifications delivers capture events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when no topic is set. The
// orchestrator treats every notification as fire-and-forget; a failed push
// never fails a capture.
package notifications
