// Package logging builds the slog loggers used across aircheck.
//
// Two output formats are supported: a compact console format that prefixes
// messages with the emitting component, and standard JSON for machine
// consumption. Output can fan out to stdout and the configured log directory
// simultaneously. CleanupOldLogs prunes aged log files so unattended cron
// hosts do not accumulate them forever.
package logging
