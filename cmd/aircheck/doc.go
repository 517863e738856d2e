// Package main hosts the aircheck CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the cron-driven capture run, feed
// regeneration, catalog inspection and pruning, configuration scaffolding,
// and a notification smoke test. It centralizes configuration resolution
// and structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
