// Package feed renders the episode catalog into an RSS 2.0 podcast document.
//
// The feed is derived state: it is regenerated in full from the catalog on
// every run and atomically replaced on disk, so it can never drift from the
// catalog. Rendering embeds no wall-clock, which keeps output reproducible.
// Multi-part episodes emit one entry per part with a "Part i" title suffix.
package feed
