// Package catalog persists captured episodes in SQLite and enforces
// retention.
//
// The Store is the single source of truth for every known episode: inserts
// are keyed by (aligned start, normalized show name) so a slot can never be
// recorded twice, enumeration is newest-first for feed synthesis, and
// EvictOlderThan removes aged episodes together with their backing audio
// files so catalog and filesystem state stay consistent.
//
// An unreadable database is moved aside and recreated empty rather than
// treated as fatal; an unattended recorder must keep running. Schema changes
// bump the version in store.go.
package catalog
