// Package publish pushes generated artifacts to a git remote.
//
// The data directory doubles as a checkout of the feed's hosting repo
// (GitHub Pages in the reference deployment). After a successful capture
// the orchestrator asks this package to add, commit, and push whatever
// changed. Publishing is fire-and-forget; failures are logged upstream
// and never fail a capture.
package publish
