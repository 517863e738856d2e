// Package runlock guards against overlapping capture runs.
//
// Captures are launched from cron on every hour boundary; a long split or a
// wedged ffmpeg must not let a second run trample the first. The lock is a
// file lock in the state directory, acquired without blocking so an
// already-running capture turns the new invocation into a clean skip.
package runlock
