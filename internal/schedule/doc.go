// Package schedule decides whether a capture is due for the current instant.
//
// The schedule is a small fixed weekly grid: each show claims a weekday and a
// set of one-hour blocks. Evaluate is a pure function of (instant, grid), which
// keeps runs idempotent and lets the catalog key double as the duplicate-slot
// guard.
package schedule
