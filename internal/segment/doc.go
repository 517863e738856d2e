// Package segment splits oversized captures into bounded-size parts.
//
// Podcast hosts commonly reject enclosures past a size limit, so captures
// above the configured threshold are divided into time-contiguous slices via
// lossless stream copy. Splitting is all-or-nothing: a failed probe or
// extraction leaves the original capture untouched so an incomplete episode
// can never reach the catalog.
package segment
