// Package metadata enriches captured episodes with playlist details.
//
// The default provider scrapes Spinitron show archives: it follows the
// newest playlist link on a show's archive page and pulls the tracklist,
// cover image, and host name. Every lookup is best-effort; a failed or
// partial scrape yields a zero-value ShowInfo and the capture proceeds
// with generic metadata.
package metadata
