package metadata

import (
	"html"
	"strings"
	"time"
)

// EpisodeDescription renders the HTML body shown by podcast apps. The
// result is stable for a given input so feed regeneration stays
// byte-identical.
func EpisodeDescription(showName string, start time.Time, info ShowInfo) string {
	parts := []string{
		"<p><strong>" + html.EscapeString(showName) + "</strong></p>",
		"<p>Aired: " + start.Format("Monday January 02, 2006 at 03:04 PM") + "</p>",
	}
	if info.PlaylistURL != "" {
		parts = append(parts, "<p><a href='"+html.EscapeString(info.PlaylistURL)+"'>View playlist on Spinitron</a></p>")
	}
	if info.TracklistHTML != "" {
		parts = append(parts, "<p>Tracklist:</p>", info.TracklistHTML)
	}
	return strings.Join(parts, "\n")
}
