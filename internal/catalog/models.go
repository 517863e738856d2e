package catalog

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Part is one bounded-size contiguous audio file of an episode. Path is
// slash-separated and relative to the data directory, so it can be joined
// directly onto the feed base URL.
type Part struct {
	Index     int    `json:"index"`
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
}

// Episode is the persistent unit of the catalog. Episodes are written once
// per successful capture and never mutated afterwards; retention eviction
// removes them wholesale together with their audio files.
type Episode struct {
	Key             string
	ShowName        string
	Title           string
	PublishedAt     time.Time
	DescriptionHTML string
	ImageURL        string
	Author          string
	Parts           []Part
}

// Key derives the stable episode identifier from the aligned start time and
// the show name. Both components participate so two shows starting at the
// same hour can never collide.
func Key(start time.Time, showName string) string {
	return fmt.Sprintf("%s_%s", start.Format("2006-01-02_1504"), NormalizeShowName(showName))
}

// NormalizeShowName produces the filesystem- and key-safe form of a show
// name: NFC-normalized with spaces and path separators replaced.
func NormalizeShowName(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_")
	return replacer.Replace(name)
}

// EpisodeTitle builds the display title for a capture.
func EpisodeTitle(showName string, start time.Time) string {
	return fmt.Sprintf("%s – %s", showName, start.Format("2006-01-02 15:04"))
}
