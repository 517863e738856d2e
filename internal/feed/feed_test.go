package feed_test

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"aircheck/internal/catalog"
	"aircheck/internal/feed"
)

var testChannel = feed.Channel{
	Title:       "Automated KTAL Shows",
	Description: "Automated recordings with best-effort metadata.",
	Language:    "en-US",
	Author:      "DJ Tone Deaf",
	Explicit:    "no",
	ImageURL:    "https://feeds.example.com/test/channel.jpg",
	Category:    "Music",
	BaseURL:     "https://feeds.example.com/test/",
}

func fixedSizes(sizes map[string]int64) feed.SizeFunc {
	return func(relPath string) int64 {
		return sizes[relPath]
	}
}

func multiPartEpisode() catalog.Episode {
	return catalog.Episode{
		Key:         "2026-08-29_1900_ShowA",
		ShowName:    "ShowA",
		Title:       "ShowA – 2026-08-29 19:00",
		PublishedAt: time.Date(2026, time.August, 29, 19, 0, 0, 0, time.UTC),
		Author:      "DJ A",
		Parts: []catalog.Part{
			{Index: 1, Path: "episodes/2026-08-29_1900_ShowA_part001.mp3", SizeBytes: 99},
			{Index: 2, Path: "episodes/2026-08-29_1900_ShowA_part002.mp3", SizeBytes: 99},
			{Index: 3, Path: "episodes/2026-08-29_1900_ShowA_part003.mp3", SizeBytes: 62},
		},
	}
}

func singlePartEpisode() catalog.Episode {
	return catalog.Episode{
		Key:         "2026-08-22_1900_ShowA",
		ShowName:    "ShowA",
		Title:       "ShowA – 2026-08-22 19:00",
		PublishedAt: time.Date(2026, time.August, 22, 19, 0, 0, 0, time.UTC),
		Parts: []catalog.Part{
			{Index: 1, Path: "episodes/2026-08-22_1900_ShowA.mp3", SizeBytes: 55},
		},
	}
}

func TestRenderEmitsOneEntryPerPart(t *testing.T) {
	episodes := []catalog.Episode{multiPartEpisode(), singlePartEpisode()}

	data, err := feed.Render(episodes, testChannel, fixedSizes(nil))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := string(data)

	if got := strings.Count(out, "<item>"); got != 4 {
		t.Fatalf("expected 4 items, got %d:\n%s", got, out)
	}
	for _, want := range []string{
		"ShowA – 2026-08-29 19:00 – Part 1",
		"ShowA – 2026-08-29 19:00 – Part 2",
		"ShowA – 2026-08-29 19:00 – Part 3",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing title %q in feed", want)
		}
	}
	// Single-part episodes carry no part suffix.
	if strings.Contains(out, "2026-08-22 19:00 – Part") {
		t.Fatal("single-part episode must not be numbered")
	}
}

func TestRenderEnclosureURLAndGUID(t *testing.T) {
	data, err := feed.Render([]catalog.Episode{singlePartEpisode()}, testChannel,
		fixedSizes(map[string]int64{"episodes/2026-08-22_1900_ShowA.mp3": 123456}))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := string(data)

	wantURL := "https://feeds.example.com/test/episodes/2026-08-22_1900_ShowA.mp3"
	if !strings.Contains(out, `url="`+wantURL+`"`) {
		t.Fatalf("missing enclosure URL in:\n%s", out)
	}
	if !strings.Contains(out, `length="123456"`) {
		t.Fatalf("missing enclosure length in:\n%s", out)
	}
	if !strings.Contains(out, ">"+wantURL+"</guid>") {
		t.Fatalf("guid must equal the enclosure URL in:\n%s", out)
	}
}

func TestRenderMissingFileDegradesToZeroLength(t *testing.T) {
	data, err := feed.Render([]catalog.Episode{singlePartEpisode()}, testChannel, feed.DiskSizes(t.TempDir()))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(data), `length="0"`) {
		t.Fatalf("expected zero length for missing file:\n%s", data)
	}
}

func TestRenderDeterministic(t *testing.T) {
	episodes := []catalog.Episode{multiPartEpisode(), singlePartEpisode()}
	sizes := fixedSizes(map[string]int64{"episodes/2026-08-22_1900_ShowA.mp3": 55})

	first, err := feed.Render(episodes, testChannel, sizes)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := feed.Render(episodes, testChannel, sizes)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("expected byte-identical output for identical inputs")
	}
}

func TestRenderChannelMetadata(t *testing.T) {
	data, err := feed.Render(nil, testChannel, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"<title>Automated KTAL Shows</title>",
		"<language>en-US</language>",
		"<itunes:author>DJ Tone Deaf</itunes:author>",
		"<itunes:explicit>no</itunes:explicit>",
		`<itunes:category text="Music">`,
		`xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in channel block:\n%s", want, out)
		}
	}
	// Empty catalog renders no lastBuildDate so output stays reproducible.
	if strings.Contains(out, "lastBuildDate") {
		t.Fatal("empty catalog must not embed a build date")
	}
}

func TestRenderIsWellFormedXML(t *testing.T) {
	data, err := feed.Render([]catalog.Episode{multiPartEpisode()}, testChannel, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		if _, err := decoder.Token(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("invalid XML: %v", err)
		}
	}
}

func TestRenderRejectsRelativeBaseURL(t *testing.T) {
	channel := testChannel
	channel.BaseURL = "feeds/test/"
	if _, err := feed.Render(nil, channel, nil); err == nil {
		t.Fatal("expected error for relative base URL")
	}
}
