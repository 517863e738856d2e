package feed

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"aircheck/internal/catalog"
	"aircheck/internal/config"
	"aircheck/internal/fileutil"
)

// Channel describes the static channel-level feed metadata.
type Channel struct {
	Title       string
	Description string
	Language    string
	Author      string
	Explicit    string
	ImageURL    string
	Category    string
	BaseURL     string
}

// ChannelFromConfig maps the configured channel metadata.
func ChannelFromConfig(cfg *config.Config) Channel {
	return Channel{
		Title:       cfg.Channel.Title,
		Description: cfg.Channel.Description,
		Language:    cfg.Channel.Language,
		Author:      cfg.Channel.Author,
		Explicit:    cfg.Channel.Explicit,
		ImageURL:    cfg.Channel.ImageURL,
		Category:    cfg.Channel.Category,
		BaseURL:     cfg.Channel.BaseURL,
	}
}

// SizeFunc resolves the current byte size of a part's relative path. Missing
// files resolve to 0: degraded enclosure metadata, never a render failure.
type SizeFunc func(relPath string) int64

// DiskSizes returns a SizeFunc backed by the filesystem under dataDir.
func DiskSizes(dataDir string) SizeFunc {
	return func(relPath string) int64 {
		return fileutil.FileSize(filepath.Join(dataDir, filepath.FromSlash(relPath)))
	}
}

// Render produces the full RSS document for the given episodes, which must
// already be ordered newest first. Output is a pure function of its inputs:
// no generation timestamp is embedded, so identical catalogs render
// byte-identical feeds.
func Render(episodes []catalog.Episode, channel Channel, size SizeFunc) ([]byte, error) {
	base, err := url.Parse(channel.BaseURL)
	if err != nil || !base.IsAbs() {
		return nil, fmt.Errorf("feed: channel base URL %q is not absolute", channel.BaseURL)
	}
	if size == nil {
		size = func(string) int64 { return 0 }
	}

	doc := rssFeed{
		Version:  "2.0",
		ITunesNS: "http://www.itunes.com/dtds/podcast-1.0.dtd",
		Channel: rssChannel{
			Title:        channel.Title,
			Link:         channel.BaseURL,
			Description:  channel.Description,
			Language:     channel.Language,
			ITunesAuthor: channel.Author,
			Explicit:     channel.Explicit,
		},
	}
	if channel.ImageURL != "" {
		doc.Channel.Image = &rssImage{Href: channel.ImageURL}
	}
	if channel.Category != "" {
		doc.Channel.Category = &rssCategory{Text: channel.Category}
	}
	if len(episodes) > 0 {
		doc.Channel.LastBuildDate = episodes[0].PublishedAt.UTC().Format(time.RFC1123Z)
	}

	for _, episode := range episodes {
		multipart := len(episode.Parts) > 1
		for _, part := range episode.Parts {
			title := episode.Title
			if multipart {
				title = fmt.Sprintf("%s – Part %d", title, part.Index)
			}

			enclosureURL := base.JoinPath(strings.Split(part.Path, "/")...).String()

			item := rssItem{
				Title:        title,
				Description:  episode.DescriptionHTML,
				PubDate:      episode.PublishedAt.UTC().Format(time.RFC1123Z),
				ITunesAuthor: episode.Author,
				Explicit:     channel.Explicit,
				GUID:         rssGUID{IsPermaLink: "false", Value: enclosureURL},
				Enclosure: rssEnclosure{
					URL:    enclosureURL,
					Length: size(part.Path),
					Type:   "audio/mpeg",
				},
			}
			if item.ITunesAuthor == "" {
				item.ITunesAuthor = channel.Author
			}
			if episode.ImageURL != "" {
				item.Image = &rssImage{Href: episode.ImageURL}
			} else if channel.ImageURL != "" {
				item.Image = &rssImage{Href: channel.ImageURL}
			}

			doc.Channel.Items = append(doc.Channel.Items, item)
		}
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("feed: marshal: %w", err)
	}
	return append([]byte(xml.Header), append(output, '\n')...), nil
}

// WriteFile atomically replaces the feed document at path.
func WriteFile(path string, data []byte) error {
	return fileutil.WriteFileAtomic(path, data, 0o644)
}

type rssFeed struct {
	XMLName  xml.Name   `xml:"rss"`
	Version  string     `xml:"version,attr"`
	ITunesNS string     `xml:"xmlns:itunes,attr"`
	Channel  rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string       `xml:"title"`
	Link          string       `xml:"link"`
	Description   string       `xml:"description"`
	Language      string       `xml:"language,omitempty"`
	LastBuildDate string       `xml:"lastBuildDate,omitempty"`
	ITunesAuthor  string       `xml:"itunes:author,omitempty"`
	Explicit      string       `xml:"itunes:explicit,omitempty"`
	Image         *rssImage    `xml:"itunes:image,omitempty"`
	Category      *rssCategory `xml:"itunes:category,omitempty"`
	Items         []rssItem    `xml:"item"`
}

type rssImage struct {
	Href string `xml:"href,attr"`
}

type rssCategory struct {
	Text string `xml:"text,attr"`
}

type rssItem struct {
	Title        string       `xml:"title"`
	Description  string       `xml:"description"`
	PubDate      string       `xml:"pubDate"`
	ITunesAuthor string       `xml:"itunes:author,omitempty"`
	Explicit     string       `xml:"itunes:explicit,omitempty"`
	Image        *rssImage    `xml:"itunes:image,omitempty"`
	GUID         rssGUID      `xml:"guid"`
	Enclosure    rssEnclosure `xml:"enclosure"`
}

type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}
