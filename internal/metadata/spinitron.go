package metadata

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"aircheck/internal/logging"
)

const userAgent = "aircheck/0.1.0"

// ShowInfo carries whatever playlist details a lookup managed to recover.
// Any field may be empty.
type ShowInfo struct {
	PlaylistURL   string
	TracklistHTML string
	ImageURL      string
	DJ            string
}

// Provider resolves episode metadata for a show's archive page.
type Provider interface {
	Lookup(ctx context.Context, archiveURL string) ShowInfo
}

// Spinitron scrapes spinitron.com show archives for the latest playlist.
type Spinitron struct {
	client *http.Client
	logger *slog.Logger
}

// NewSpinitron builds a scraper with a short request timeout so a slow
// archive page cannot stall the capture pipeline.
func NewSpinitron(logger *slog.Logger) *Spinitron {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Spinitron{
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logging.WithComponent(logger, "metadata"),
	}
}

// Lookup fetches the show archive, follows the first playlist link, and
// scrapes tracklist, cover art, and host. Failures are logged and reported
// as a zero ShowInfo; enrichment never fails a capture.
func (s *Spinitron) Lookup(ctx context.Context, archiveURL string) ShowInfo {
	if strings.TrimSpace(archiveURL) == "" {
		return ShowInfo{}
	}

	archive, err := s.fetchDocument(ctx, archiveURL)
	if err != nil {
		s.logger.Warn("metadata lookup skipped", logging.String("url", archiveURL), logging.Error(err))
		return ShowInfo{}
	}

	playlistURL, err := latestPlaylistURL(archive, archiveURL)
	if err != nil {
		s.logger.Warn("no playlist link on archive page", logging.String("url", archiveURL))
		return ShowInfo{}
	}

	playlist, err := s.fetchDocument(ctx, playlistURL)
	if err != nil {
		s.logger.Warn("metadata lookup skipped", logging.String("url", playlistURL), logging.Error(err))
		return ShowInfo{}
	}

	info := ShowInfo{
		PlaylistURL:   playlistURL,
		TracklistHTML: tracklistHTML(playlist),
		ImageURL:      playlist.Find("div.playlist-art img").First().AttrOr("src", ""),
		DJ:            strings.TrimSpace(playlist.Find(".show-dj, .show-host, .host, .field-name-host").First().Text()),
	}
	s.logger.Info("playlist metadata resolved",
		logging.String("playlistUrl", info.PlaylistURL),
		logging.Bool("tracklist", info.TracklistHTML != ""),
		logging.Bool("image", info.ImageURL != ""))
	return info
}

func (s *Spinitron) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return doc, nil
}

// latestPlaylistURL finds the newest playlist link on the archive page.
// Spinitron lists playlists newest first, so the first match wins. The
// tracking query string is stripped to keep playlist URLs stable.
func latestPlaylistURL(archive *goquery.Document, archiveURL string) (string, error) {
	href, ok := archive.Find("a[href*='/pl/']").First().Attr("href")
	if !ok {
		return "", fmt.Errorf("no playlist link found")
	}

	base, err := url.Parse(archiveURL)
	if err != nil {
		return "", fmt.Errorf("parse archive url: %w", err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parse playlist href: %w", err)
	}
	resolved := base.ResolveReference(ref)
	resolved.RawQuery = ""
	resolved.Fragment = ""
	return resolved.String(), nil
}

func tracklistHTML(playlist *goquery.Document) string {
	tracks := playlist.Find("div.playlist-tracks li")
	if tracks.Length() == 0 {
		return ""
	}
	var builder strings.Builder
	builder.WriteString("<ul>")
	tracks.Each(func(_ int, track *goquery.Selection) {
		builder.WriteString("<li>")
		builder.WriteString(html.EscapeString(strings.TrimSpace(track.Text())))
		builder.WriteString("</li>")
	})
	builder.WriteString("</ul>")
	return builder.String()
}
