package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"aircheck/internal/logging"
)

const episodeColumns = "key, show_name, title, published_at, description_html, image_url, author, parts_json"

// Insert persists a new episode. ErrDuplicateKey is returned when the key is
// already present, which guards against double-recording the same slot.
func (s *Store) Insert(ctx context.Context, episode Episode) error {
	if episode.Key == "" {
		return errors.New("catalog: episode key required")
	}
	if len(episode.Parts) == 0 {
		return errors.New("catalog: episode requires at least one part")
	}

	partsJSON, err := json.Marshal(episode.Parts)
	if err != nil {
		return fmt.Errorf("marshal parts: %w", err)
	}

	err = s.execWithRetry(
		ctx,
		`INSERT INTO episodes (
            key, show_name, title, published_at, description_html,
            image_url, author, parts_json, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		episode.Key,
		episode.ShowName,
		episode.Title,
		episode.PublishedAt.UTC().Format(time.RFC3339),
		episode.DescriptionHTML,
		episode.ImageURL,
		episode.Author,
		string(partsJSON),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, episode.Key)
		}
		return fmt.Errorf("insert episode: %w", err)
	}
	return nil
}

// Get fetches an episode by key. A missing key returns (nil, nil).
func (s *Store) Get(ctx context.Context, key string) (*Episode, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT `+episodeColumns+` FROM episodes WHERE key = ?`, key)
	episode, err := scanEpisode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get episode: %w", err)
	}
	return episode, nil
}

// Has reports whether a key exists in the catalog.
func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT COUNT(1) FROM episodes WHERE key = ?`, key).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check episode key: %w", err)
	}
	return count > 0, nil
}

// List returns all episodes ordered newest first by publish time. This
// ordering is load-bearing for feed synthesis.
func (s *Store) List(ctx context.Context) ([]Episode, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT `+episodeColumns+` FROM episodes ORDER BY published_at DESC, key DESC`)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		episode, err := scanEpisode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		episodes = append(episodes, *episode)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episodes: %w", err)
	}
	return episodes, nil
}

// Count returns the number of catalogued episodes.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ensureContext(ctx), `SELECT COUNT(1) FROM episodes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count episodes: %w", err)
	}
	return count, nil
}

// EvictOlderThan removes and returns every episode published before cutoff.
// Referenced audio files are deleted from the data directory; files already
// absent are not an error.
func (s *Store) EvictOlderThan(ctx context.Context, cutoff time.Time) ([]Episode, error) {
	ctx = ensureContext(ctx)
	episodes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var evicted []Episode
	for _, episode := range episodes {
		if !episode.PublishedAt.Before(cutoff) {
			continue
		}
		if err := s.execWithRetry(ctx, `DELETE FROM episodes WHERE key = ?`, episode.Key); err != nil {
			return evicted, fmt.Errorf("evict episode %s: %w", episode.Key, err)
		}
		for _, part := range episode.Parts {
			path := s.partFilePath(part)
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				s.logger.Warn("failed to remove evicted audio file",
					logging.String("path", path),
					logging.Error(err),
				)
			}
		}
		s.logger.Info("episode evicted",
			logging.String("key", episode.Key),
			logging.Time("published_at", episode.PublishedAt),
			logging.Int("parts", len(episode.Parts)),
		)
		evicted = append(evicted, episode)
	}
	return evicted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEpisode(row rowScanner) (*Episode, error) {
	var (
		episode     Episode
		publishedAt string
		partsJSON   string
	)
	if err := row.Scan(
		&episode.Key,
		&episode.ShowName,
		&episode.Title,
		&publishedAt,
		&episode.DescriptionHTML,
		&episode.ImageURL,
		&episode.Author,
		&partsJSON,
	); err != nil {
		return nil, err
	}

	parsed, err := time.Parse(time.RFC3339, publishedAt)
	if err != nil {
		return nil, fmt.Errorf("parse published_at %q: %w", publishedAt, err)
	}
	episode.PublishedAt = parsed

	if err := json.Unmarshal([]byte(partsJSON), &episode.Parts); err != nil {
		return nil, fmt.Errorf("parse parts: %w", err)
	}
	return &episode, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) {
		// SQLITE_CONSTRAINT (19) and its extended codes.
		if code := coder.Code(); code == 19 || code == 1555 || code == 2067 {
			return true
		}
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "constraint failed")
}
