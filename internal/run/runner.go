package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"aircheck/internal/catalog"
	"aircheck/internal/config"
	"aircheck/internal/feed"
	"aircheck/internal/logging"
	"aircheck/internal/media/ffmpeg"
	"aircheck/internal/media/ffprobe"
	"aircheck/internal/metadata"
	"aircheck/internal/notifications"
	"aircheck/internal/publish"
	"aircheck/internal/runlock"
	"aircheck/internal/schedule"
	"aircheck/internal/segment"
)

// ErrCaptureFailed indicates the recorder produced no usable output.
var ErrCaptureFailed = errors.New("run: capture failed")

// forceShowName labels captures taken with schedule evaluation bypassed.
const forceShowName = "Manual Capture"

// recordGrace pads the capture deadline past the requested duration so a
// slow stream shutdown does not kill an otherwise complete recording.
const recordGrace = 5 * time.Minute

// Outcome summarizes how an invocation ended.
type Outcome string

const (
	// OutcomeCaptured means a new episode was recorded and published.
	OutcomeCaptured Outcome = "captured"
	// OutcomeNoMatch means no schedule slot covers the current hour.
	OutcomeNoMatch Outcome = "no-match"
	// OutcomeSkippedLocked means another invocation holds the run lock.
	OutcomeSkippedLocked Outcome = "skipped-locked"
	// OutcomeDuplicate means this slot was already captured.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeFailed means capture or segmentation aborted the run.
	OutcomeFailed Outcome = "failed"
)

// Recorder captures the stream into outPath for the given duration.
type Recorder interface {
	Record(ctx context.Context, streamURL, outPath string, duration time.Duration) error
}

// Segmenter splits an oversized capture into bounded-size parts.
type Segmenter interface {
	Split(ctx context.Context, path string, maxSizeBytes int64) ([]segment.Part, error)
}

// Deps bundles the boundary capabilities a Runner drives.
type Deps struct {
	Recorder  Recorder
	Segmenter Segmenter
	Metadata  metadata.Provider
	Notifier  notifications.Service
	Publisher publish.Publisher
}

// DefaultDeps wires the production implementations from config.
func DefaultDeps(cfg *config.Config, logger *slog.Logger) Deps {
	recorder := ffmpeg.NewCLI(
		ffmpeg.WithBinary(cfg.Stream.FFmpegBinary),
		ffmpeg.WithBitrate(cfg.Stream.Bitrate),
	)
	prober := segment.ProbeFunc(func(ctx context.Context, path string) (float64, error) {
		return ffprobe.Duration(ctx, cfg.Stream.FFprobeBinary, path)
	})
	return Deps{
		Recorder:  recorder,
		Segmenter: segment.New(prober, recorder),
		Metadata:  metadata.NewSpinitron(logger),
		Notifier:  notifications.NewService(cfg),
		Publisher: publish.NewService(cfg, logger),
	}
}

// Runner executes capture invocations against a shared catalog.
type Runner struct {
	cfg    *config.Config
	store  *catalog.Store
	lock   *runlock.Lock
	deps   Deps
	logger *slog.Logger
	now    func() time.Time
}

// New builds a Runner. The lock must not already be acquired by the caller.
func New(cfg *config.Config, store *catalog.Store, lock *runlock.Lock, deps Deps, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		store:  store,
		lock:   lock,
		deps:   deps,
		logger: logging.WithComponent(logger, "run"),
		now:    time.Now,
	}
}

// Execute performs one invocation. force bypasses schedule evaluation and
// captures the current hour under a synthetic show name. A held lock and a
// schedule miss are clean skips, not errors.
func (r *Runner) Execute(ctx context.Context, force bool) (Outcome, error) {
	logger := r.logger.With(logging.String("runId", uuid.NewString()))

	ok, err := r.lock.TryAcquire()
	if err != nil {
		return OutcomeFailed, err
	}
	if !ok {
		logger.Info("another invocation is running, skipping", logging.String("lock", r.lock.Path()))
		return OutcomeSkippedLocked, nil
	}
	defer func() {
		if err := r.lock.Release(); err != nil {
			logger.Warn("release run lock", logging.Error(err))
		}
	}()

	now := r.now()
	r.evictExpired(ctx, logger, now)

	match, matched := r.resolveSlot(now, force)
	if !matched {
		logger.Info("no show scheduled for this hour")
		return OutcomeNoMatch, nil
	}
	logger = logger.With(logging.String("show", match.ShowName))

	key := catalog.Key(match.AlignedStart, match.ShowName)
	if exists, err := r.store.Has(ctx, key); err != nil {
		return OutcomeFailed, fmt.Errorf("duplicate pre-check: %w", err)
	} else if exists {
		logger.Info("slot already captured, skipping", logging.String("key", key))
		return OutcomeDuplicate, nil
	}

	r.notify(logger, "capture started notification", func() error {
		return r.deps.Notifier.NotifyCaptureStarted(ctx, match.ShowName, match.AlignedStart)
	})

	capturePath, err := r.capture(ctx, logger, key)
	if err != nil {
		r.notify(logger, "capture failure notification", func() error {
			return r.deps.Notifier.NotifyError(ctx, err, "capture")
		})
		return OutcomeFailed, err
	}

	parts, err := r.deps.Segmenter.Split(ctx, capturePath, r.cfg.MaxPartBytes())
	if err != nil {
		r.notify(logger, "segmentation failure notification", func() error {
			return r.deps.Notifier.NotifyError(ctx, err, "segmentation")
		})
		return OutcomeFailed, fmt.Errorf("split capture: %w", err)
	}
	logger.Info("capture segmented", logging.Int("parts", len(parts)))

	episode, err := r.buildEpisode(ctx, key, match, parts)
	if err != nil {
		return OutcomeFailed, err
	}
	if err := r.store.Insert(ctx, episode); err != nil {
		if errors.Is(err, catalog.ErrDuplicateKey) {
			logger.Warn("episode already cataloged, skipping insert", logging.String("key", key))
			return OutcomeDuplicate, nil
		}
		return OutcomeFailed, fmt.Errorf("catalog episode: %w", err)
	}
	logger.Info("episode cataloged", logging.String("key", key))

	count, err := r.RebuildFeed(ctx)
	if err != nil {
		return OutcomeFailed, err
	}

	r.notify(logger, "capture completed notification", func() error {
		return r.deps.Notifier.NotifyCaptureCompleted(ctx, match.ShowName, len(parts))
	})
	if err := r.deps.Publisher.Publish(ctx, "Auto update "+key); err != nil {
		logger.Warn("publish failed", logging.Error(err))
	}
	logger.Info("run complete", logging.Int("episodes", count))
	return OutcomeCaptured, nil
}

// RebuildFeed regenerates the feed document from the full catalog and
// returns the episode count it rendered.
func (r *Runner) RebuildFeed(ctx context.Context) (int, error) {
	episodes, err := r.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list episodes: %w", err)
	}
	data, err := feed.Render(episodes, feed.ChannelFromConfig(r.cfg), feed.DiskSizes(r.cfg.Paths.DataDir))
	if err != nil {
		return 0, fmt.Errorf("render feed: %w", err)
	}
	if err := feed.WriteFile(r.cfg.FeedPath(), data); err != nil {
		return 0, fmt.Errorf("write feed: %w", err)
	}
	return len(episodes), nil
}

// evictExpired enforces retention before schedule evaluation so cleanup
// happens even on invocations with nothing to capture.
func (r *Runner) evictExpired(ctx context.Context, logger *slog.Logger, now time.Time) {
	cutoff := now.Add(-r.cfg.RetentionAge())
	evicted, err := r.store.EvictOlderThan(ctx, cutoff)
	if err != nil {
		logger.Warn("retention eviction failed", logging.Error(err))
		return
	}
	if len(evicted) == 0 {
		return
	}
	logger.Info("evicted expired episodes", logging.Int("count", len(evicted)))
	if _, err := r.RebuildFeed(ctx); err != nil {
		logger.Warn("feed rebuild after eviction failed", logging.Error(err))
	}
}

func (r *Runner) resolveSlot(now time.Time, force bool) (schedule.Match, bool) {
	if force {
		return schedule.Match{
			ShowName:     forceShowName,
			AlignedStart: schedule.AlignToHour(now),
		}, true
	}
	return schedule.Evaluate(now, r.cfg.Shows)
}

func (r *Runner) capture(ctx context.Context, logger *slog.Logger, key string) (string, error) {
	if err := os.MkdirAll(r.cfg.EpisodesDir(), 0o755); err != nil {
		return "", fmt.Errorf("create episodes directory: %w", err)
	}
	outPath := filepath.Join(r.cfg.EpisodesDir(), key+".mp3")
	duration := r.cfg.CaptureDuration()

	logger.Info("recording stream",
		logging.String("url", r.cfg.Stream.URL),
		logging.Duration("duration", duration))

	recordCtx, cancel := context.WithTimeout(ctx, duration+recordGrace)
	defer cancel()
	if err := r.deps.Recorder.Record(recordCtx, r.cfg.Stream.URL, outPath, duration); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}
	return outPath, nil
}

// buildEpisode assembles the catalog record, enriching best-effort from the
// show's playlist archive when one is configured.
func (r *Runner) buildEpisode(ctx context.Context, key string, match schedule.Match, parts []segment.Part) (catalog.Episode, error) {
	var info metadata.ShowInfo
	if match.ArchiveURL != "" {
		info = r.deps.Metadata.Lookup(ctx, match.ArchiveURL)
	}

	imageURL := info.ImageURL
	if imageURL == "" {
		imageURL = r.cfg.Channel.ImageURL
	}
	author := info.DJ
	if author == "" {
		author = r.cfg.Channel.Author
	}

	catalogParts := make([]catalog.Part, 0, len(parts))
	for _, part := range parts {
		rel, err := filepath.Rel(r.cfg.Paths.DataDir, part.Path)
		if err != nil {
			return catalog.Episode{}, fmt.Errorf("relativize part path %q: %w", part.Path, err)
		}
		catalogParts = append(catalogParts, catalog.Part{
			Index:     part.Index,
			Path:      filepath.ToSlash(rel),
			SizeBytes: part.SizeBytes,
		})
	}

	return catalog.Episode{
		Key:             key,
		ShowName:        match.ShowName,
		Title:           catalog.EpisodeTitle(match.ShowName, match.AlignedStart),
		PublishedAt:     match.AlignedStart,
		DescriptionHTML: metadata.EpisodeDescription(match.ShowName, match.AlignedStart, info),
		ImageURL:        imageURL,
		Author:          author,
		Parts:           catalogParts,
	}, nil
}

// notify runs a fire-and-forget notification, logging any failure.
func (r *Runner) notify(logger *slog.Logger, label string, fn func() error) {
	if err := fn(); err != nil {
		logger.Warn(label+" failed", logging.Error(err))
	}
}
