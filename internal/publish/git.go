package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"aircheck/internal/config"
	"aircheck/internal/logging"
)

// commandContext is swapped in tests to observe the git invocations.
var commandContext = exec.CommandContext

// Publisher pushes the data directory to its configured remote.
type Publisher interface {
	Publish(ctx context.Context, message string) error
}

// NewService builds a git publisher when publishing is enabled in config.
// Otherwise a noop implementation is returned.
func NewService(cfg *config.Config, logger *slog.Logger) Publisher {
	if !cfg.Publish.Enabled {
		return noopPublisher{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &gitPublisher{
		dir:    cfg.Paths.DataDir,
		remote: cfg.Publish.Remote,
		branch: cfg.Publish.Branch,
		logger: logging.WithComponent(logger, "publish"),
	}
}

type gitPublisher struct {
	dir    string
	remote string
	branch string
	logger *slog.Logger
}

// Publish stages everything under the data directory, commits, and pushes.
// A commit with nothing staged is not an error; the push still runs so a
// previously unpushed commit gets delivered.
func (g *gitPublisher) Publish(ctx context.Context, message string) error {
	if err := g.run(ctx, "add", "-A"); err != nil {
		return fmt.Errorf("git add: %w", err)
	}
	if err := g.run(ctx, "commit", "-m", message); err != nil {
		g.logger.Debug("git commit skipped", logging.Error(err))
	}
	if err := g.run(ctx, "push", g.remote, g.branch); err != nil {
		return fmt.Errorf("git push: %w", err)
	}
	g.logger.Info("published data directory",
		logging.String("remote", g.remote),
		logging.String("branch", g.branch))
	return nil
}

func (g *gitPublisher) run(ctx context.Context, args ...string) error {
	cmd := commandContext(ctx, "git", append([]string{"-C", g.dir}, args...)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			return err
		}
		return fmt.Errorf("%w: %s", err, detail)
	}
	return nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string) error { return nil }
