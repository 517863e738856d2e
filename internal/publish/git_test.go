package publish

import (
	"context"
	"os/exec"
	"strings"
	"testing"

	"aircheck/internal/testsupport"
)

func stubCommand(t *testing.T, fn func(ctx context.Context, name string, args ...string) *exec.Cmd) {
	t.Helper()
	original := commandContext
	commandContext = fn
	t.Cleanup(func() { commandContext = original })
}

func TestNewServiceReturnsNoopWhenDisabled(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Publish.Enabled = false

	stubCommand(t, func(ctx context.Context, name string, args ...string) *exec.Cmd {
		t.Fatal("noop publisher must not run git")
		return nil
	})

	svc := NewService(cfg, nil)
	if err := svc.Publish(context.Background(), "feed update"); err != nil {
		t.Fatalf("noop publish: %v", err)
	}
}

func TestPublishRunsAddCommitPush(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Publish.Enabled = true
	cfg.Publish.Remote = "origin"
	cfg.Publish.Branch = "main"

	var calls [][]string
	stubCommand(t, func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if name != "git" {
			t.Fatalf("unexpected binary %q", name)
		}
		calls = append(calls, args)
		return exec.CommandContext(ctx, "true")
	})

	svc := NewService(cfg, nil)
	if err := svc.Publish(context.Background(), "Auto update"); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if len(calls) != 3 {
		t.Fatalf("expected 3 git invocations, got %d: %v", len(calls), calls)
	}
	for _, args := range calls {
		if args[0] != "-C" || args[1] != cfg.Paths.DataDir {
			t.Fatalf("git must run against the data directory: %v", args)
		}
	}
	if got := strings.Join(calls[0][2:], " "); got != "add -A" {
		t.Fatalf("first call = %q", got)
	}
	if got := strings.Join(calls[1][2:], " "); got != "commit -m Auto update" {
		t.Fatalf("second call = %q", got)
	}
	if got := strings.Join(calls[2][2:], " "); got != "push origin main" {
		t.Fatalf("third call = %q", got)
	}
}

func TestPublishToleratesEmptyCommit(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Publish.Enabled = true
	cfg.Publish.Remote = "origin"
	cfg.Publish.Branch = "main"

	stubCommand(t, func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if len(args) > 2 && args[2] == "commit" {
			// Nothing staged: git commit exits non-zero.
			return exec.CommandContext(ctx, "false")
		}
		return exec.CommandContext(ctx, "true")
	})

	svc := NewService(cfg, nil)
	if err := svc.Publish(context.Background(), "Auto update"); err != nil {
		t.Fatalf("empty commit must not fail publish: %v", err)
	}
}

func TestPublishReportsPushFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Publish.Enabled = true
	cfg.Publish.Remote = "origin"
	cfg.Publish.Branch = "main"

	stubCommand(t, func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if len(args) > 2 && args[2] == "push" {
			return exec.CommandContext(ctx, "false")
		}
		return exec.CommandContext(ctx, "true")
	})

	svc := NewService(cfg, nil)
	err := svc.Publish(context.Background(), "Auto update")
	if err == nil || !strings.Contains(err.Error(), "git push") {
		t.Fatalf("expected push failure, got %v", err)
	}
}
