package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"aircheck/internal/config"
)

const userAgent = "aircheck/0.1.0"

// Service defines the notification surface exposed to the capture pipeline.
type Service interface {
	NotifyCaptureStarted(ctx context.Context, showName string, start time.Time) error
	NotifyCaptureCompleted(ctx context.Context, showName string, parts int) error
	NotifyFeedUpdated(ctx context.Context, episodes int) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyCaptureStarted(ctx context.Context, showName string, start time.Time) error {
	showName = strings.TrimSpace(showName)
	data := payload{
		title:   "Aircheck - Capture Started",
		message: fmt.Sprintf("🎙️ Recording: %s (%s)", showName, start.Format("Mon 15:04")),
		tags:    []string{"aircheck", "capture", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyCaptureCompleted(ctx context.Context, showName string, parts int) error {
	showName = strings.TrimSpace(showName)
	message := fmt.Sprintf("✅ Captured: %s", showName)
	if parts > 1 {
		message = fmt.Sprintf("%s (%d parts)", message, parts)
	}
	data := payload{
		title:    "Aircheck - Capture Complete",
		message:  message,
		tags:     []string{"aircheck", "capture", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyFeedUpdated(ctx context.Context, episodes int) error {
	data := payload{
		title:   "Aircheck - Feed Updated",
		message: fmt.Sprintf("📻 Feed regenerated with %d episodes", episodes),
		tags:    []string{"aircheck", "feed", "updated"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("❌ Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" during ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Aircheck - Error",
		message:  builder.String(),
		tags:     []string{"aircheck", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Aircheck - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"aircheck", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyCaptureStarted(context.Context, string, time.Time) error { return nil }
func (noopService) NotifyCaptureCompleted(context.Context, string, int) error     { return nil }
func (noopService) NotifyFeedUpdated(context.Context, int) error                  { return nil }
func (noopService) NotifyError(context.Context, error, string) error              { return nil }
func (noopService) TestNotification(context.Context) error                        { return nil }
