package notifications_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aircheck/internal/config"
	"aircheck/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyCaptureCompleted(context.Background(), "The Smear Campaign", 3); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

type capturedRequest struct {
	title    string
	tags     string
	priority string
	body     string
}

func newCaptureServer(t *testing.T) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		captured.title = r.Header.Get("Title")
		captured.tags = r.Header.Get("Tags")
		captured.priority = r.Header.Get("Priority")
		captured.body = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func newNtfyService(t *testing.T, endpoint string) notifications.Service {
	t.Helper()
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = endpoint
	cfg.Notifications.RequestTimeout = 2
	return notifications.NewService(&cfg)
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	start := time.Date(2026, time.August, 29, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		notify         func(svc notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "capture started",
			notify: func(svc notifications.Service) error {
				return svc.NotifyCaptureStarted(context.Background(), "The Smear Campaign", start)
			},
			expectTitle:   "Aircheck - Capture Started",
			expectMessage: "🎙️ Recording: The Smear Campaign (Sat 19:00)",
			expectTags:    "aircheck,capture,started",
		},
		{
			name: "capture completed single part",
			notify: func(svc notifications.Service) error {
				return svc.NotifyCaptureCompleted(context.Background(), "Zona Azteca", 1)
			},
			expectTitle:    "Aircheck - Capture Complete",
			expectMessage:  "✅ Captured: Zona Azteca",
			expectTags:     "aircheck,capture,completed",
			expectPriority: "high",
		},
		{
			name: "capture completed multipart",
			notify: func(svc notifications.Service) error {
				return svc.NotifyCaptureCompleted(context.Background(), "The Smear Campaign", 3)
			},
			expectTitle:    "Aircheck - Capture Complete",
			expectMessage:  "✅ Captured: The Smear Campaign (3 parts)",
			expectTags:     "aircheck,capture,completed",
			expectPriority: "high",
		},
		{
			name: "feed updated",
			notify: func(svc notifications.Service) error {
				return svc.NotifyFeedUpdated(context.Background(), 12)
			},
			expectTitle:   "Aircheck - Feed Updated",
			expectMessage: "📻 Feed regenerated with 12 episodes",
			expectTags:    "aircheck,feed,updated",
		},
		{
			name: "error with context",
			notify: func(svc notifications.Service) error {
				return svc.NotifyError(context.Background(), io.ErrUnexpectedEOF, "capture")
			},
			expectTitle:    "Aircheck - Error",
			expectMessage:  "❌ Error during capture: unexpected EOF",
			expectTags:     "aircheck,error,alert",
			expectPriority: "high",
		},
		{
			name: "test notification",
			notify: func(svc notifications.Service) error {
				return svc.TestNotification(context.Background())
			},
			expectTitle:    "Aircheck - Test",
			expectMessage:  "🧪 Notification system test",
			expectTags:     "aircheck,test",
			expectPriority: "low",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server, captured := newCaptureServer(t)
			svc := newNtfyService(t, server.URL)

			if err := tc.notify(svc); err != nil {
				t.Fatalf("notify: %v", err)
			}
			if captured.title != tc.expectTitle {
				t.Errorf("title = %q, want %q", captured.title, tc.expectTitle)
			}
			if captured.body != tc.expectMessage {
				t.Errorf("message = %q, want %q", captured.body, tc.expectMessage)
			}
			if captured.tags != tc.expectTags {
				t.Errorf("tags = %q, want %q", captured.tags, tc.expectTags)
			}
			if captured.priority != tc.expectPriority {
				t.Errorf("priority = %q, want %q", captured.priority, tc.expectPriority)
			}
		})
	}
}

func TestNtfyServiceReportsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "topic quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := newNtfyService(t, server.URL)
	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
