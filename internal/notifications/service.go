package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shopsmith/internal/config"
)

const userAgent = "Shopsmith-Go/0.1.0"

// Service defines the notification surface exposed to the pipelines.
type Service interface {
	NotifyExportCompleted(ctx context.Context, path string, rows, skipped int) error
	NotifyVoiceCompleted(ctx context.Context, utterances int) error
	NotifyRenderStarted(ctx context.Context, template string) error
	NotifyRenderCompleted(ctx context.Context, template, videoPath string, duration time.Duration) error
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

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
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

func (n *ntfyService) NotifyExportCompleted(ctx context.Context, path string, rows, skipped int) error {
	message := fmt.Sprintf("Spreadsheet written: %s (%d rows)", strings.TrimSpace(path), rows)
	if skipped > 0 {
		message = fmt.Sprintf("%s, %d skipped", message, skipped)
	}
	data := payload{
		title:   "Shopsmith - Export Complete",
		message: message,
		tags:    []string{"shopsmith", "listing", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyVoiceCompleted(ctx context.Context, utterances int) error {
	data := payload{
		title:   "Shopsmith - Voice Complete",
		message: fmt.Sprintf("Synthesized %d utterances", utterances),
		tags:    []string{"shopsmith", "voice", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRenderStarted(ctx context.Context, template string) error {
	data := payload{
		title:   "Shopsmith - Render Started",
		message: fmt.Sprintf("Started rendering: %s", strings.TrimSpace(template)),
		tags:    []string{"shopsmith", "promo", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRenderCompleted(ctx context.Context, template, videoPath string, duration time.Duration) error {
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	message := fmt.Sprintf("Render complete: %s in %s", strings.TrimSpace(template), duration)
	if videoPath = strings.TrimSpace(videoPath); videoPath != "" {
		message = fmt.Sprintf("%s\nFile: %s", message, videoPath)
	}
	data := payload{
		title:    "Shopsmith - Render Complete",
		message:  message,
		tags:     []string{"shopsmith", "promo", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Shopsmith - Error",
		message:  builder.String(),
		tags:     []string{"shopsmith", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Shopsmith - Test",
		message:  "Notification system test",
		tags:     []string{"shopsmith", "test"},
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

func (noopService) NotifyExportCompleted(context.Context, string, int, int) error { return nil }
func (noopService) NotifyVoiceCompleted(context.Context, int) error               { return nil }
func (noopService) NotifyRenderStarted(context.Context, string) error             { return nil }
func (noopService) NotifyRenderCompleted(context.Context, string, string, time.Duration) error {
	return nil
}
func (noopService) NotifyError(context.Context, error, string) error { return nil }
func (noopService) TestNotification(context.Context) error           { return nil }
