package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mixport/internal/config"
	"mixport/internal/report"
)

const userAgent = "mixport/0.1.0"

// Service defines the notification surface exposed to the transfer runner.
type Service interface {
	NotifyTransferCompleted(ctx context.Context, r *report.Report) error
	NotifyTransferFailed(ctx context.Context, sourceRef string, err error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
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
	click    string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyTransferCompleted(ctx context.Context, r *report.Report) error {
	if r == nil {
		return nil
	}
	var message strings.Builder
	name := strings.TrimSpace(r.PlaylistName)
	if name == "" {
		name = "playlist"
	}
	switch {
	case r.ReportOnly:
		fmt.Fprintf(&message, "📄 Report ready: %s", name)
	case r.PlaylistURL != "":
		fmt.Fprintf(&message, "🎉 Playlist created: %s", name)
	default:
		fmt.Fprintf(&message, "⚠️ No playlist created: %s", name)
	}
	message.WriteString("\n")
	message.WriteString(r.Headline())
	if r.ProcessingTime > 0 {
		fmt.Fprintf(&message, " in %s", r.ProcessingTime.Round(time.Second))
	}

	data := payload{
		title:   "mixport - Transfer Complete",
		message: message.String(),
		tags:    []string{"mixport", "transfer", "completed"},
		click:   r.PlaylistURL,
	}
	if len(r.Found) == 0 {
		data.title = "mixport - Transfer Complete (no matches)"
		data.tags = []string{"mixport", "transfer", "warning"}
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyTransferFailed(ctx context.Context, sourceRef string, err error) error {
	var builder strings.Builder
	builder.WriteString("❌ Transfer failed")
	if sourceRef = strings.TrimSpace(sourceRef); sourceRef != "" {
		builder.WriteString(" for ")
		builder.WriteString(sourceRef)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "mixport - Error",
		message:  builder.String(),
		tags:     []string{"mixport", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "mixport - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"mixport", "test"},
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
	if data.click != "" {
		req.Header.Set("Click", data.click)
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

func (noopService) NotifyTransferCompleted(context.Context, *report.Report) error { return nil }
func (noopService) NotifyTransferFailed(context.Context, string, error) error     { return nil }
func (noopService) TestNotification(context.Context) error                        { return nil }
