// Package notify delivers outbound messages (reminders, reports) to the
// conversation front-end.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Notifier pushes one message to one user.
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// LogNotifier writes messages to the log instead of delivering them.
// Used when no webhook is configured.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n LogNotifier) Send(ctx context.Context, chatID int64, text string) error {
	n.Log.Info().Int64("chat_id", chatID).Str("text", text).Msg("notify (log only)")
	return nil
}

// WebhookNotifier POSTs messages to the front-end's delivery webhook.
type WebhookNotifier struct {
	URL   string
	Token string

	client *http.Client
}

// NewWebhookNotifier creates a WebhookNotifier with a bounded timeout.
func NewWebhookNotifier(url, token string) *WebhookNotifier {
	return &WebhookNotifier{
		URL:    url,
		Token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *WebhookNotifier) Send(ctx context.Context, chatID int64, text string) error {
	payload, err := json.Marshal(map[string]any{"chat_id": chatID, "text": text})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.Token != "" {
		req.Header.Set("Authorization", "Bearer "+n.Token)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver notification: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return fmt.Errorf("webhook status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
