package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier delivers a text message to the team chat. The concrete
// implementation posts to a Slack-style incoming webhook; tests substitute
// a recording fake.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// slackWebhook posts messages to a Slack incoming webhook URL. One attempt
// per call, bounded by the HTTP client timeout.
type slackWebhook struct {
	webhookURL string
	client     *http.Client
}

// NewSlackWebhook creates a Notifier that delivers to the given webhook URL.
func NewSlackWebhook(webhookURL string, timeout time.Duration) Notifier {
	return &slackWebhook{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: timeout},
	}
}

// slackMessage is the incoming-webhook payload.
type slackMessage struct {
	Text string `json:"text"`
}

// Notify posts the text to the webhook. Any non-2xx response counts as a
// delivery failure.
func (s *slackWebhook) Notify(ctx context.Context, text string) error {
	body, err := json.Marshal(slackMessage{Text: text})
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}

	return nil
}
