package sinks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pressroom/contexts/release-lifecycle/alert-dispatcher/domain/entities"
)

// WebhookSink POSTs the alert payload as JSON. Any non-2xx answer is a failure.
type WebhookSink struct {
	URL    string
	Client *http.Client
}

func NewWebhookSink(url string, timeout time.Duration) WebhookSink {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return WebhookSink{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (s WebhookSink) Name() string {
	return "webhook"
}

func (s WebhookSink) Deliver(ctx context.Context, alert entities.Alert) error {
	body, err := json.Marshal(alert.Payload())
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Alert-Type", string(alert.Type))

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook answered %d", resp.StatusCode)
	}
	return nil
}
