// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/monitoring"
	"github.com/l3montree-dev/contentguard/shared"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const webhookTokenHeader = "X-ContentGuard-Token"

type NotificationBody struct {
	OwnerID   string                 `json:"ownerId"`
	Event     dtos.NotificationEvent `json:"event"`
	Payload   map[string]any         `json:"payload"`
	Timestamp time.Time              `json:"timestamp"`
}

// WebhookNotificationSink posts every notification as json to a single endpoint.
type WebhookNotificationSink struct {
	URL    string
	Secret string
	client *http.Client
}

func NewWebhookNotificationSink(url, secret string, timeout time.Duration) *WebhookNotificationSink {
	return &WebhookNotificationSink{
		URL:    url,
		Secret: secret,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// retry delays, the caller bounds the total time with its context
var webhookRetryDelays = []time.Duration{200 * time.Millisecond, time.Second}

func (s *WebhookNotificationSink) Notify(ctx context.Context, ownerID string, event dtos.NotificationEvent, payload map[string]any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(NotificationBody{
		OwnerID:   ownerID,
		Event:     event,
		Payload:   payload,
		Timestamp: time.Now(),
	}); err != nil {
		return err
	}
	body := buf.Bytes()

	var lastErr error
	for attempt := 0; attempt <= len(webhookRetryDelays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("webhook notification canceled: %w (last error: %v)", ctx.Err(), lastErr)
			case <-time.After(webhookRetryDelays[attempt-1]):
			}
		}

		lastErr = s.send(ctx, body)
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (s *WebhookNotificationSink) send(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.Secret != "" {
		req.Header.Set(webhookTokenHeader, s.Secret)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded with status %s", resp.Status)
	}
	return nil
}

// LogNotificationSink only logs. It is used when no webhook is configured.
type LogNotificationSink struct{}

func NewLogNotificationSink() LogNotificationSink {
	return LogNotificationSink{}
}

func (LogNotificationSink) Notify(ctx context.Context, ownerID string, event dtos.NotificationEvent, payload map[string]any) error {
	slog.Info("notification", "ownerId", ownerID, "event", event, "payload", payload)
	return nil
}

// NewNotificationSink picks the webhook sink when a url is configured.
func NewNotificationSink(cfg shared.ModerationConfig) shared.NotificationSink {
	if cfg.Webhook.URL == "" {
		return NewLogNotificationSink()
	}
	return NewWebhookNotificationSink(cfg.Webhook.URL, cfg.Webhook.Secret, cfg.Webhook.Timeout)
}

// deliverNotification never fails the caller. It reports whether the sink accepted the notification.
func deliverNotification(ctx context.Context, sink shared.NotificationSink, timeout time.Duration, ownerID string, event dtos.NotificationEvent, payload map[string]any) bool {
	// the notification outlives a canceled request but not the timeout
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := sink.Notify(ctx, ownerID, event, payload); err != nil {
		monitoring.NotificationFailures.Inc()
		monitoring.Alert(fmt.Sprintf("could not deliver %s notification", event), err)
		return false
	}
	return true
}
