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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/mocks"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fastWebhookRetries(t *testing.T) {
	previous := webhookRetryDelays
	webhookRetryDelays = []time.Duration{time.Millisecond, time.Millisecond}
	t.Cleanup(func() { webhookRetryDelays = previous })
}

func TestWebhookNotificationSink(t *testing.T) {
	t.Run("should post the notification with the token header", func(t *testing.T) {
		var body NotificationBody
		var token string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token = r.Header.Get(webhookTokenHeader)
			_ = json.NewDecoder(r.Body).Decode(&body)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		sink := NewWebhookNotificationSink(server.URL, "secret", time.Second)
		err := sink.Notify(context.Background(), "owner", dtos.NotificationContentQuarantined, map[string]any{"scanId": "abc"})
		require.NoError(t, err)

		assert.Equal(t, "secret", token)
		assert.Equal(t, "owner", body.OwnerID)
		assert.Equal(t, dtos.NotificationContentQuarantined, body.Event)
		assert.Equal(t, "abc", body.Payload["scanId"])
	})

	t.Run("should retry after a server error", func(t *testing.T) {
		fastWebhookRetries(t)
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		sink := NewWebhookNotificationSink(server.URL, "", time.Second)
		require.NoError(t, sink.Notify(context.Background(), "owner", dtos.NotificationViolationDetected, nil))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("should give up after the last retry", func(t *testing.T) {
		fastWebhookRetries(t)
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		sink := NewWebhookNotificationSink(server.URL, "", time.Second)
		assert.Error(t, sink.Notify(context.Background(), "owner", dtos.NotificationViolationDetected, nil))
		assert.Equal(t, int32(3), calls.Load())
	})
}

func TestNewNotificationSink(t *testing.T) {
	t.Run("should only log without a webhook url", func(t *testing.T) {
		cfg := shared.DefaultModerationConfig()
		assert.IsType(t, LogNotificationSink{}, NewNotificationSink(cfg))

		cfg.Webhook.URL = "http://localhost/hook"
		assert.IsType(t, &WebhookNotificationSink{}, NewNotificationSink(cfg))
	})
}

func TestDeliverNotification(t *testing.T) {
	t.Run("should report a failing sink without returning the error", func(t *testing.T) {
		sink := mocks.NewNotificationSink(t)
		sink.On("Notify", mock.Anything, "owner", dtos.NotificationViolationDetected, mock.Anything).Return(assert.AnError).Once()

		assert.False(t, deliverNotification(context.Background(), sink, time.Second, "owner", dtos.NotificationViolationDetected, nil))
	})

	t.Run("should not inherit the cancellation of the caller", func(t *testing.T) {
		sink := mocks.NewNotificationSink(t)
		sink.On("Notify", mock.Anything, "owner", dtos.NotificationViolationDetected, mock.Anything).
			Return(func(ctx context.Context, ownerID string, event dtos.NotificationEvent, payload map[string]any) error {
				return ctx.Err()
			}).Once()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.True(t, deliverNotification(ctx, sink, time.Second, "owner", dtos.NotificationViolationDetected, nil))
	})
}
