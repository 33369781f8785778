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

package daemons

import (
	"context"
	"log/slog"

	"github.com/go-viper/mapstructure/v2"
	"github.com/l3montree-dev/contentguard/detection"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/pkg/errors"
)

type policyChangeMessage struct {
	OwnerID string `mapstructure:"ownerId"`
}

type ruleRefresher interface {
	Refresh() (*detection.Snapshot, error)
}

// subscribe calls handle for every message on channel until ctx is done or the broker closes the subscription.
func subscribe(ctx context.Context, broker shared.PubSubBroker, channel shared.PubSubChannel, handle func(payload map[string]any)) error {
	ch, err := broker.Subscribe(channel)
	if err != nil {
		return errors.Wrapf(err, "could not subscribe to %s", channel)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case payload, ok := <-ch:
				if !ok {
					slog.Warn("subscription closed", "channel", channel)
					return
				}
				handle(payload)
			}
		}
	}()
	return nil
}

// WatchRuleChanges recompiles the local pattern registry whenever another instance imports or refreshes rules.
func WatchRuleChanges(ctx context.Context, broker shared.PubSubBroker, registry ruleRefresher) error {
	return subscribe(ctx, broker, shared.DetectionRuleChange, func(map[string]any) {
		snapshot, err := registry.Refresh()
		if err != nil {
			slog.Error("could not refresh detection rules", "err", err)
			return
		}
		slog.Info("detection rules refreshed", "rules", snapshot.Len(), "degraded", snapshot.DegradedCount())
	})
}

// WatchPolicyChanges drops cached policies which were changed on another instance.
func WatchPolicyChanges(ctx context.Context, broker shared.PubSubBroker, policyService shared.PolicyService) error {
	return subscribe(ctx, broker, shared.PolicyConfigChange, func(payload map[string]any) {
		var msg policyChangeMessage
		if err := mapstructure.Decode(payload, &msg); err != nil || msg.OwnerID == "" {
			slog.Warn("policy change without owner", "payload", payload, "err", err)
			return
		}
		policyService.Invalidate(msg.OwnerID)
	})
}
