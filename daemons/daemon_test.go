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
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/l3montree-dev/contentguard/database"
	"github.com/l3montree-dev/contentguard/detection"
	"github.com/l3montree-dev/contentguard/mocks"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestRunner(t *testing.T) (*DaemonRunner, *mocks.ConfigService, *mocks.LeaderElector, *mocks.GovernanceActionService) {
	configService := mocks.NewConfigService(t)
	leaderElector := mocks.NewLeaderElector(t)
	gas := mocks.NewGovernanceActionService(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return &DaemonRunner{
		configService:           configService,
		leaderElector:           leaderElector,
		governanceActionService: gas,
		interval:                time.Minute,
		now:                     func() time.Time { return fixedNow },
		ctx:                     ctx,
		cancel:                  cancel,
	}, configService, leaderElector, gas
}

func lastRunAt(ts time.Time) func(args mock.Arguments) {
	return func(args mock.Arguments) {
		raw, _ := json.Marshal(map[string]any{"time": ts})
		_ = json.Unmarshal(raw, args.Get(1))
	}
}

func TestRunExpiry(t *testing.T) {
	t.Run("should release expired restrictions and record the run", func(t *testing.T) {
		runner, configService, _, gas := newTestRunner(t)
		gas.On("ReleaseExpired", mock.Anything, fixedNow).Return(3, nil)
		configService.On("SetJSONConfig", expiryRunKey, mock.Anything).Return(nil)

		released, err := runner.RunExpiry(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 3, released)
	})

	t.Run("should not record the run if releasing failed", func(t *testing.T) {
		runner, _, _, gas := newTestRunner(t)
		gas.On("ReleaseExpired", mock.Anything, fixedNow).Return(1, errors.New("db down"))

		released, err := runner.RunExpiry(context.Background())
		assert.Error(t, err)
		assert.Equal(t, 1, released)
	})

	t.Run("should still report success if the run could not be recorded", func(t *testing.T) {
		runner, configService, _, gas := newTestRunner(t)
		gas.On("ReleaseExpired", mock.Anything, fixedNow).Return(0, nil)
		configService.On("SetJSONConfig", expiryRunKey, mock.Anything).Return(errors.New("db down"))

		_, err := runner.RunExpiry(context.Background())
		assert.NoError(t, err)
	})
}

func TestTick(t *testing.T) {
	t.Run("should do nothing if this instance is not the leader", func(t *testing.T) {
		runner, _, leaderElector, _ := newTestRunner(t)
		leaderElector.On("IsLeader").Return(false)

		runner.tick()
	})

	t.Run("should run the expiry daemon on the leader if it never ran before", func(t *testing.T) {
		runner, configService, leaderElector, gas := newTestRunner(t)
		leaderElector.On("IsLeader").Return(true)
		configService.On("GetJSONConfig", expiryRunKey, mock.Anything).Return(gorm.ErrRecordNotFound)
		gas.On("ReleaseExpired", mock.Anything, fixedNow).Return(0, nil)
		configService.On("SetJSONConfig", expiryRunKey, mock.Anything).Return(nil)

		runner.tick()
	})

	t.Run("should skip the run if another leader ran it within the interval", func(t *testing.T) {
		runner, configService, leaderElector, _ := newTestRunner(t)
		leaderElector.On("IsLeader").Return(true)
		configService.On("GetJSONConfig", expiryRunKey, mock.Anything).Run(lastRunAt(fixedNow.Add(-30 * time.Second))).Return(nil)

		runner.tick()
	})

	t.Run("should run once the interval passed", func(t *testing.T) {
		runner, configService, leaderElector, gas := newTestRunner(t)
		leaderElector.On("IsLeader").Return(true)
		configService.On("GetJSONConfig", expiryRunKey, mock.Anything).Run(lastRunAt(fixedNow.Add(-2 * time.Minute))).Return(nil)
		gas.On("ReleaseExpired", mock.Anything, fixedNow).Return(2, nil)
		configService.On("SetJSONConfig", expiryRunKey, mock.Anything).Return(nil)

		runner.tick()
	})

	t.Run("should skip the run if the last run time cannot be read", func(t *testing.T) {
		runner, configService, leaderElector, _ := newTestRunner(t)
		leaderElector.On("IsLeader").Return(true)
		configService.On("GetJSONConfig", expiryRunKey, mock.Anything).Return(errors.New("db down"))

		runner.tick()
	})
}

type countingRefresher struct {
	calls atomic.Int32
}

func (r *countingRefresher) Refresh() (*detection.Snapshot, error) {
	r.calls.Add(1)
	return detection.NewSnapshot(nil), nil
}

func TestWatchers(t *testing.T) {
	t.Run("should refresh the registry when rules changed on another instance", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		broker := database.NewInMemoryBroker()
		defer broker.Close()
		refresher := &countingRefresher{}

		assert.NoError(t, WatchRuleChanges(ctx, broker, refresher))
		assert.NoError(t, broker.Publish(ctx, shared.NewSimplePubSubMessage(shared.DetectionRuleChange, map[string]any{})))

		assert.Eventually(t, func() bool { return refresher.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	})

	t.Run("should invalidate the cached policy of the changed owner", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		broker := database.NewInMemoryBroker()
		defer broker.Close()
		policyService := mocks.NewPolicyService(t)
		done := make(chan struct{})
		policyService.On("Invalidate", "owner-1").Run(func(mock.Arguments) { close(done) }).Return()

		assert.NoError(t, WatchPolicyChanges(ctx, broker, policyService))
		// messages without an owner are ignored
		assert.NoError(t, broker.Publish(ctx, shared.NewSimplePubSubMessage(shared.PolicyConfigChange, map[string]any{})))
		assert.NoError(t, broker.Publish(ctx, shared.NewSimplePubSubMessage(shared.PolicyConfigChange, map[string]any{"ownerId": 42})))
		assert.NoError(t, broker.Publish(ctx, shared.NewSimplePubSubMessage(shared.PolicyConfigChange, map[string]any{"ownerId": "owner-1"})))

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("policy was not invalidated")
		}
	})

	t.Run("should return an error if the broker refuses the subscription", func(t *testing.T) {
		broker := mocks.NewPubSubBroker(t)
		broker.On("Subscribe", shared.DetectionRuleChange).Return(nil, errors.New("closed"))

		assert.Error(t, WatchRuleChanges(context.Background(), broker, &countingRefresher{}))
	})
}
