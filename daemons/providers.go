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
	"time"

	"github.com/l3montree-dev/contentguard/detection"
	"github.com/l3montree-dev/contentguard/shared"
	"go.uber.org/fx"
)

const defaultExpiryInterval = time.Minute

// DaemonRunner encapsulates daemon dependencies and lifecycle
type DaemonRunner struct {
	configService           shared.ConfigService
	broker                  shared.PubSubBroker
	leaderElector           shared.LeaderElector
	governanceActionService shared.GovernanceActionService
	policyService           shared.PolicyService
	registry                ruleRefresher

	interval time.Duration
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// NewDaemonRunner creates a new daemon runner with injected dependencies
func NewDaemonRunner(
	configService shared.ConfigService,
	broker shared.PubSubBroker,
	leaderElector shared.LeaderElector,
	governanceActionService shared.GovernanceActionService,
	policyService shared.PolicyService,
	registry *detection.PatternRegistry,
	cfg shared.ModerationConfig,
) *DaemonRunner {
	interval := cfg.Daemon.ExpiryInterval
	if interval <= 0 {
		interval = defaultExpiryInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &DaemonRunner{
		configService:           configService,
		broker:                  broker,
		leaderElector:           leaderElector,
		governanceActionService: governanceActionService,
		policyService:           policyService,
		registry:                registry,
		interval:                interval,
		now:                     time.Now,
		ctx:                     ctx,
		cancel:                  cancel,
	}
}

// Start initiates all background daemons
func (runner *DaemonRunner) Start() {
	if err := WatchRuleChanges(runner.ctx, runner.broker, runner.registry); err != nil {
		slog.Error("could not watch rule changes", "err", err)
	}
	if err := WatchPolicyChanges(runner.ctx, runner.broker, runner.policyService); err != nil {
		slog.Error("could not watch policy changes", "err", err)
	}

	go func() {
		ticker := time.NewTicker(runner.interval)
		defer ticker.Stop()
		for {
			select {
			case <-runner.ctx.Done():
				return
			case <-ticker.C:
				runner.tick()
			}
		}
	}()
}

func (runner *DaemonRunner) Stop() {
	runner.cancel()
}

func (runner *DaemonRunner) tick() {
	if runner.leaderElector.IsLeader() {
		slog.Debug("this instance is the leader - running background jobs")
		runner.runDaemons(runner.ctx)
	} else {
		slog.Debug("not the leader - skipping background jobs")
	}
}

var _ shared.DaemonRunner = (*DaemonRunner)(nil)

var Module = fx.Module("daemons",
	fx.Provide(NewDaemonRunner),
	fx.Provide(func(r *DaemonRunner) shared.DaemonRunner { return r }),
	fx.Invoke(func(lc fx.Lifecycle, r *DaemonRunner) {
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				r.Start()
				return nil
			},
			OnStop: func(context.Context) error {
				r.Stop()
				return nil
			},
		})
	}),
)
