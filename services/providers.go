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

	"github.com/l3montree-dev/contentguard/detection"
	"github.com/l3montree-dev/contentguard/shared"
	"go.uber.org/fx"
)

func NewPatternRegistry(ruleRepository shared.DetectionRuleRepository) *detection.PatternRegistry {
	return detection.NewPatternRegistry(ruleRepository)
}

func NewScanner(cfg shared.ModerationConfig) *detection.Scanner {
	return detection.NewScanner(cfg.Scanner.MaxScanChars)
}

// runInBackground ties a blocking Run method to the fx lifecycle.
func runInBackground(lc fx.Lifecycle, run func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

// ServiceModule provides all service-layer constructors
var ServiceModule = fx.Options(
	fx.Provide(NewPatternRegistry),
	fx.Provide(func(r *detection.PatternRegistry) SnapshotProvider { return r }),
	fx.Provide(NewScanner),
	fx.Provide(NewNotificationSink),
	fx.Provide(fx.Annotate(NewConfigService, fx.As(new(shared.ConfigService)))),
	fx.Provide(NewDatabaseLeaderElector),
	fx.Provide(func(e *databaseLeaderElector) shared.LeaderElector { return e }),
	fx.Provide(fx.Annotate(NewPolicyService, fx.As(new(shared.PolicyService), new(shared.PolicyResolver)))),
	fx.Provide(fx.Annotate(NewScanService, fx.As(new(shared.ScanService)))),
	fx.Provide(fx.Annotate(NewGovernanceActionService, fx.As(new(shared.GovernanceActionService)))),
	fx.Provide(fx.Annotate(NewReviewQueueService, fx.As(new(shared.ReviewQueueService)))),
	fx.Provide(fx.Annotate(NewDetectionRuleService, fx.As(new(shared.DetectionRuleService)))),
	fx.Provide(fx.Annotate(NewModerationService, fx.As(new(shared.ModerationService)))),
	fx.Provide(NewScanDispatcher),
	fx.Provide(func(d *ScanDispatcher) shared.ScanDispatcher { return d }),

	fx.Invoke(func(lc fx.Lifecycle, e *databaseLeaderElector) {
		runInBackground(lc, e.Run)
	}),
	fx.Invoke(func(lc fx.Lifecycle, d *ScanDispatcher) {
		runInBackground(lc, func(ctx context.Context) {
			d.Run(ctx) // nolint: errcheck
		})
	}),
)
