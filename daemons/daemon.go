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

	"github.com/l3montree-dev/contentguard/monitoring"
	"github.com/l3montree-dev/contentguard/shared"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const expiryRunKey = "daemon.expiry"

func getLastRunTime(configService shared.ConfigService, key string) (time.Time, error) {
	var lastRun struct {
		Time time.Time `json:"time"`
	}

	err := configService.GetJSONConfig(key, &lastRun)

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Error("could not get last run time", "err", err, "key", key)
		return time.Time{}, err
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Info("no last run time found. Setting to 0", "key", key)
		return time.Time{}, nil
	}

	return lastRun.Time, nil
}

// shouldRun reports whether at least interval passed since the last recorded run.
// Followers see the leaders runs through the shared config table.
func shouldRun(configService shared.ConfigService, key string, interval time.Duration, now time.Time) bool {
	lastTime, err := getLastRunTime(configService, key)
	if err != nil {
		return false
	}

	return now.Sub(lastTime) >= interval
}

func markRun(configService shared.ConfigService, key string, now time.Time) error {
	return configService.SetJSONConfig(key, struct {
		Time time.Time `json:"time"`
	}{
		Time: now,
	})
}

// RunExpiry releases every restriction whose expiry passed.
func (runner *DaemonRunner) RunExpiry(ctx context.Context) (int, error) {
	start := runner.now()
	released, err := runner.governanceActionService.ReleaseExpired(ctx, start)
	monitoring.ExpiryDaemonDuration.Observe(time.Since(start).Seconds())
	monitoring.ExpiredActionsReleased.Add(float64(released))
	if err != nil {
		return released, errors.Wrap(err, "could not release expired restrictions")
	}

	if err := markRun(runner.configService, expiryRunKey, start); err != nil {
		slog.Error("could not mark expiry run", "err", err)
	}
	slog.Info("expired restrictions released", "released", released, "duration", time.Since(start))
	return released, nil
}

func (runner *DaemonRunner) runDaemons(ctx context.Context) {
	if !shouldRun(runner.configService, expiryRunKey, runner.interval, runner.now()) {
		return
	}
	if _, err := runner.RunExpiry(ctx); err != nil {
		monitoring.Alert("expiry daemon failed", err)
	}
}
