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
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/contentguard/shared"
)

const (
	leaderElectionKey = "leaderElection"
	leaseDuration     = 90 * time.Second
)

type leaderElectionConfig struct {
	LeaderID string `json:"leaderId"`
	LastPing int64  `json:"lastPing"`
}

type databaseLeaderElector struct {
	leaderElectorID string
	configService   shared.ConfigService
	isLeader        atomic.Bool // written by the election loop
	now             func() time.Time
}

func NewDatabaseLeaderElector(configService shared.ConfigService) *databaseLeaderElector {
	return &databaseLeaderElector{
		configService:   configService,
		leaderElectorID: uuid.New().String(),
		now:             time.Now,
	}
}

func randomNumberBetween(min, max int) int {
	return rand.Intn(max-min) + min // #nosec
}

// Run campaigns until the context is done. The leader renews its lease on every round,
// followers take over once the lease is older than leaseDuration.
func (e *databaseLeaderElector) Run(ctx context.Context) {
	for {
		isLeader, err := e.checkIfLeader()
		if err != nil {
			slog.Error("could not check if leader", "err", err)
		}
		e.isLeader.Store(isLeader)

		// jitter so followers do not race for an expired lease
		wait := time.Duration(randomNumberBetween(int(leaseDuration/3/time.Second), int(leaseDuration/2/time.Second))) * time.Second
		select {
		case <-ctx.Done():
			e.isLeader.Store(false)
			return
		case <-time.After(wait):
		}
	}
}

func (e *databaseLeaderElector) IsLeader() bool {
	return e.isLeader.Load()
}

func (e *databaseLeaderElector) makeLeader() error {
	return e.configService.SetJSONConfig(leaderElectionKey, leaderElectionConfig{
		LeaderID: e.leaderElectorID,
		LastPing: e.now().Unix(),
	})
}

func (e *databaseLeaderElector) checkIfLeader() (bool, error) {
	var config leaderElectionConfig

	err := e.configService.GetJSONConfig(leaderElectionKey, &config)
	if err != nil {
		slog.Info("no leader elected yet, taking over", "err", err)
		return true, e.makeLeader()
	}

	if config.LeaderID == e.leaderElectorID {
		return true, e.makeLeader()
	}

	if e.now().Unix()-config.LastPing > int64(leaseDuration/time.Second) {
		slog.Info("leader lease expired, taking over", "previousLeader", config.LeaderID)
		return true, e.makeLeader()
	}

	return false, nil
}
