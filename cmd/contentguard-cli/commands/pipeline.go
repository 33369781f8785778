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

package commands

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/contentguard/accesscontrol"
	"github.com/l3montree-dev/contentguard/daemons"
	"github.com/l3montree-dev/contentguard/database"
	"github.com/l3montree-dev/contentguard/database/repositories"
	"github.com/l3montree-dev/contentguard/detection"
	"github.com/l3montree-dev/contentguard/services"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/pkg/errors"
)

// pipeline is the hand wired counterpart of the fx graph of the server.
type pipeline struct {
	db     shared.DB
	pool   *pgxpool.Pool
	broker shared.PubSubBroker

	registry                *detection.PatternRegistry
	ruleService             shared.DetectionRuleService
	moderationService       shared.ModerationService
	reviewQueueService      shared.ReviewQueueService
	governanceActionService shared.GovernanceActionService
	daemonRunner            *daemons.DaemonRunner
}

func connect() (shared.DB, *pgxpool.Pool, shared.ModerationConfig, error) {
	shared.LoadConfig() // nolint
	cfg, err := shared.LoadModerationConfig()
	if err != nil {
		return nil, nil, cfg, errors.Wrap(err, "could not load config")
	}
	db, pool := database.NewConnection(database.GetPoolConfigFromEnv())
	return db, pool, cfg, nil
}

func newPipeline() (*pipeline, error) {
	db, pool, cfg, err := connect()
	if err != nil {
		return nil, err
	}

	broker, err := database.BrokerFactory(pool)
	if err != nil {
		return nil, errors.Wrap(err, "could not create broker")
	}

	accessControl, err := accesscontrol.NewAccessControl(db, broker, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "could not create access control")
	}

	ruleRepository := repositories.NewDetectionRuleRepository(db)
	scanRecordRepository := repositories.NewScanRecordRepository(db)
	actionRepository := repositories.NewGovernanceActionRepository(db)
	configService := services.NewConfigService(repositories.NewConfigRepository(db))

	registry := services.NewPatternRegistry(ruleRepository)
	notificationSink := services.NewNotificationSink(cfg)
	policyService := services.NewPolicyService(repositories.NewPolicyConfigRepository(db), broker, cfg)
	scanService := services.NewScanService(registry, services.NewScanner(cfg), scanRecordRepository, repositories.NewViolationRepository(db))
	governanceActionService := services.NewGovernanceActionService(actionRepository, scanRecordRepository, ruleRepository, policyService, notificationSink, cfg)

	return &pipeline{
		db:                      db,
		pool:                    pool,
		broker:                  broker,
		registry:                registry,
		ruleService:             services.NewDetectionRuleService(ruleRepository, registry, broker),
		moderationService:       services.NewModerationService(policyService, scanService, governanceActionService),
		reviewQueueService:      services.NewReviewQueueService(actionRepository, scanRecordRepository, governanceActionService, accessControl, notificationSink, cfg),
		governanceActionService: governanceActionService,
		// the cli never runs the ticker, leadership does not matter here
		daemonRunner: daemons.NewDaemonRunner(configService, broker, services.NewDatabaseLeaderElector(configService), governanceActionService, policyService, registry, cfg),
	}, nil
}

func (p *pipeline) Close() {
	if closer, ok := p.broker.(interface{ Close() }); ok {
		closer.Close()
	}
	p.pool.Close()
}
