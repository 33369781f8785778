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
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/database/repositories"
	"github.com/l3montree-dev/contentguard/detection"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/integrationtestutil"
	"github.com/l3montree-dev/contentguard/mocks"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db            shared.DB
	ruleRepo      shared.DetectionRuleRepository
	scanRepo      shared.ScanRecordRepository
	violationRepo shared.ViolationRepository
	actionRepo    shared.GovernanceActionRepository
	policies      *policyService
	registry      *detection.PatternRegistry
	scans         *scanService
	actions       *governanceActionService
	reviews       *reviewQueueService
	moderation    *moderationService
	sink          *mocks.NotificationSink
	rbac          *mocks.AccessControl
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	db := integrationtestutil.InitSQLiteDatabase(t)
	cfg := shared.DefaultModerationConfig()

	env := testEnv{
		db:            db,
		ruleRepo:      repositories.NewDetectionRuleRepository(db),
		scanRepo:      repositories.NewScanRecordRepository(db),
		violationRepo: repositories.NewViolationRepository(db),
		actionRepo:    repositories.NewGovernanceActionRepository(db),
		sink:          mocks.NewNotificationSink(t),
		rbac:          mocks.NewAccessControl(t),
	}
	env.policies = NewPolicyService(repositories.NewPolicyConfigRepository(db), nil, cfg)
	env.registry = detection.NewPatternRegistry(env.ruleRepo)
	env.scans = NewScanService(env.registry, detection.NewScanner(cfg.Scanner.MaxScanChars), env.scanRepo, env.violationRepo)
	env.actions = NewGovernanceActionService(env.actionRepo, env.scanRepo, env.ruleRepo, env.policies, env.sink, cfg)
	env.reviews = NewReviewQueueService(env.actionRepo, env.scanRepo, env.actions, env.rbac, env.sink, cfg)
	env.moderation = NewModerationService(env.policies, env.scans, env.actions)
	return env
}

// allowNotifications accepts every notification. Register specific expectations before calling it.
func (env testEnv) allowNotifications() {
	env.sink.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (env testEnv) seedRule(t *testing.T, name string, expression string, severity dtos.Severity, autoQuarantine bool) models.DetectionRule {
	t.Helper()
	rule := models.DetectionRule{
		Name:           name,
		Slug:           name,
		Kind:           dtos.RuleKindRegex,
		Expression:     expression,
		Severity:       severity,
		Active:         true,
		AutoQuarantine: autoQuarantine,
		MinimumMatches: 1,
		Version:        1,
	}
	require.NoError(t, env.ruleRepo.Create(nil, &rule))
	_, err := env.registry.Refresh()
	require.NoError(t, err)
	return rule
}

func (env testEnv) seedSSNRule(t *testing.T) models.DetectionRule {
	return env.seedRule(t, "ssn", `\d{3}-\d{2}-\d{4}`, dtos.SeverityHigh, false)
}

func (env testEnv) actionsOfKind(t *testing.T, kind dtos.ActionKind) []models.GovernanceAction {
	t.Helper()
	var actions []models.GovernanceAction
	require.NoError(t, env.db.Where("kind = ?", kind).Order("created_at ASC").Find(&actions).Error)
	return actions
}

func (env testEnv) reviewOf(t *testing.T, scanID uuid.UUID) models.GovernanceAction {
	t.Helper()
	var review models.GovernanceAction
	require.NoError(t, env.db.Where("kind = ? AND scan_record_id = ?", dtos.ActionKindRequireReview, scanID).First(&review).Error)
	return review
}
