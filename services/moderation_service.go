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

	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/pkg/errors"
)

type moderationService struct {
	policyResolver          shared.PolicyResolver
	scanService             shared.ScanService
	governanceActionService shared.GovernanceActionService
}

func NewModerationService(policyResolver shared.PolicyResolver, scanService shared.ScanService, governanceActionService shared.GovernanceActionService) *moderationService {
	return &moderationService{
		policyResolver:          policyResolver,
		scanService:             scanService,
		governanceActionService: governanceActionService,
	}
}

// Process runs the whole pipeline for one piece of content: scan, store, then govern.
func (s *moderationService) Process(ctx context.Context, content shared.ContentRef, ownerID string, trigger dtos.ScanTrigger) (shared.ModerationResult, error) {
	policy, err := s.policyResolver.GetPolicy(ownerID)
	if err != nil {
		return shared.ModerationResult{}, errors.Wrap(err, "could not resolve policy")
	}
	if trigger == dtos.ScanTriggerAutomatic && !policy.AutoScanEnabled {
		slog.Debug("automatic scan disabled by policy", "ownerId", ownerID, "contentKind", content.Kind(), "contentId", content.ID())
		return shared.ModerationResult{Skipped: true}, nil
	}

	scan, err := s.scanService.ScanAndStore(ctx, content, ownerID, trigger)
	if err != nil {
		return shared.ModerationResult{}, err
	}
	return s.Govern(ctx, scan)
}

// Govern evaluates the owner's policy against a stored scan. The returned result always carries the scan,
// so a caller can retry this step alone.
func (s *moderationService) Govern(ctx context.Context, scan shared.ScanResult) (shared.ModerationResult, error) {
	result := shared.ModerationResult{Scan: scan}
	if scan.Failed() {
		return result, nil
	}

	actions, err := s.governanceActionService.Evaluate(ctx, scan.Record, scan.Violations)
	result.Actions = actions
	if err != nil {
		return result, errors.Wrap(err, "could not evaluate governance actions")
	}
	return result, nil
}
