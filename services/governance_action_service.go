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
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/monitoring"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/l3montree-dev/contentguard/utils"
	"gorm.io/gorm"
)

const (
	systemActor = "system"

	defaultNotificationTimeout = 5 * time.Second
)

type governanceActionService struct {
	actionRepository     shared.GovernanceActionRepository
	scanRecordRepository shared.ScanRecordRepository
	ruleRepository       shared.DetectionRuleRepository
	policyResolver       shared.PolicyResolver
	notificationSink     shared.NotificationSink

	notificationTimeout time.Duration
	restrictionLocks    *keyedMutex
	now                 func() time.Time
}

func NewGovernanceActionService(
	actionRepository shared.GovernanceActionRepository,
	scanRecordRepository shared.ScanRecordRepository,
	ruleRepository shared.DetectionRuleRepository,
	policyResolver shared.PolicyResolver,
	notificationSink shared.NotificationSink,
	cfg shared.ModerationConfig,
) *governanceActionService {
	timeout := cfg.Webhook.Timeout
	if timeout <= 0 {
		timeout = defaultNotificationTimeout
	}
	return &governanceActionService{
		actionRepository:     actionRepository,
		scanRecordRepository: scanRecordRepository,
		ruleRepository:       ruleRepository,
		policyResolver:       policyResolver,
		notificationSink:     notificationSink,
		notificationTimeout:  timeout,
		restrictionLocks:     newKeyedMutex(),
		now:                  time.Now,
	}
}

func (s *governanceActionService) notify(ctx context.Context, ownerID string, event dtos.NotificationEvent, payload map[string]any) bool {
	return deliverNotification(ctx, s.notificationSink, s.notificationTimeout, ownerID, event, payload)
}

func (s *governanceActionService) record(action *models.GovernanceAction) error {
	if err := s.actionRepository.Create(nil, action); err != nil {
		return err
	}
	monitoring.GovernanceActionsTotal.WithLabelValues(string(action.Kind)).Inc()
	return nil
}

func (s *governanceActionService) recordNotification(ctx context.Context, scan models.ScanRecord, target *uuid.UUID, event dtos.NotificationEvent, send bool, payload map[string]any) (models.GovernanceAction, error) {
	delivered := false
	if send {
		delivered = s.notify(ctx, scan.OwnerID, event, payload)
	}
	action := models.GovernanceAction{
		ScanRecordID:   scan.ID,
		TargetActionID: target,
		Kind:           dtos.ActionKindNotify,
		Status:         dtos.ActionStatusApproved,
		Automated:      true,
		TriggeredBy:    systemActor,
		Reason:         string(event),
	}
	action.SetPayload(dtos.NewNotifyPayload(event, delivered))
	return action, s.record(&action)
}

// autoQuarantineRules returns the ids of matched rules which demand a quarantine on their own.
func (s *governanceActionService) autoQuarantineRules(violations []models.Violation) ([]string, error) {
	ids := utils.UniqBy(utils.Map(violations, func(v models.Violation) uuid.UUID { return v.RuleID }), func(id uuid.UUID) uuid.UUID { return id })
	rules, err := s.ruleRepository.List(ids)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, r := range rules {
		if r.AutoQuarantine {
			out = append(out, r.ID.String())
		}
	}
	return out, nil
}

// createRestriction creates a quarantine or sharing block unless the content already has an active one.
// It returns false when an existing restriction suppressed the creation.
func (s *governanceActionService) createRestriction(ctx context.Context, scan models.ScanRecord, action models.GovernanceAction) (models.GovernanceAction, bool, error) {
	key := models.ActiveKeyFor(scan, action.Kind)
	unlock := s.restrictionLocks.Lock(key)
	defer unlock()

	now := s.now()
	existing, err := s.actionRepository.FindByActiveKey(nil, key)
	switch {
	case err == nil && existing.IsExpired(now):
		if _, err := s.Release(ctx, existing, systemActor, dtos.ReleaseCauseExpired); err != nil && !errors.Is(err, shared.ErrNotActive) {
			return models.GovernanceAction{}, false, err
		}
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return models.GovernanceAction{}, false, err
	}

	action.ActiveKey = utils.Ptr(key)
	created, err := s.actionRepository.CreateIfNotActive(nil, &action)
	if err != nil {
		return models.GovernanceAction{}, false, err
	}
	if !created {
		// another instance won the race
		return action, false, nil
	}
	monitoring.GovernanceActionsTotal.WithLabelValues(string(action.Kind)).Inc()
	return action, true, nil
}

func (s *governanceActionService) hasReview(scanID uuid.UUID) (bool, error) {
	actions, err := s.actionRepository.FindByScanRecord(nil, scanID)
	if err != nil {
		return false, err
	}
	return utils.Any(actions, func(a models.GovernanceAction) bool {
		return a.Kind == dtos.ActionKindRequireReview
	}), nil
}

// requireReview opens a review for the scan unless one exists.
func (s *governanceActionService) requireReview(scan models.ScanRecord, violationCount int) (models.GovernanceAction, bool, error) {
	unlock := s.restrictionLocks.Lock("review:" + scan.ID.String())
	defer unlock()

	exists, err := s.hasReview(scan.ID)
	if err != nil || exists {
		return models.GovernanceAction{}, false, err
	}
	review := models.GovernanceAction{
		ScanRecordID: scan.ID,
		Kind:         dtos.ActionKindRequireReview,
		Status:       dtos.ActionStatusPending,
		Automated:    true,
		TriggeredBy:  systemActor,
		Reason:       fmt.Sprintf("risk score %.2f reached the review threshold", scan.RiskScore),
	}
	review.SetPayload(dtos.NewReviewPayload(scan.RiskLevel(), violationCount))
	if err := s.record(&review); err != nil {
		return models.GovernanceAction{}, false, err
	}
	return review, true, nil
}

// Evaluate applies the owner's policy to a stored scan. Running it twice for the same scan
// never creates a second restriction or review, notifications may repeat.
func (s *governanceActionService) Evaluate(ctx context.Context, scan models.ScanRecord, violations []models.Violation) ([]models.GovernanceAction, error) {
	if scan.Status == dtos.ScanStatusFailed || len(violations) == 0 {
		return nil, nil
	}

	policy, err := s.policyResolver.GetPolicy(scan.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("could not resolve policy of %s: %w", scan.OwnerID, err)
	}

	var actions []models.GovernanceAction
	now := s.now()
	level := scan.RiskLevel()

	if policy.AutoQuarantineCritical {
		ruleIDs, err := s.autoQuarantineRules(violations)
		if err != nil {
			return actions, fmt.Errorf("could not load matched rules: %w", err)
		}
		if level == dtos.RiskLevelCritical || len(ruleIDs) > 0 {
			quarantine := models.GovernanceAction{
				ScanRecordID: scan.ID,
				Kind:         dtos.ActionKindQuarantine,
				Status:       dtos.ActionStatusApproved,
				Automated:    true,
				TriggeredBy:  systemActor,
				Reason:       fmt.Sprintf("risk score %.2f", scan.RiskScore),
				Expiry:       utils.Ptr(now.AddDate(0, 0, policy.QuarantineDays)),
			}
			if len(ruleIDs) > 0 && level != dtos.RiskLevelCritical {
				quarantine.Reason = "matched an auto quarantine rule"
			}
			quarantine.SetPayload(dtos.NewQuarantinePayload(policy.QuarantineDays, ruleIDs))

			quarantine, created, err := s.createRestriction(ctx, scan, quarantine)
			if err != nil {
				return actions, fmt.Errorf("could not quarantine content: %w", err)
			}
			if created {
				actions = append(actions, quarantine)
				n, err := s.recordNotification(ctx, scan, utils.Ptr(quarantine.ID), dtos.NotificationContentQuarantined, policy.NotifyOnQuarantine, map[string]any{
					"scanId":  scan.ID.String(),
					"expiry":  quarantine.Expiry,
					"reason":  quarantine.Reason,
					"content": scan.ContentKind + ":" + scan.ContentID,
				})
				if err != nil {
					return actions, err
				}
				actions = append(actions, n)
			}
		}
	}

	if policy.AutoBlockSharing && scan.RiskScore >= dtos.HighRiskThreshold {
		block := models.GovernanceAction{
			ScanRecordID: scan.ID,
			Kind:         dtos.ActionKindBlockSharing,
			Status:       dtos.ActionStatusApproved,
			Automated:    true,
			TriggeredBy:  systemActor,
			Reason:       fmt.Sprintf("risk score %.2f", scan.RiskScore),
		}
		block.SetPayload(dtos.NewBlockSharingPayload(scan.RiskScore))

		block, created, err := s.createRestriction(ctx, scan, block)
		if err != nil {
			return actions, fmt.Errorf("could not block sharing: %w", err)
		}
		if created {
			actions = append(actions, block)
			n, err := s.recordNotification(ctx, scan, utils.Ptr(block.ID), dtos.NotificationSharingBlocked, policy.NotifyOnViolation, map[string]any{
				"scanId":    scan.ID.String(),
				"riskScore": scan.RiskScore,
			})
			if err != nil {
				return actions, err
			}
			actions = append(actions, n)
		}
	}

	n, err := s.recordNotification(ctx, scan, nil, dtos.NotificationViolationDetected, policy.NotifyOnViolation, map[string]any{
		"scanId":          scan.ID.String(),
		"violationCount":  len(violations),
		"riskScore":       scan.RiskScore,
		"highestSeverity": scan.HighestSeverity,
	})
	if err != nil {
		return actions, err
	}
	actions = append(actions, n)

	if scan.RiskScore >= policy.SensitivityThreshold.ReviewThreshold() {
		review, created, err := s.requireReview(scan, len(violations))
		if err != nil {
			return actions, err
		}
		if created {
			actions = append(actions, review)
		}
	}

	slog.Info("governance evaluated", "scanId", scan.ID, "riskScore", scan.RiskScore, "actions", len(actions))
	return actions, nil
}

func newRelease(target models.GovernanceAction, releasedBy string, cause dtos.ReleaseCause) models.GovernanceAction {
	release := models.GovernanceAction{
		ScanRecordID:   target.ScanRecordID,
		TargetActionID: utils.Ptr(target.ID),
		Kind:           dtos.ActionKindRelease,
		Status:         dtos.ActionStatusApproved,
		Automated:      cause == dtos.ReleaseCauseExpired,
		TriggeredBy:    releasedBy,
		Reason:         fmt.Sprintf("%s released (%s)", target.Kind, cause),
	}
	release.SetPayload(dtos.NewReleasePayload(cause, target.Kind))
	return release
}

// releaseInTx clears the active key and records the release. It returns shared.ErrNotActive
// when the restriction was released already.
func (s *governanceActionService) releaseInTx(tx shared.DB, target models.GovernanceAction, releasedBy string, cause dtos.ReleaseCause) (models.GovernanceAction, error) {
	release := newRelease(target, releasedBy, cause)
	cleared, err := s.actionRepository.ClearActiveKey(tx, target.ID)
	if err != nil {
		return models.GovernanceAction{}, err
	}
	if !cleared {
		return models.GovernanceAction{}, shared.ErrNotActive
	}
	if err := s.actionRepository.Create(tx, &release); err != nil {
		return models.GovernanceAction{}, err
	}
	return release, nil
}

// Release ends a restriction by recording a release action which points to it.
func (s *governanceActionService) Release(ctx context.Context, target models.GovernanceAction, releasedBy string, cause dtos.ReleaseCause) (models.GovernanceAction, error) {
	var release models.GovernanceAction
	err := s.actionRepository.Transaction(func(tx shared.DB) error {
		var err error
		release, err = s.releaseInTx(tx, target, releasedBy, cause)
		return err
	})
	if err != nil {
		return models.GovernanceAction{}, err
	}

	scan, err := s.scanRecordRepository.Read(target.ScanRecordID)
	if err != nil {
		slog.Warn("could not load scan of released action", "actionId", target.ID, "err", err)
		monitoring.GovernanceActionsTotal.WithLabelValues(string(release.Kind)).Inc()
		return release, nil
	}
	s.NotifyReleased(ctx, scan, []models.GovernanceAction{release})
	return release, nil
}

// NotifyReleased counts and announces release actions once their transaction committed.
func (s *governanceActionService) NotifyReleased(ctx context.Context, scan models.ScanRecord, releases []models.GovernanceAction) {
	if len(releases) == 0 {
		return
	}
	monitoring.GovernanceActionsTotal.WithLabelValues(string(dtos.ActionKindRelease)).Add(float64(len(releases)))

	policy, err := s.policyResolver.GetPolicy(scan.OwnerID)
	if err != nil {
		slog.Warn("could not load policy for release notification", "ownerId", scan.OwnerID, "err", err)
		return
	}
	for _, release := range releases {
		payload := release.GetPayload().Release
		if payload == nil {
			continue
		}
		if _, err := s.recordNotification(ctx, scan, release.TargetActionID, dtos.NotificationContentReleased, policy.NotifyOnQuarantine, map[string]any{
			"scanId": scan.ID.String(),
			"kind":   payload.Target,
			"cause":  payload.Cause,
		}); err != nil {
			slog.Warn("could not record release notification", "actionId", release.TargetActionID, "err", err)
		}
	}
}

// ReleaseRestrictionsInTx releases every active quarantine and sharing block of the scanned content inside tx.
// It sends nothing, hand the returned releases to NotifyReleased after the commit.
func (s *governanceActionService) ReleaseRestrictionsInTx(tx shared.DB, scan models.ScanRecord, releasedBy string, cause dtos.ReleaseCause) ([]models.GovernanceAction, error) {
	keys := []string{
		models.ActiveKeyFor(scan, dtos.ActionKindQuarantine),
		models.ActiveKeyFor(scan, dtos.ActionKindBlockSharing),
	}
	restrictions, err := s.actionRepository.FindActiveRestrictions(tx, keys, s.now())
	if err != nil {
		return nil, err
	}

	releases := make([]models.GovernanceAction, 0, len(restrictions))
	for _, r := range restrictions {
		release, err := s.releaseInTx(tx, r, releasedBy, cause)
		if errors.Is(err, shared.ErrNotActive) {
			continue
		}
		if err != nil {
			return nil, err
		}
		releases = append(releases, release)
	}
	return releases, nil
}

// ReleaseRestrictions releases every active quarantine and sharing block of the scanned content.
// Either all of them are released or none.
func (s *governanceActionService) ReleaseRestrictions(ctx context.Context, scanID uuid.UUID, releasedBy string, cause dtos.ReleaseCause) ([]models.GovernanceAction, error) {
	scan, err := s.scanRecordRepository.Read(scanID)
	if err != nil {
		return nil, translateNotFound(err, "scan", scanID)
	}

	var releases []models.GovernanceAction
	err = s.actionRepository.Transaction(func(tx shared.DB) error {
		var err error
		releases, err = s.ReleaseRestrictionsInTx(tx, scan, releasedBy, cause)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.NotifyReleased(ctx, scan, releases)
	return releases, nil
}

// ExtendExpiry adds days to the expiry of a restriction, or sets one days from now.
func (s *governanceActionService) ExtendExpiry(ctx context.Context, actionID uuid.UUID, days int, reviewer string) (models.GovernanceAction, error) {
	if days < 1 {
		return models.GovernanceAction{}, fmt.Errorf("days must be positive, got %d", days)
	}
	action, err := s.actionRepository.Read(actionID)
	if err != nil {
		return action, translateNotFound(err, "governance action", actionID)
	}
	now := s.now()
	if !action.Kind.IsRestriction() || !action.IsActive(now) {
		return action, shared.ErrNotActive
	}

	if action.Expiry == nil {
		action.Expiry = utils.Ptr(now.AddDate(0, 0, days))
	} else {
		action.Expiry = utils.Ptr(action.Expiry.AddDate(0, 0, days))
	}
	action.ReviewedBy = utils.Ptr(reviewer)
	action.ReviewedAt = utils.Ptr(now)

	if err := s.actionRepository.Save(nil, &action); err != nil {
		return action, err
	}
	slog.Info("restriction extended", "actionId", action.ID, "expiry", action.Expiry, "reviewer", reviewer)
	return action, nil
}

// ReleaseExpired releases every restriction whose expiry passed. It returns the number of releases.
func (s *governanceActionService) ReleaseExpired(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.actionRepository.FindExpired(nil, now)
	if err != nil {
		return 0, err
	}

	released := 0
	for _, action := range expired {
		if err := ctx.Err(); err != nil {
			return released, err
		}
		_, err := s.Release(ctx, action, systemActor, dtos.ReleaseCauseExpired)
		if errors.Is(err, shared.ErrNotActive) {
			continue
		}
		if err != nil {
			return released, fmt.Errorf("could not release action %s: %w", action.ID, err)
		}
		released++
	}
	return released, nil
}

func (s *governanceActionService) ListByScan(scanID uuid.UUID) ([]models.GovernanceAction, error) {
	if _, err := s.scanRecordRepository.Read(scanID); err != nil {
		return nil, translateNotFound(err, "scan", scanID)
	}
	return s.actionRepository.FindByScanRecord(nil, scanID)
}

func (s *governanceActionService) Get(id uuid.UUID) (models.GovernanceAction, error) {
	action, err := s.actionRepository.Read(id)
	if err != nil {
		return action, translateNotFound(err, "governance action", id)
	}
	return action, nil
}
