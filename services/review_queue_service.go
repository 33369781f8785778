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
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/monitoring"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/l3montree-dev/contentguard/statemachine"
	"github.com/l3montree-dev/contentguard/utils"
	"github.com/pkg/errors"
)

const (
	pendingDayWeight        = 5.0
	maxPendingWeight        = 50.0
	perViolationWeight      = 10.0
	maxViolationCountWeight = 30.0
)

type reviewQueueService struct {
	actionRepository        shared.GovernanceActionRepository
	scanRecordRepository    shared.ScanRecordRepository
	governanceActionService shared.GovernanceActionService
	accessControl           shared.AccessControl
	notificationSink        shared.NotificationSink

	notificationTimeout time.Duration
	now                 func() time.Time
}

func NewReviewQueueService(
	actionRepository shared.GovernanceActionRepository,
	scanRecordRepository shared.ScanRecordRepository,
	governanceActionService shared.GovernanceActionService,
	accessControl shared.AccessControl,
	notificationSink shared.NotificationSink,
	cfg shared.ModerationConfig,
) *reviewQueueService {
	timeout := cfg.Webhook.Timeout
	if timeout <= 0 {
		timeout = defaultNotificationTimeout
	}
	return &reviewQueueService{
		actionRepository:        actionRepository,
		scanRecordRepository:    scanRecordRepository,
		governanceActionService: governanceActionService,
		accessControl:           accessControl,
		notificationSink:        notificationSink,
		notificationTimeout:     timeout,
		now:                     time.Now,
	}
}

// Priority ranks a review. Older, riskier and more violating scans come first.
func Priority(scan models.ScanRecord, createdAt, now time.Time) (float64, int) {
	daysPending := max(int(now.Sub(createdAt).Hours()/24), 0)

	p := 0.0
	if scan.HighestSeverity != nil {
		p += scan.HighestSeverity.Weight()
	}
	p += min(float64(daysPending)*pendingDayWeight, maxPendingWeight)
	p += scan.RiskLevel().QueueWeight()
	p += min(perViolationWeight*float64(max(scan.ViolationCount-1, 0)), maxViolationCountWeight)
	return p, daysPending
}

func (s *reviewQueueService) annotate(actions []models.GovernanceAction) []shared.ReviewQueueItem {
	now := s.now()
	items := make([]shared.ReviewQueueItem, 0, len(actions))
	for _, a := range actions {
		priority, days := Priority(a.ScanRecord, a.CreatedAt, now)
		items = append(items, shared.ReviewQueueItem{
			Action:      a,
			Priority:    priority,
			DaysPending: days,
			RiskLevel:   a.ScanRecord.RiskLevel(),
		})
	}
	slices.SortStableFunc(items, func(a, b shared.ReviewQueueItem) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		if c := a.Action.CreatedAt.Compare(b.Action.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Action.ID.String(), b.Action.ID.String())
	})
	return items
}

func (s *reviewQueueService) PendingReviews(filter dtos.ReviewQueueFilter) ([]shared.ReviewQueueItem, error) {
	actions, err := s.actionRepository.FindPendingReviews(nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load pending reviews")
	}
	items := s.annotate(actions)
	return utils.Filter(items, func(item shared.ReviewQueueItem) bool {
		if filter.MinPriority != nil && item.Priority < *filter.MinPriority {
			return false
		}
		if filter.RiskLevel != nil && item.RiskLevel != *filter.RiskLevel {
			return false
		}
		return true
	}), nil
}

func (s *reviewQueueService) EscalatedReviews() ([]shared.ReviewQueueItem, error) {
	actions, err := s.actionRepository.FindEscalatedReviews(nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load escalated reviews")
	}
	return s.annotate(actions), nil
}

func (s *reviewQueueService) readReview(actionID uuid.UUID) (models.GovernanceAction, error) {
	action, err := s.actionRepository.Read(actionID)
	if err != nil {
		return action, translateNotFound(err, "review", actionID)
	}
	if action.Kind != dtos.ActionKindRequireReview {
		return action, fmt.Errorf("%w: %s is not a review", statemachine.ErrInvalidTransition, action.Kind)
	}
	return action, nil
}

// Approve closes the review and lifts every restriction of the reviewed content.
// The decision, the releases and the approval record commit together or not at all.
func (s *reviewQueueService) Approve(ctx context.Context, actionID uuid.UUID, reviewer string, notes string) (models.GovernanceAction, error) {
	action, err := s.readReview(actionID)
	if err != nil {
		return action, err
	}

	if action.Status == dtos.ActionStatusRequiresReview {
		allowed, err := s.accessControl.IsAllowed(reviewer, shared.ObjectReview, shared.ActionApproveEscalated)
		if err != nil {
			return action, errors.Wrap(err, "could not check reviewer role")
		}
		if !allowed {
			return action, shared.ErrInsufficientRole
		}
	}

	scan, err := s.scanRecordRepository.Read(action.ScanRecordID)
	if err != nil {
		return action, translateNotFound(err, "scan", action.ScanRecordID)
	}

	stored := action
	now := s.now()
	if err := statemachine.Transition(&action, dtos.ActionStatusApproved, reviewer, now); err != nil {
		return stored, err
	}

	approve := models.GovernanceAction{
		ScanRecordID:   action.ScanRecordID,
		TargetActionID: utils.Ptr(action.ID),
		Kind:           dtos.ActionKindApprove,
		Status:         dtos.ActionStatusApproved,
		TriggeredBy:    reviewer,
		ReviewedBy:     utils.Ptr(reviewer),
		ReviewedAt:     utils.Ptr(now),
		Reason:         notes,
	}
	approve.SetPayload(dtos.NewApprovePayload(notes))

	var releases []models.GovernanceAction
	err = s.actionRepository.Transaction(func(tx shared.DB) error {
		saved, err := s.actionRepository.SaveReviewDecision(tx, &action, stored.Status)
		if err != nil {
			return errors.Wrap(err, "could not approve review")
		}
		if !saved {
			return fmt.Errorf("%w: review %s was decided concurrently", statemachine.ErrInvalidTransition, action.ID)
		}
		releases, err = s.governanceActionService.ReleaseRestrictionsInTx(tx, scan, reviewer, dtos.ReleaseCauseApproved)
		if err != nil {
			return errors.Wrap(err, "could not release restrictions")
		}
		if err := s.actionRepository.Create(tx, &approve); err != nil {
			return errors.Wrap(err, "could not record approval")
		}
		return nil
	})
	if err != nil {
		return stored, err
	}

	monitoring.GovernanceActionsTotal.WithLabelValues(string(approve.Kind)).Inc()
	s.governanceActionService.NotifyReleased(ctx, scan, releases)

	slog.Info("review approved", "actionId", action.ID, "reviewer", reviewer, "released", len(releases))
	return action, nil
}

// RequireUserAction keeps the review open and asks the owner to act on the content.
func (s *reviewQueueService) RequireUserAction(ctx context.Context, actionID uuid.UUID, reviewer string, required dtos.UserActionKind, notes string) (models.GovernanceAction, error) {
	action, err := s.readReview(actionID)
	if err != nil {
		return action, err
	}
	if action.Status == dtos.ActionStatusApproved {
		return action, fmt.Errorf("%w: review is already approved", statemachine.ErrInvalidTransition)
	}

	scan, err := s.scanRecordRepository.Read(action.ScanRecordID)
	if err != nil {
		return action, translateNotFound(err, "scan", action.ScanRecordID)
	}

	now := s.now()
	action.ReviewedBy = utils.Ptr(reviewer)
	action.ReviewedAt = utils.Ptr(now)
	if err := s.actionRepository.Save(nil, &action); err != nil {
		return action, errors.Wrap(err, "could not update review")
	}

	notification := models.GovernanceAction{
		ScanRecordID:   action.ScanRecordID,
		TargetActionID: utils.Ptr(action.ID),
		Kind:           dtos.ActionKindNotify,
		Status:         dtos.ActionStatusApproved,
		TriggeredBy:    reviewer,
		Reason:         string(dtos.NotificationUserActionRequired),
	}
	notification.SetPayload(dtos.NewUserActionPayload(required, notes))
	if err := s.actionRepository.Create(nil, &notification); err != nil {
		return action, errors.Wrap(err, "could not record user action request")
	}
	monitoring.GovernanceActionsTotal.WithLabelValues(string(notification.Kind)).Inc()

	deliverNotification(ctx, s.notificationSink, s.notificationTimeout, scan.OwnerID, dtos.NotificationUserActionRequired, map[string]any{
		"scanId":   scan.ID.String(),
		"required": required,
		"notes":    notes,
	})
	return action, nil
}

// Escalate hands the review to a senior reviewer. Restrictions stay in place.
func (s *reviewQueueService) Escalate(ctx context.Context, actionID uuid.UUID, reviewer string, notes string) (models.GovernanceAction, error) {
	action, err := s.readReview(actionID)
	if err != nil {
		return action, err
	}
	from := action.Status
	if err := statemachine.Transition(&action, dtos.ActionStatusRequiresReview, reviewer, s.now()); err != nil {
		return action, err
	}

	payload := action.GetPayload()
	payload.Escalation = &dtos.EscalationPayload{Notes: notes, Level: action.EscalationLevel}
	action.SetPayload(payload)

	saved, err := s.actionRepository.SaveReviewDecision(nil, &action, from)
	if err != nil {
		return action, errors.Wrap(err, "could not escalate review")
	}
	if !saved {
		return action, fmt.Errorf("%w: review %s was decided concurrently", statemachine.ErrInvalidTransition, action.ID)
	}
	slog.Info("review escalated", "actionId", action.ID, "level", action.EscalationLevel, "reviewer", reviewer)
	return action, nil
}

// BulkApprove approves every id on its own. A failing id does not stop the others.
func (s *reviewQueueService) BulkApprove(ctx context.Context, actionIDs []uuid.UUID, reviewer string, notes string) []dtos.BulkItemResult {
	results := make([]dtos.BulkItemResult, 0, len(actionIDs))
	for _, id := range actionIDs {
		if _, err := s.Approve(ctx, id, reviewer, notes); err != nil {
			results = append(results, dtos.BulkItemResult{ID: id, Success: false, Error: err.Error()})
			continue
		}
		results = append(results, dtos.BulkItemResult{ID: id, Success: true})
	}
	return results
}
