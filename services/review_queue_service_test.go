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
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/mocks"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/l3montree-dev/contentguard/statemachine"
	"github.com/l3montree-dev/contentguard/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPriority(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("should add up severity, age, risk level and violation count", func(t *testing.T) {
		scan := models.ScanRecord{HighestSeverity: utils.Ptr(dtos.SeverityHigh), RiskScore: 85, ViolationCount: 3}
		priority, days := Priority(scan, now.Add(-3*24*time.Hour), now)
		// 50 + 15 + 30 + 20
		assert.Equal(t, 115.0, priority)
		assert.Equal(t, 3, days)
	})

	t.Run("should cap the age and violation count contributions", func(t *testing.T) {
		scan := models.ScanRecord{HighestSeverity: utils.Ptr(dtos.SeverityLow), RiskScore: 10, ViolationCount: 20}
		priority, days := Priority(scan, now.Add(-30*24*time.Hour), now)
		// 10 + 50 + 0 + 30
		assert.Equal(t, 90.0, priority)
		assert.Equal(t, 30, days)
	})

	t.Run("should handle a scan without severity", func(t *testing.T) {
		priority, days := Priority(models.ScanRecord{}, now, now)
		assert.Equal(t, 0.0, priority)
		assert.Equal(t, 0, days)
	})
}

func processSSN(t *testing.T, env testEnv, contentID string) shared.ModerationResult {
	t.Helper()
	result, err := env.moderation.Process(context.Background(), ssnContent(contentID), "owner", dtos.ScanTriggerManual)
	require.NoError(t, err)
	return result
}

func TestReviewQueueService(t *testing.T) {
	t.Run("should release the quarantine when the review is approved", func(t *testing.T) {
		env := newTestEnv(t)
		env.allowNotifications()
		env.seedSSNRule(t)

		result := processSSN(t, env, "a")
		review := env.reviewOf(t, result.Scan.Record.ID)
		quarantine := env.actionsOfKind(t, dtos.ActionKindQuarantine)[0]
		require.True(t, quarantine.IsActive(time.Now()))

		approved, err := env.reviews.Approve(context.Background(), review.ID, "alice", "looks fine")
		require.NoError(t, err)
		assert.Equal(t, dtos.ActionStatusApproved, approved.Status)
		assert.Equal(t, "alice", *approved.ReviewedBy)

		quarantine, err = env.actionRepo.Read(quarantine.ID)
		require.NoError(t, err)
		assert.False(t, quarantine.IsActive(time.Now()))

		releases := env.actionsOfKind(t, dtos.ActionKindRelease)
		require.Len(t, releases, 1)
		assert.Equal(t, quarantine.ID, *releases[0].TargetActionID)
		assert.Equal(t, dtos.ReleaseCauseApproved, releases[0].GetPayload().Release.Cause)
		assert.Equal(t, dtos.ActionKindQuarantine, releases[0].GetPayload().Release.Target)

		approvals := env.actionsOfKind(t, dtos.ActionKindApprove)
		require.Len(t, approvals, 1)
		assert.Equal(t, review.ID, *approvals[0].TargetActionID)
		assert.Equal(t, "looks fine", approvals[0].GetPayload().Approve.Notes)
	})

	t.Run("should leave review and quarantine untouched when releasing fails", func(t *testing.T) {
		env := newTestEnv(t)
		env.allowNotifications()
		env.seedSSNRule(t)

		result := processSSN(t, env, "a")
		review := env.reviewOf(t, result.Scan.Record.ID)
		quarantine := env.actionsOfKind(t, dtos.ActionKindQuarantine)[0]

		failingActions := mocks.NewGovernanceActionService(t)
		failingActions.On("ReleaseRestrictionsInTx", mock.Anything, mock.Anything, "alice", dtos.ReleaseCauseApproved).Return(nil, errors.New("db down"))
		reviews := NewReviewQueueService(env.actionRepo, env.scanRepo, failingActions, env.rbac, env.sink, shared.DefaultModerationConfig())

		_, err := reviews.Approve(context.Background(), review.ID, "alice", "")
		assert.ErrorContains(t, err, "db down")

		stored, err := env.actionRepo.Read(review.ID)
		require.NoError(t, err)
		assert.Equal(t, dtos.ActionStatusPending, stored.Status)
		assert.Nil(t, stored.ReviewedBy)
		assert.Empty(t, env.actionsOfKind(t, dtos.ActionKindApprove))

		quarantine, err = env.actionRepo.Read(quarantine.ID)
		require.NoError(t, err)
		assert.True(t, quarantine.IsActive(time.Now()))

		// the same decision goes through once the release works again
		approved, err := env.reviews.Approve(context.Background(), review.ID, "alice", "")
		require.NoError(t, err)
		assert.Equal(t, dtos.ActionStatusApproved, approved.Status)

		quarantine, err = env.actionRepo.Read(quarantine.ID)
		require.NoError(t, err)
		assert.False(t, quarantine.IsActive(time.Now()))
		assert.Len(t, env.actionsOfKind(t, dtos.ActionKindApprove), 1)
	})

	t.Run("should reject a second approval", func(t *testing.T) {
		env := newTestEnv(t)
		env.allowNotifications()
		env.seedSSNRule(t)

		result := processSSN(t, env, "a")
		review := env.reviewOf(t, result.Scan.Record.ID)

		_, err := env.reviews.Approve(context.Background(), review.ID, "alice", "")
		require.NoError(t, err)
		_, err = env.reviews.Approve(context.Background(), review.ID, "alice", "")
		assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)
	})

	t.Run("should approve every existing id of a bulk request", func(t *testing.T) {
		env := newTestEnv(t)
		env.allowNotifications()
		env.seedSSNRule(t)

		a := env.reviewOf(t, processSSN(t, env, "a").Scan.Record.ID)
		c := env.reviewOf(t, processSSN(t, env, "c").Scan.Record.ID)
		missing := uuid.New()

		results := env.reviews.BulkApprove(context.Background(), []uuid.UUID{a.ID, missing, c.ID}, "alice", "")
		require.Len(t, results, 3)
		assert.True(t, results[0].Success)
		assert.False(t, results[1].Success)
		assert.NotEmpty(t, results[1].Error)
		assert.Equal(t, missing, results[1].ID)
		assert.True(t, results[2].Success)

		for _, id := range []uuid.UUID{a.ID, c.ID} {
			action, err := env.actionRepo.Read(id)
			require.NoError(t, err)
			assert.Equal(t, dtos.ActionStatusApproved, action.Status)
		}
	})

	t.Run("should return not found for an unknown review", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.reviews.Approve(context.Background(), uuid.New(), "alice", "")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("should only let senior reviewers approve escalated reviews", func(t *testing.T) {
		env := newTestEnv(t)
		env.allowNotifications()
		env.seedSSNRule(t)
		env.rbac.On("IsAllowed", "alice", shared.ObjectReview, shared.ActionApproveEscalated).Return(false, nil)
		env.rbac.On("IsAllowed", "bob", shared.ObjectReview, shared.ActionApproveEscalated).Return(true, nil)

		review := env.reviewOf(t, processSSN(t, env, "a").Scan.Record.ID)

		escalated, err := env.reviews.Escalate(context.Background(), review.ID, "alice", "needs legal")
		require.NoError(t, err)
		assert.Equal(t, dtos.ActionStatusRequiresReview, escalated.Status)
		assert.Equal(t, 1, escalated.EscalationLevel)
		payload := escalated.GetPayload()
		require.NotNil(t, payload.Escalation)
		assert.Equal(t, "needs legal", payload.Escalation.Notes)
		require.NotNil(t, payload.Review)

		// restrictions stay in place while escalated
		assert.True(t, env.actionsOfKind(t, dtos.ActionKindQuarantine)[0].IsActive(time.Now()))

		escalatedQueue, err := env.reviews.EscalatedReviews()
		require.NoError(t, err)
		require.Len(t, escalatedQueue, 1)

		_, err = env.reviews.Approve(context.Background(), review.ID, "alice", "")
		assert.ErrorIs(t, err, shared.ErrInsufficientRole)

		_, err = env.reviews.Approve(context.Background(), review.ID, "bob", "")
		require.NoError(t, err)
		assert.Empty(t, env.actionsOfKind(t, dtos.ActionKindQuarantine)[0].ActiveKey)
	})

	t.Run("should escalate an escalated review again", func(t *testing.T) {
		env := newTestEnv(t)
		env.allowNotifications()
		env.seedSSNRule(t)

		review := env.reviewOf(t, processSSN(t, env, "a").Scan.Record.ID)
		_, err := env.reviews.Escalate(context.Background(), review.ID, "alice", "")
		require.NoError(t, err)
		escalated, err := env.reviews.Escalate(context.Background(), review.ID, "bob", "still unsure")
		require.NoError(t, err)
		assert.Equal(t, 2, escalated.EscalationLevel)
		assert.Equal(t, 2, escalated.GetPayload().Escalation.Level)
	})

	t.Run("should ask the owner to act and keep the review pending", func(t *testing.T) {
		env := newTestEnv(t)
		env.sink.On("Notify", mock.Anything, "owner", dtos.NotificationUserActionRequired, mock.Anything).Return(errors.New("webhook down")).Once()
		env.allowNotifications()
		env.seedSSNRule(t)

		review := env.reviewOf(t, processSSN(t, env, "a").Scan.Record.ID)

		updated, err := env.reviews.RequireUserAction(context.Background(), review.ID, "alice", dtos.UserActionModifyContent, "remove the number")
		require.NoError(t, err)
		assert.Equal(t, dtos.ActionStatusPending, updated.Status)
		assert.Equal(t, "alice", *updated.ReviewedBy)

		var linked []models.GovernanceAction
		require.NoError(t, env.db.Where("target_action_id = ?", review.ID).Find(&linked).Error)
		require.Len(t, linked, 1)
		assert.Equal(t, dtos.ActionKindNotify, linked[0].Kind)
		payload := linked[0].GetPayload()
		require.NotNil(t, payload.UserAction)
		assert.Equal(t, dtos.UserActionModifyContent, payload.UserAction.Required)
		assert.Equal(t, "remove the number", payload.UserAction.Notes)
	})

	t.Run("should order pending reviews by priority, then age", func(t *testing.T) {
		env := newTestEnv(t)
		now := time.Now()
		env.reviews.now = func() time.Time { return now }

		createReview := func(score float64, severity dtos.Severity, createdAt time.Time) models.GovernanceAction {
			scan := models.ScanRecord{
				ContentKind:     "note",
				ContentID:       uuid.NewString(),
				ContentHash:     "hash",
				OwnerID:         "owner",
				ScanTrigger:     dtos.ScanTriggerManual,
				Status:          dtos.ScanStatusCompleted,
				RiskScore:       score,
				HighestSeverity: utils.Ptr(severity),
				ViolationCount:  1,
			}
			require.NoError(t, env.scanRepo.Create(nil, &scan))
			review := models.GovernanceAction{
				Model:        models.Model{CreatedAt: createdAt},
				ScanRecordID: scan.ID,
				Kind:         dtos.ActionKindRequireReview,
				Status:       dtos.ActionStatusPending,
				TriggeredBy:  systemActor,
			}
			require.NoError(t, env.actionRepo.Create(nil, &review))
			return review
		}

		medium := createReview(40, dtos.SeverityMedium, now.Add(-time.Hour))
		criticalOld := createReview(90, dtos.SeverityCritical, now.Add(-2*time.Hour))
		criticalNew := createReview(90, dtos.SeverityCritical, now.Add(-time.Hour))
		aged := createReview(40, dtos.SeverityMedium, now.Add(-4*24*time.Hour))

		items, err := env.reviews.PendingReviews(dtos.ReviewQueueFilter{})
		require.NoError(t, err)
		require.Len(t, items, 4)
		assert.Equal(t, criticalOld.ID, items[0].Action.ID)
		assert.Equal(t, criticalNew.ID, items[1].Action.ID)
		assert.Equal(t, aged.ID, items[2].Action.ID)
		assert.Equal(t, medium.ID, items[3].Action.ID)
		assert.Equal(t, 4, items[2].DaysPending)

		filtered, err := env.reviews.PendingReviews(dtos.ReviewQueueFilter{RiskLevel: utils.Ptr(dtos.RiskLevelMedium)})
		require.NoError(t, err)
		assert.Len(t, filtered, 2)

		filtered, err = env.reviews.PendingReviews(dtos.ReviewQueueFilter{MinPriority: utils.Ptr(100.0)})
		require.NoError(t, err)
		assert.Len(t, filtered, 2)
	})
}
