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
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/detection"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ssnContent(id string) shared.TextContent {
	return shared.NewTextContent("note", id, "SSN: 123-45-6789")
}

func TestModerationService(t *testing.T) {
	t.Run("should score a short ssn at 100 and quarantine it", func(t *testing.T) {
		env := newTestEnv(t)
		env.allowNotifications()
		env.seedSSNRule(t)

		result, err := env.moderation.Process(context.Background(), ssnContent("a"), "owner", dtos.ScanTriggerManual)
		require.NoError(t, err)

		assert.Equal(t, 100.0, result.Scan.Record.RiskScore)
		require.NotNil(t, result.Scan.Record.HighestSeverity)
		assert.Equal(t, dtos.SeverityHigh, *result.Scan.Record.HighestSeverity)
		require.Len(t, result.Scan.Violations, 1)
		assert.Equal(t, "SSN: ***********", result.Scan.Violations[0].RedactedSnippet)

		kinds := make([]dtos.ActionKind, 0, len(result.Actions))
		for _, a := range result.Actions {
			kinds = append(kinds, a.Kind)
		}
		assert.Contains(t, kinds, dtos.ActionKindQuarantine)
		assert.Contains(t, kinds, dtos.ActionKindNotify)
		assert.Contains(t, kinds, dtos.ActionKindRequireReview)
		assert.NotContains(t, kinds, dtos.ActionKindBlockSharing)
	})

	t.Run("should not create any action when the rule is inactive", func(t *testing.T) {
		env := newTestEnv(t)
		rule := env.seedSSNRule(t)

		rule.Active = false
		require.NoError(t, env.ruleRepo.Save(nil, &rule))
		_, err := env.registry.Refresh()
		require.NoError(t, err)

		result, err := env.moderation.Process(context.Background(), ssnContent("a"), "owner", dtos.ScanTriggerManual)
		require.NoError(t, err)
		assert.Equal(t, 0.0, result.Scan.Record.RiskScore)
		assert.Empty(t, result.Scan.Violations)
		assert.Empty(t, result.Actions)

		actions, err := env.actionRepo.FindByScanRecord(nil, result.Scan.Record.ID)
		require.NoError(t, err)
		assert.Empty(t, actions)
	})

	t.Run("should not quarantine the same content twice", func(t *testing.T) {
		env := newTestEnv(t)
		env.allowNotifications()
		env.seedSSNRule(t)

		first, err := env.moderation.Process(context.Background(), ssnContent("a"), "owner", dtos.ScanTriggerManual)
		require.NoError(t, err)
		second, err := env.moderation.Process(context.Background(), ssnContent("a"), "owner", dtos.ScanTriggerManual)
		require.NoError(t, err)
		assert.NotEqual(t, first.Scan.Record.ID, second.Scan.Record.ID)

		quarantines := env.actionsOfKind(t, dtos.ActionKindQuarantine)
		require.Len(t, quarantines, 1)
		assert.Equal(t, dtos.ActionStatusApproved, quarantines[0].Status)
		require.NotNil(t, quarantines[0].Expiry)
		assert.True(t, quarantines[0].Expiry.After(time.Now().Add(6*24*time.Hour)))
		assert.True(t, quarantines[0].IsActive(time.Now()))
	})

	t.Run("should govern a stored scan again without a second scan or review", func(t *testing.T) {
		env := newTestEnv(t)
		env.allowNotifications()
		env.seedSSNRule(t)

		first, err := env.moderation.Process(context.Background(), ssnContent("a"), "owner", dtos.ScanTriggerAutomatic)
		require.NoError(t, err)
		again, err := env.moderation.Govern(context.Background(), first.Scan)
		require.NoError(t, err)
		assert.Equal(t, first.Scan.Record.ID, again.Scan.Record.ID)

		scans, err := env.scans.ListScansByContent("note", "a")
		require.NoError(t, err)
		assert.Len(t, scans, 1)
		assert.Len(t, env.actionsOfKind(t, dtos.ActionKindRequireReview), 1)
		assert.Len(t, env.actionsOfKind(t, dtos.ActionKindQuarantine), 1)
	})

	t.Run("should store a failed scan for invalid utf-8 and skip governance", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedSSNRule(t)

		result, err := env.moderation.Process(context.Background(), shared.NewTextContent("note", "a", "123-45-6789 \xff"), "owner", dtos.ScanTriggerManual)
		require.NoError(t, err)
		assert.Equal(t, dtos.ScanStatusFailed, result.Scan.Record.Status)
		assert.NotNil(t, result.Scan.Record.Error)
		assert.Empty(t, result.Scan.Violations)
		assert.Empty(t, result.Actions)

		stored, err := env.scans.GetScan(result.Scan.Record.ID)
		require.NoError(t, err)
		assert.Equal(t, dtos.ScanStatusFailed, stored.Status)
	})

	t.Run("should skip automatic scans when the owner disabled them", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedSSNRule(t)

		policy := models.DefaultPolicyConfig("owner", 7)
		policy.AutoScanEnabled = false
		require.NoError(t, env.policies.Upsert(&policy))

		result, err := env.moderation.Process(context.Background(), ssnContent("a"), "owner", dtos.ScanTriggerAutomatic)
		require.NoError(t, err)
		assert.True(t, result.Skipped)

		scans, err := env.scans.ListScansByContent("note", "a")
		require.NoError(t, err)
		assert.Empty(t, scans)
	})
}

func TestGovernanceActionService(t *testing.T) {
	t.Run("should quarantine on an auto quarantine rule regardless of the score", func(t *testing.T) {
		env := newTestEnv(t)
		env.allowNotifications()
		rule := env.seedRule(t, "internal-codename", `bluebird`, dtos.SeverityLow, true)

		text := "bluebird " + strings.Repeat("lorem ipsum ", 400)
		result, err := env.moderation.Process(context.Background(), shared.NewTextContent("doc", "a", text), "owner", dtos.ScanTriggerManual)
		require.NoError(t, err)
		assert.Less(t, result.Scan.Record.RiskScore, dtos.CriticalRiskThreshold)

		quarantines := env.actionsOfKind(t, dtos.ActionKindQuarantine)
		require.Len(t, quarantines, 1)
		payload := quarantines[0].GetPayload()
		require.NotNil(t, payload.Quarantine)
		assert.Equal(t, []string{rule.ID.String()}, payload.Quarantine.RuleIDs)
		assert.Equal(t, 7, payload.Quarantine.Days)
	})

	t.Run("should block sharing when the policy asks for it", func(t *testing.T) {
		env := newTestEnv(t)
		env.allowNotifications()
		env.seedSSNRule(t)

		policy := models.DefaultPolicyConfig("owner", 7)
		policy.AutoBlockSharing = true
		policy.AutoQuarantineCritical = false
		require.NoError(t, env.policies.Upsert(&policy))

		_, err := env.moderation.Process(context.Background(), ssnContent("a"), "owner", dtos.ScanTriggerManual)
		require.NoError(t, err)

		assert.Len(t, env.actionsOfKind(t, dtos.ActionKindBlockSharing), 1)
		assert.Empty(t, env.actionsOfKind(t, dtos.ActionKindQuarantine))
	})

	t.Run("should record the notification even when the sink fails", func(t *testing.T) {
		env := newTestEnv(t)
		env.sink.On("Notify", mock.Anything, "owner", dtos.NotificationViolationDetected, mock.Anything).Return(errors.New("webhook down"))
		env.allowNotifications()
		env.seedSSNRule(t)

		result, err := env.moderation.Process(context.Background(), ssnContent("a"), "owner", dtos.ScanTriggerManual)
		require.NoError(t, err)

		var found bool
		for _, a := range result.Actions {
			payload := a.GetPayload()
			if a.Kind == dtos.ActionKindNotify && payload.Notify != nil && payload.Notify.EventKind == dtos.NotificationViolationDetected {
				found = true
				assert.False(t, payload.Notify.Delivered)
			}
		}
		assert.True(t, found)
	})

	t.Run("should not call the sink when violation notifications are disabled", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedSSNRule(t)

		policy := models.DefaultPolicyConfig("owner", 7)
		policy.NotifyOnViolation = false
		policy.NotifyOnQuarantine = false
		require.NoError(t, env.policies.Upsert(&policy))

		result, err := env.moderation.Process(context.Background(), ssnContent("a"), "owner", dtos.ScanTriggerManual)
		require.NoError(t, err)
		assert.NotEmpty(t, env.actionsOfKind(t, dtos.ActionKindNotify))
		assert.NotEmpty(t, result.Actions)
		env.sink.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should create a single quarantine for concurrent evaluations", func(t *testing.T) {
		env := newTestEnv(t)
		env.allowNotifications()
		env.seedSSNRule(t)

		scan, err := env.scans.ScanAndStore(context.Background(), ssnContent("a"), "owner", dtos.ScanTriggerManual)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for range 10 {
			wg.Go(func() {
				_, err := env.actions.Evaluate(context.Background(), scan.Record, scan.Violations)
				assert.NoError(t, err)
			})
		}
		wg.Wait()

		assert.Len(t, env.actionsOfKind(t, dtos.ActionKindQuarantine), 1)
		assert.Len(t, env.actionsOfKind(t, dtos.ActionKindRequireReview), 1)
	})

	t.Run("should hold a single quarantine across independent engines", func(t *testing.T) {
		env := newTestEnv(t)
		env.allowNotifications()
		env.seedSSNRule(t)

		scan, err := env.scans.ScanAndStore(context.Background(), ssnContent("a"), "owner", dtos.ScanTriggerManual)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for range 5 {
			engine := NewGovernanceActionService(env.actionRepo, env.scanRepo, env.ruleRepo, env.policies, env.sink, shared.DefaultModerationConfig())
			wg.Go(func() {
				_, err := engine.Evaluate(context.Background(), scan.Record, scan.Violations)
				assert.NoError(t, err)
			})
		}
		wg.Wait()

		assert.Len(t, env.actionsOfKind(t, dtos.ActionKindQuarantine), 1)
	})

	t.Run("should release expired restrictions exactly once", func(t *testing.T) {
		env := newTestEnv(t)
		env.allowNotifications()
		env.seedSSNRule(t)

		_, err := env.moderation.Process(context.Background(), ssnContent("a"), "owner", dtos.ScanTriggerManual)
		require.NoError(t, err)

		later := time.Now().Add(8 * 24 * time.Hour)
		released, err := env.actions.ReleaseExpired(context.Background(), later)
		require.NoError(t, err)
		assert.Equal(t, 1, released)

		released, err = env.actions.ReleaseExpired(context.Background(), later)
		require.NoError(t, err)
		assert.Equal(t, 0, released)

		quarantine := env.actionsOfKind(t, dtos.ActionKindQuarantine)[0]
		assert.Nil(t, quarantine.ActiveKey)

		releases := env.actionsOfKind(t, dtos.ActionKindRelease)
		require.Len(t, releases, 1)
		require.NotNil(t, releases[0].TargetActionID)
		assert.Equal(t, quarantine.ID, *releases[0].TargetActionID)
		assert.Equal(t, dtos.ReleaseCauseExpired, releases[0].GetPayload().Release.Cause)
	})

	t.Run("should replace an expired quarantine on the next scan", func(t *testing.T) {
		env := newTestEnv(t)
		env.allowNotifications()
		env.seedSSNRule(t)

		_, err := env.moderation.Process(context.Background(), ssnContent("a"), "owner", dtos.ScanTriggerManual)
		require.NoError(t, err)

		env.actions.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
		_, err = env.moderation.Process(context.Background(), ssnContent("a"), "owner", dtos.ScanTriggerManual)
		require.NoError(t, err)

		assert.Len(t, env.actionsOfKind(t, dtos.ActionKindQuarantine), 2)
		assert.Len(t, env.actionsOfKind(t, dtos.ActionKindRelease), 1)
	})

	t.Run("should extend the expiry of an active quarantine", func(t *testing.T) {
		env := newTestEnv(t)
		env.allowNotifications()
		env.seedSSNRule(t)

		_, err := env.moderation.Process(context.Background(), ssnContent("a"), "owner", dtos.ScanTriggerManual)
		require.NoError(t, err)
		quarantine := env.actionsOfKind(t, dtos.ActionKindQuarantine)[0]

		extended, err := env.actions.ExtendExpiry(context.Background(), quarantine.ID, 3, "alice")
		require.NoError(t, err)
		assert.WithinDuration(t, quarantine.Expiry.AddDate(0, 0, 3), *extended.Expiry, time.Second)
		assert.Equal(t, "alice", *extended.ReviewedBy)
	})

	t.Run("should refuse to extend a released quarantine", func(t *testing.T) {
		env := newTestEnv(t)
		env.allowNotifications()
		env.seedSSNRule(t)

		result, err := env.moderation.Process(context.Background(), ssnContent("a"), "owner", dtos.ScanTriggerManual)
		require.NoError(t, err)
		_, err = env.actions.ReleaseRestrictions(context.Background(), result.Scan.Record.ID, "alice", dtos.ReleaseCauseManual)
		require.NoError(t, err)

		quarantine := env.actionsOfKind(t, dtos.ActionKindQuarantine)[0]
		_, err = env.actions.ExtendExpiry(context.Background(), quarantine.ID, 3, "alice")
		assert.ErrorIs(t, err, shared.ErrNotActive)
	})

	t.Run("should return a not found error for unknown actions", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.actions.Get(uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = env.actions.ListByScan(uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestScanService(t *testing.T) {
	t.Run("should resolve a violation only once", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedSSNRule(t)

		result, err := env.scans.ScanAndStore(context.Background(), ssnContent("a"), "owner", dtos.ScanTriggerManual)
		require.NoError(t, err)
		require.Len(t, result.Violations, 1)
		id := result.Violations[0].ID

		resolved, err := env.scans.ResolveViolation(id, "alice", dtos.ResolutionFalsePositive, "test data")
		require.NoError(t, err)
		assert.True(t, resolved.Resolved)
		assert.Equal(t, "alice", *resolved.ResolvedBy)
		assert.Equal(t, dtos.ResolutionFalsePositive, *resolved.ResolutionKind)

		_, err = env.scans.ResolveViolation(id, "bob", dtos.ResolutionAcknowledged, "")
		assert.ErrorIs(t, err, shared.ErrAlreadyResolved)

		unresolved, err := env.scans.ListUnresolvedViolations(result.Record.ID)
		require.NoError(t, err)
		assert.Empty(t, unresolved)
	})

	t.Run("should return not found for an unknown violation", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.scans.ResolveViolation(uuid.New(), "alice", dtos.ResolutionAcknowledged, "")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("should reject an unknown resolution kind", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.scans.ResolveViolation(uuid.New(), "alice", dtos.ResolutionKind("ignored"), "")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("should keep the full content length of truncated content", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedSSNRule(t)
		env.scans.scanner = detection.NewScanner(10)

		result, err := env.scans.ScanAndStore(context.Background(), ssnContent("a"), "owner", dtos.ScanTriggerManual)
		require.NoError(t, err)
		assert.Equal(t, dtos.ScanStatusPartial, result.Record.Status)
		assert.True(t, result.Truncated)
		assert.Equal(t, 16, result.Record.ContentLength)
	})
}
