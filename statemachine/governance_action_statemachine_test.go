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

package statemachine

import (
	"testing"
	"time"

	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/utils"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("should allow every decision from pending", func(t *testing.T) {
		for _, to := range []dtos.ActionStatus{dtos.ActionStatusApproved, dtos.ActionStatusQuarantined, dtos.ActionStatusBlocked, dtos.ActionStatusRequiresReview} {
			assert.True(t, CanTransition(dtos.ActionStatusPending, to), to)
		}
	})

	t.Run("should allow approving and escalating an escalated review", func(t *testing.T) {
		assert.True(t, CanTransition(dtos.ActionStatusRequiresReview, dtos.ActionStatusApproved))
		assert.True(t, CanTransition(dtos.ActionStatusRequiresReview, dtos.ActionStatusRequiresReview))
		assert.False(t, CanTransition(dtos.ActionStatusRequiresReview, dtos.ActionStatusQuarantined))
	})

	t.Run("should treat approved as terminal", func(t *testing.T) {
		assert.False(t, CanTransition(dtos.ActionStatusApproved, dtos.ActionStatusPending))
		assert.False(t, CanTransition(dtos.ActionStatusApproved, dtos.ActionStatusApproved))
		assert.False(t, CanTransition(dtos.ActionStatusApproved, dtos.ActionStatusRequiresReview))
	})
}

func TestTransition(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("should record the reviewer", func(t *testing.T) {
		action := models.GovernanceAction{Status: dtos.ActionStatusPending}
		err := Transition(&action, dtos.ActionStatusApproved, "alice", now)

		assert.NoError(t, err)
		assert.Equal(t, dtos.ActionStatusApproved, action.Status)
		assert.Equal(t, "alice", *action.ReviewedBy)
		assert.Equal(t, now, *action.ReviewedAt)
	})

	t.Run("should increase the escalation level on every escalation", func(t *testing.T) {
		action := models.GovernanceAction{Status: dtos.ActionStatusPending}
		assert.NoError(t, Transition(&action, dtos.ActionStatusRequiresReview, "alice", now))
		assert.NoError(t, Transition(&action, dtos.ActionStatusRequiresReview, "bob", now))
		assert.Equal(t, 2, action.EscalationLevel)
	})

	t.Run("should reject a forbidden transition without touching the action", func(t *testing.T) {
		action := models.GovernanceAction{Status: dtos.ActionStatusApproved}
		err := Transition(&action, dtos.ActionStatusRequiresReview, "alice", now)

		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, dtos.ActionStatusApproved, action.Status)
		assert.Nil(t, action.ReviewedBy)
	})
}

func TestIsActiveRestriction(t *testing.T) {
	now := time.Now()
	key := utils.Ptr("note:1:quarantine")

	t.Run("should be active without expiry", func(t *testing.T) {
		assert.True(t, IsActiveRestriction(models.GovernanceAction{Kind: dtos.ActionKindQuarantine, ActiveKey: key}, now))
	})

	t.Run("should not be active after the expiry passed", func(t *testing.T) {
		action := models.GovernanceAction{Kind: dtos.ActionKindQuarantine, ActiveKey: key, Expiry: utils.Ptr(now.Add(-time.Minute))}
		assert.False(t, IsActiveRestriction(action, now))
	})

	t.Run("should not be active once released", func(t *testing.T) {
		action := models.GovernanceAction{Kind: dtos.ActionKindBlockSharing, Expiry: utils.Ptr(now.Add(time.Hour))}
		assert.False(t, IsActiveRestriction(action, now))
	})

	t.Run("should ignore kinds which do not restrict", func(t *testing.T) {
		assert.False(t, IsActiveRestriction(models.GovernanceAction{Kind: dtos.ActionKindNotify, ActiveKey: key}, now))
	})
}
