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
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/utils"
)

var ErrInvalidTransition = errors.New("invalid governance action transition")

// every state not listed here is terminal. Releases do not change the status of the
// released action, they are recorded as their own action.
var transitions = map[dtos.ActionStatus][]dtos.ActionStatus{
	dtos.ActionStatusPending: {
		dtos.ActionStatusApproved,
		dtos.ActionStatusQuarantined,
		dtos.ActionStatusBlocked,
		dtos.ActionStatusRequiresReview,
	},
	dtos.ActionStatusRequiresReview: {
		dtos.ActionStatusApproved,
		// escalating again
		dtos.ActionStatusRequiresReview,
	},
}

func CanTransition(from, to dtos.ActionStatus) bool {
	return slices.Contains(transitions[from], to)
}

// Transition moves the action into the next status and records the reviewer.
func Transition(action *models.GovernanceAction, to dtos.ActionStatus, reviewer string, now time.Time) error {
	if !CanTransition(action.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, action.Status, to)
	}
	action.Status = to
	if reviewer != "" {
		action.ReviewedBy = utils.Ptr(reviewer)
		action.ReviewedAt = utils.Ptr(now)
	}
	if to == dtos.ActionStatusRequiresReview {
		action.EscalationLevel++
	}
	return nil
}

// IsActiveRestriction is true for a quarantine or sharing block which still applies.
func IsActiveRestriction(action models.GovernanceAction, now time.Time) bool {
	return action.Kind.IsRestriction() && action.IsActive(now)
}
