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

package dtos

// ActionPayload is the kind-tagged payload stored with every governance action.
// The variant matching Kind is set. Escalated reviews carry Escalation next to Review.
type ActionPayload struct {
	Kind ActionKind `json:"kind"`

	Quarantine   *QuarantinePayload   `json:"quarantine,omitempty"`
	BlockSharing *BlockSharingPayload `json:"blockSharing,omitempty"`
	Notify       *NotifyPayload       `json:"notify,omitempty"`
	Review       *ReviewPayload       `json:"review,omitempty"`
	UserAction   *UserActionPayload   `json:"userAction,omitempty"`
	Release      *ReleasePayload      `json:"release,omitempty"`
	Approve      *ApprovePayload      `json:"approve,omitempty"`
	Escalation   *EscalationPayload   `json:"escalation,omitempty"`
}

type QuarantinePayload struct {
	Days    int      `json:"days"`
	RuleIDs []string `json:"ruleIds"`
}

type BlockSharingPayload struct {
	RiskScore float64 `json:"riskScore"`
}

type NotifyPayload struct {
	EventKind NotificationEvent `json:"eventKind"`
	Delivered bool              `json:"delivered"`
}

type ReviewPayload struct {
	RiskLevel      RiskLevel `json:"riskLevel"`
	ViolationCount int       `json:"violationCount"`
}

type UserActionPayload struct {
	Required UserActionKind `json:"required"`
	Notes    string         `json:"notes"`
}

type ReleaseCause string

const (
	ReleaseCauseExpired  ReleaseCause = "expired"
	ReleaseCauseApproved ReleaseCause = "approved"
	ReleaseCauseManual   ReleaseCause = "manual"
)

type ReleasePayload struct {
	Cause ReleaseCause `json:"cause"`
	// Target is the kind of the released restriction.
	Target ActionKind `json:"target"`
}

type ApprovePayload struct {
	Notes string `json:"notes"`
}

type EscalationPayload struct {
	Notes string `json:"notes"`
	Level int    `json:"level"`
}

func NewQuarantinePayload(days int, ruleIDs []string) ActionPayload {
	return ActionPayload{Kind: ActionKindQuarantine, Quarantine: &QuarantinePayload{Days: days, RuleIDs: ruleIDs}}
}

func NewBlockSharingPayload(riskScore float64) ActionPayload {
	return ActionPayload{Kind: ActionKindBlockSharing, BlockSharing: &BlockSharingPayload{RiskScore: riskScore}}
}

func NewNotifyPayload(event NotificationEvent, delivered bool) ActionPayload {
	return ActionPayload{Kind: ActionKindNotify, Notify: &NotifyPayload{EventKind: event, Delivered: delivered}}
}

// NewUserActionPayload is carried by the notify action created when a reviewer asks the owner to act.
func NewUserActionPayload(required UserActionKind, notes string) ActionPayload {
	return ActionPayload{Kind: ActionKindNotify, UserAction: &UserActionPayload{Required: required, Notes: notes}}
}

func NewReviewPayload(level RiskLevel, violationCount int) ActionPayload {
	return ActionPayload{Kind: ActionKindRequireReview, Review: &ReviewPayload{RiskLevel: level, ViolationCount: violationCount}}
}

func NewReleasePayload(cause ReleaseCause, target ActionKind) ActionPayload {
	return ActionPayload{Kind: ActionKindRelease, Release: &ReleasePayload{Cause: cause, Target: target}}
}

func NewApprovePayload(notes string) ActionPayload {
	return ActionPayload{Kind: ActionKindApprove, Approve: &ApprovePayload{Notes: notes}}
}
