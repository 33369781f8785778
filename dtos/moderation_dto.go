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

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Weight is the base contribution of a matched rule to the risk score.
func (s Severity) Weight() float64 {
	switch s {
	case SeverityLow:
		return 10
	case SeverityMedium:
		return 25
	case SeverityHigh:
		return 50
	case SeverityCritical:
		return 75
	}
	return 0
}

func (s Severity) IsValid() bool {
	return s.Weight() > 0
}

func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if !sev.IsValid() {
		return "", fmt.Errorf("unknown severity %q", s)
	}
	return sev, nil
}

type RuleKind string

const (
	RuleKindRegex       RuleKind = "regex"
	RuleKindKeywordList RuleKind = "keyword-list"
)

type ScanTrigger string

const (
	ScanTriggerManual    ScanTrigger = "manual"
	ScanTriggerAutomatic ScanTrigger = "automatic"
	ScanTriggerBulk      ScanTrigger = "bulk"
	ScanTriggerScheduled ScanTrigger = "scheduled"
)

type ScanStatus string

const (
	ScanStatusCompleted ScanStatus = "completed"
	ScanStatusFailed    ScanStatus = "failed"
	ScanStatusPartial   ScanStatus = "partial" // the content was truncated before scanning
)

type ResolutionKind string

const (
	ResolutionAcknowledged      ResolutionKind = "acknowledged"
	ResolutionModified          ResolutionKind = "modified"
	ResolutionFalsePositive     ResolutionKind = "false-positive"
	ResolutionApprovedException ResolutionKind = "approved-exception"
	ResolutionRemoved           ResolutionKind = "removed"
)

func (r ResolutionKind) IsValid() bool {
	switch r {
	case ResolutionAcknowledged, ResolutionModified, ResolutionFalsePositive, ResolutionApprovedException, ResolutionRemoved:
		return true
	}
	return false
}

type ActionKind string

const (
	ActionKindScan          ActionKind = "scan"
	ActionKindQuarantine    ActionKind = "quarantine"
	ActionKindNotify        ActionKind = "notify"
	ActionKindBlockSharing  ActionKind = "block-sharing"
	ActionKindRequireReview ActionKind = "require-review"
	ActionKindApprove       ActionKind = "approve"
	ActionKindRelease       ActionKind = "release"
)

// IsRestriction reports whether the kind restricts the content while it is active.
func (k ActionKind) IsRestriction() bool {
	return k == ActionKindQuarantine || k == ActionKindBlockSharing
}

type ActionStatus string

const (
	ActionStatusPending        ActionStatus = "pending"
	ActionStatusApproved       ActionStatus = "approved"
	ActionStatusQuarantined    ActionStatus = "quarantined"
	ActionStatusBlocked        ActionStatus = "blocked"
	ActionStatusRequiresReview ActionStatus = "requires-review"
)

type SensitivityLevel string

const (
	SensitivityLow    SensitivityLevel = "low"
	SensitivityMedium SensitivityLevel = "medium"
	SensitivityHigh   SensitivityLevel = "high"
)

// ReviewThreshold is the minimum risk score which puts a scan into the review queue.
// A more sensitive owner gets reviews for lower scores.
func (s SensitivityLevel) ReviewThreshold() float64 {
	switch s {
	case SensitivityHigh:
		return 30
	case SensitivityLow:
		return 70
	}
	return 50
}

type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

const (
	CriticalRiskThreshold = 80.0
	HighRiskThreshold     = 60.0
	MediumRiskThreshold   = 30.0
)

func RiskLevelFromScore(score float64) RiskLevel {
	switch {
	case score >= CriticalRiskThreshold:
		return RiskLevelCritical
	case score >= HighRiskThreshold:
		return RiskLevelHigh
	case score >= MediumRiskThreshold:
		return RiskLevelMedium
	}
	return RiskLevelLow
}

// QueueWeight is the contribution of the risk level to the review priority.
func (r RiskLevel) QueueWeight() float64 {
	switch r {
	case RiskLevelCritical:
		return 30
	case RiskLevelHigh:
		return 20
	case RiskLevelMedium:
		return 10
	}
	return 0
}

type UserActionKind string

const (
	UserActionModifyContent UserActionKind = "modify-content"
	UserActionRemoveContent UserActionKind = "remove-content"
	UserActionAcknowledge   UserActionKind = "acknowledge"
	UserActionJustify       UserActionKind = "justify"
)

type NotificationEvent string

const (
	NotificationViolationDetected  NotificationEvent = "violation-detected"
	NotificationContentQuarantined NotificationEvent = "content-quarantined"
	NotificationSharingBlocked     NotificationEvent = "sharing-blocked"
	NotificationUserActionRequired NotificationEvent = "user-action-required"
	NotificationContentReleased    NotificationEvent = "content-released"
)
