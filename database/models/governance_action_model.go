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

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/contentguard/dtos"
	"gorm.io/datatypes"
)

type GovernanceAction struct {
	Model
	ScanRecordID uuid.UUID  `json:"scanRecordId" gorm:"type:uuid;not null;index"`
	ScanRecord   ScanRecord `json:"scanRecord,omitempty" gorm:"foreignKey:ScanRecordID;constraint:OnDelete:CASCADE"`
	ViolationID  *uuid.UUID `json:"violationId" gorm:"type:uuid"`
	// TargetActionID points to the action a release, approve or notify follow-up refers to.
	TargetActionID  *uuid.UUID                           `json:"targetActionId" gorm:"type:uuid;index"`
	Kind            dtos.ActionKind                      `json:"kind" gorm:"type:text;not null;index:idx_governance_actions_kind_status"`
	Status          dtos.ActionStatus                    `json:"status" gorm:"type:text;not null;index:idx_governance_actions_kind_status"`
	Automated       bool                                 `json:"automated" gorm:"not null;default:false"`
	TriggeredBy     string                               `json:"triggeredBy" gorm:"type:text;not null"`
	ReviewedBy      *string                              `json:"reviewedBy" gorm:"type:text"`
	ReviewedAt      *time.Time                           `json:"reviewedAt"`
	Reason          string                               `json:"reason" gorm:"type:text"`
	Expiry          *time.Time                           `json:"expiry" gorm:"index"`
	EscalationLevel int                                  `json:"escalationLevel" gorm:"not null;default:0"`
	Payload         datatypes.JSONType[dtos.ActionPayload] `json:"payload"`
	// ActiveKey is set while a restriction is in force. The unique index allows a single
	// active quarantine or sharing block per content.
	ActiveKey *string `json:"-" gorm:"type:text;uniqueIndex:idx_governance_actions_active_key"`
}

func (GovernanceAction) TableName() string {
	return "governance_actions"
}

// ActiveKeyFor keys restrictions by content, so rescanning the same content cannot stack a second quarantine.
func ActiveKeyFor(scan ScanRecord, kind dtos.ActionKind) string {
	return fmt.Sprintf("%s:%s:%s", scan.ContentKind, scan.ContentID, kind)
}

// IsActive reports whether the restriction still applies at the given time.
func (a GovernanceAction) IsActive(now time.Time) bool {
	if a.ActiveKey == nil {
		return false
	}
	return a.Expiry == nil || a.Expiry.After(now)
}

func (a GovernanceAction) IsExpired(now time.Time) bool {
	return a.ActiveKey != nil && a.Expiry != nil && !a.Expiry.After(now)
}

func (a GovernanceAction) GetPayload() dtos.ActionPayload {
	return a.Payload.Data()
}

func (a *GovernanceAction) SetPayload(p dtos.ActionPayload) {
	a.Payload = datatypes.NewJSONType(p)
}
