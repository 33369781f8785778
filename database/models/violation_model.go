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
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/contentguard/dtos"
)

type Violation struct {
	Model
	ScanRecordID uuid.UUID `json:"scanRecordId" gorm:"type:uuid;not null;index"`
	// RuleID has no foreign key. Violations outlive the rule which produced them.
	RuleID          uuid.UUID            `json:"ruleId" gorm:"type:uuid;not null;index"`
	RuleName        string               `json:"ruleName" gorm:"type:text;not null"`
	Severity        dtos.Severity        `json:"severity" gorm:"type:text;not null"`
	RedactedSnippet string               `json:"redactedSnippet" gorm:"type:text"`
	MatchCount      int                  `json:"matchCount" gorm:"not null"`
	Confidence      float64              `json:"confidence" gorm:"not null"`
	ContextBoosted  bool                 `json:"contextBoosted" gorm:"not null;default:false"`
	StartOffset     *int                 `json:"startOffset"`
	EndOffset       *int                 `json:"endOffset"`
	Resolved        bool                 `json:"resolved" gorm:"not null;default:false;index"`
	ResolutionKind  *dtos.ResolutionKind `json:"resolutionKind" gorm:"type:text"`
	ResolutionNotes string               `json:"resolutionNotes" gorm:"type:text"`
	ResolvedBy      *string              `json:"resolvedBy" gorm:"type:text"`
	ResolvedAt      *time.Time           `json:"resolvedAt"`
}

func (Violation) TableName() string {
	return "violations"
}
