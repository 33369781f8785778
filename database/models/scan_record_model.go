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
	"github.com/l3montree-dev/contentguard/dtos"
	"gorm.io/datatypes"
)

// ScanRecord is written once per scan. Only Status and Error may change afterwards.
type ScanRecord struct {
	Model
	ContentKind     string                      `json:"contentKind" gorm:"type:text;not null;index:idx_scan_records_content"`
	ContentID       string                      `json:"contentId" gorm:"type:text;not null;index:idx_scan_records_content"`
	ContentHash     string                      `json:"contentHash" gorm:"type:text;not null"`
	OwnerID         string                      `json:"ownerId" gorm:"type:text;not null;index"`
	ScanTrigger     dtos.ScanTrigger            `json:"scanTrigger" gorm:"type:text;not null"`
	ContentLength   int                         `json:"contentLength" gorm:"not null"`
	ProcessingTime  int64                       `json:"processingTime" gorm:"not null"` // milliseconds
	ViolationCount  int                         `json:"violationCount" gorm:"not null"`
	HighestSeverity *dtos.Severity              `json:"highestSeverity" gorm:"type:text"`
	RiskScore       float64                     `json:"riskScore" gorm:"not null"`
	Status          dtos.ScanStatus             `json:"status" gorm:"type:text;not null"`
	Error           *string                     `json:"error" gorm:"type:text"`
	MatchedRuleIDs  datatypes.JSONSlice[string] `json:"matchedRuleIds"`

	Violations []Violation `json:"violations,omitempty" gorm:"foreignKey:ScanRecordID;constraint:OnDelete:CASCADE"`
}

func (ScanRecord) TableName() string {
	return "scan_records"
}

func (s ScanRecord) RiskLevel() dtos.RiskLevel {
	return dtos.RiskLevelFromScore(s.RiskScore)
}
