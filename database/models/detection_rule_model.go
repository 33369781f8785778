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
	"gorm.io/gorm"
)

type DetectionRule struct {
	Model
	Name        string        `json:"name" gorm:"type:text;not null"`
	Slug        string        `json:"slug" gorm:"type:text;not null;uniqueIndex:idx_detection_rules_slug"`
	Description string        `json:"description" gorm:"type:text"`
	Kind        dtos.RuleKind `json:"kind" gorm:"type:text;not null"`
	// Expression is a regular expression or a newline / comma separated keyword list, depending on Kind.
	Expression     string        `json:"expression" gorm:"type:text;not null"`
	Severity       dtos.Severity `json:"severity" gorm:"type:text;not null"`
	Active         bool          `json:"active" gorm:"not null;index:idx_detection_rules_active"`
	AutoQuarantine bool          `json:"autoQuarantine" gorm:"not null;default:false"`
	CaseSensitive  bool          `json:"caseSensitive" gorm:"not null;default:false"`
	WholeWord      bool          `json:"wholeWord" gorm:"not null;default:false"`
	MinimumMatches int           `json:"minimumMatches" gorm:"not null;default:1"`
	Version        int           `json:"version" gorm:"not null;default:1"`
}

func (DetectionRule) TableName() string {
	return "detection_rules"
}

func (r *DetectionRule) BeforeUpdate(tx *gorm.DB) error {
	r.Version++
	return nil
}

// EffectiveMinimumMatches treats values below one as one.
func (r DetectionRule) EffectiveMinimumMatches() int {
	if r.MinimumMatches < 1 {
		return 1
	}
	return r.MinimumMatches
}
