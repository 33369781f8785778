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

import "github.com/l3montree-dev/contentguard/dtos"

// PolicyConfig is owned by the tenant administration. The pipeline only reads it.
type PolicyConfig struct {
	Model
	OwnerID                string                `json:"ownerId" gorm:"type:text;not null;uniqueIndex:idx_policy_configs_owner"`
	AutoScanEnabled        bool                  `json:"autoScanEnabled" gorm:"not null"`
	SensitivityThreshold   dtos.SensitivityLevel `json:"sensitivityThreshold" gorm:"type:text;not null"`
	NotifyOnViolation      bool                  `json:"notifyOnViolation" gorm:"not null"`
	NotifyOnQuarantine     bool                  `json:"notifyOnQuarantine" gorm:"not null"`
	AutoQuarantineCritical bool                  `json:"autoQuarantineCritical" gorm:"not null"`
	AutoBlockSharing       bool                  `json:"autoBlockSharing" gorm:"not null"`
	QuarantineDays         int                   `json:"quarantineDays" gorm:"not null"`
}

func (PolicyConfig) TableName() string {
	return "policy_configs"
}

func DefaultPolicyConfig(ownerID string, quarantineDays int) PolicyConfig {
	return PolicyConfig{
		OwnerID:                ownerID,
		AutoScanEnabled:        true,
		SensitivityThreshold:   dtos.SensitivityMedium,
		NotifyOnViolation:      true,
		NotifyOnQuarantine:     true,
		AutoQuarantineCritical: true,
		AutoBlockSharing:       false,
		QuarantineDays:         quarantineDays,
	}
}
