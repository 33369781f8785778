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

type PolicyRequest struct {
	AutoScanEnabled        bool             `json:"autoScanEnabled"`
	SensitivityThreshold   SensitivityLevel `json:"sensitivityThreshold" validate:"required,oneof=low medium high"`
	NotifyOnViolation      bool             `json:"notifyOnViolation"`
	NotifyOnQuarantine     bool             `json:"notifyOnQuarantine"`
	AutoQuarantineCritical bool             `json:"autoQuarantineCritical"`
	AutoBlockSharing       bool             `json:"autoBlockSharing"`
	QuarantineDays         int              `json:"quarantineDays" validate:"min=0,max=365"`
}
