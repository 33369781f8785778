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

package shared

import (
	"fmt"

	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/utils"
)

type ScanResult struct {
	Record     models.ScanRecord  `json:"record"`
	Violations []models.Violation `json:"violations"`
	Truncated  bool               `json:"truncated"`
}

// Failed scans never reach the action engine.
func (r ScanResult) Failed() bool {
	return r.Record.Status == dtos.ScanStatusFailed
}

type ModerationResult struct {
	Scan    ScanResult                `json:"scan"`
	Actions []models.GovernanceAction `json:"actions"`
	// Skipped is set when the owner disabled automatic scanning.
	Skipped bool `json:"skipped"`
}

type ReviewQueueItem struct {
	Action      models.GovernanceAction `json:"action"`
	Priority    float64                 `json:"priority"`
	DaysPending int                     `json:"daysPending"`
	RiskLevel   dtos.RiskLevel          `json:"riskLevel"`
}

type ScanJob struct {
	Content ContentRef
	OwnerID string
	Trigger dtos.ScanTrigger
}

// IdempotencyKey identifies the job by content and text, so an unchanged text is only scanned once.
func (j ScanJob) IdempotencyKey() string {
	return fmt.Sprintf("%s:%s:%s", j.Content.Kind(), j.Content.ID(), utils.HashString(j.Content.Text()))
}
