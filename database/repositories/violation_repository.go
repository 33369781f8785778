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

package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/shared"
)

type violationRepository struct {
	shared.Repository[uuid.UUID, models.Violation]
	db shared.DB
}

func NewViolationRepository(db shared.DB) *violationRepository {
	return &violationRepository{
		db:         db,
		Repository: newGormRepository[uuid.UUID, models.Violation](db),
	}
}

func (r *violationRepository) FindByScanRecord(tx shared.DB, scanRecordID uuid.UUID) ([]models.Violation, error) {
	var violations []models.Violation
	err := r.Repository.GetDB(tx).Where("scan_record_id = ?", scanRecordID).Order("rule_id ASC").Find(&violations).Error
	return violations, err
}

func (r *violationRepository) FindUnresolvedByScanRecord(tx shared.DB, scanRecordID uuid.UUID) ([]models.Violation, error) {
	var violations []models.Violation
	err := r.Repository.GetDB(tx).Where("scan_record_id = ? AND resolved = ?", scanRecordID, false).Order("rule_id ASC").Find(&violations).Error
	return violations, err
}

func (r *violationRepository) MarkResolved(tx shared.DB, id uuid.UUID, resolver string, kind dtos.ResolutionKind, notes string, at time.Time) (bool, error) {
	res := r.Repository.GetDB(tx).Model(&models.Violation{}).
		Where("id = ? AND resolved = ?", id, false).
		Updates(map[string]any{
			"resolved":         true,
			"resolution_kind":  kind,
			"resolution_notes": notes,
			"resolved_by":      resolver,
			"resolved_at":      at,
			"updated_at":       at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
