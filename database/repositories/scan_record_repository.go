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
	"github.com/google/uuid"
	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/shared"
)

type scanRecordRepository struct {
	shared.Repository[uuid.UUID, models.ScanRecord]
	db shared.DB
}

func NewScanRecordRepository(db shared.DB) *scanRecordRepository {
	return &scanRecordRepository{
		db:         db,
		Repository: newGormRepository[uuid.UUID, models.ScanRecord](db),
	}
}

func (r *scanRecordRepository) ReadWithViolations(id uuid.UUID) (models.ScanRecord, error) {
	var record models.ScanRecord
	err := r.db.Preload("Violations", func(db shared.DB) shared.DB {
		return db.Order("rule_id ASC")
	}).First(&record, "id = ?", id).Error
	return record, err
}

func (r *scanRecordRepository) FindByContent(contentKind, contentID string) ([]models.ScanRecord, error) {
	var records []models.ScanRecord
	err := r.db.Where("content_kind = ? AND content_id = ?", contentKind, contentID).Order("created_at DESC").Find(&records).Error
	return records, err
}
