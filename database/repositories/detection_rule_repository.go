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

type detectionRuleRepository struct {
	shared.Repository[uuid.UUID, models.DetectionRule]
	db shared.DB
}

func NewDetectionRuleRepository(db shared.DB) *detectionRuleRepository {
	return &detectionRuleRepository{
		db:         db,
		Repository: newGormRepository[uuid.UUID, models.DetectionRule](db),
	}
}

// FindActive returns the active rules ordered by id.
func (r *detectionRuleRepository) FindActive(tx shared.DB) ([]models.DetectionRule, error) {
	var rules []models.DetectionRule
	err := r.Repository.GetDB(tx).Where("active = ?", true).Order("id ASC").Find(&rules).Error
	return rules, err
}

func (r *detectionRuleRepository) FindBySlug(tx shared.DB, slug string) (models.DetectionRule, error) {
	var rule models.DetectionRule
	err := r.Repository.GetDB(tx).Where("slug = ?", slug).First(&rule).Error
	return rule, err
}
