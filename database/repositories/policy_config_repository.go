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
	"gorm.io/gorm/clause"
)

type policyConfigRepository struct {
	shared.Repository[uuid.UUID, models.PolicyConfig]
	db shared.DB
}

func NewPolicyConfigRepository(db shared.DB) *policyConfigRepository {
	return &policyConfigRepository{
		db:         db,
		Repository: newGormRepository[uuid.UUID, models.PolicyConfig](db),
	}
}

func (r *policyConfigRepository) FindByOwner(ownerID string) (models.PolicyConfig, error) {
	var policy models.PolicyConfig
	err := r.db.Where("owner_id = ?", ownerID).First(&policy).Error
	return policy, err
}

func (r *policyConfigRepository) Upsert(tx shared.DB, policy *models.PolicyConfig) error {
	return r.Repository.GetDB(tx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"auto_scan_enabled",
			"sensitivity_threshold",
			"notify_on_violation",
			"notify_on_quarantine",
			"auto_quarantine_critical",
			"auto_block_sharing",
			"quarantine_days",
			"updated_at",
		}),
	}).Create(policy).Error
}
