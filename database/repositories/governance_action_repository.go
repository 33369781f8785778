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
	"gorm.io/gorm/clause"
)

type governanceActionRepository struct {
	shared.Repository[uuid.UUID, models.GovernanceAction]
	db shared.DB
}

func NewGovernanceActionRepository(db shared.DB) *governanceActionRepository {
	return &governanceActionRepository{
		db:         db,
		Repository: newGormRepository[uuid.UUID, models.GovernanceAction](db),
	}
}

// CreateIfNotActive relies on the unique active key index. A conflicting insert is a no-op,
// so two concurrent triggers can never both create the same restriction.
func (r *governanceActionRepository) CreateIfNotActive(tx shared.DB, action *models.GovernanceAction) (bool, error) {
	res := r.Repository.GetDB(tx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(action)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *governanceActionRepository) FindByActiveKey(tx shared.DB, activeKey string) (models.GovernanceAction, error) {
	var action models.GovernanceAction
	err := r.Repository.GetDB(tx).Where("active_key = ?", activeKey).First(&action).Error
	return action, err
}

func (r *governanceActionRepository) FindByScanRecord(tx shared.DB, scanRecordID uuid.UUID) ([]models.GovernanceAction, error) {
	var actions []models.GovernanceAction
	err := r.Repository.GetDB(tx).Where("scan_record_id = ?", scanRecordID).Order("created_at ASC, id ASC").Find(&actions).Error
	return actions, err
}

func (r *governanceActionRepository) FindActiveRestrictions(tx shared.DB, activeKeys []string, now time.Time) ([]models.GovernanceAction, error) {
	var actions []models.GovernanceAction
	if len(activeKeys) == 0 {
		return actions, nil
	}
	err := r.Repository.GetDB(tx).
		Where("active_key IN ?", activeKeys).
		Where("(expiry IS NULL OR expiry > ?)", now).
		Order("created_at ASC, id ASC").
		Find(&actions).Error
	return actions, err
}

func (r *governanceActionRepository) FindPendingReviews(tx shared.DB) ([]models.GovernanceAction, error) {
	var actions []models.GovernanceAction
	err := r.Repository.GetDB(tx).
		Preload("ScanRecord").
		Where("kind = ? AND status = ?", dtos.ActionKindRequireReview, dtos.ActionStatusPending).
		Order("created_at ASC, id ASC").
		Find(&actions).Error
	return actions, err
}

func (r *governanceActionRepository) FindEscalatedReviews(tx shared.DB) ([]models.GovernanceAction, error) {
	var actions []models.GovernanceAction
	err := r.Repository.GetDB(tx).
		Preload("ScanRecord").
		Where("kind = ? AND status = ?", dtos.ActionKindRequireReview, dtos.ActionStatusRequiresReview).
		Order("escalation_level DESC, created_at ASC, id ASC").
		Find(&actions).Error
	return actions, err
}

// FindExpired returns restrictions which still hold their active key although the expiry passed.
func (r *governanceActionRepository) FindExpired(tx shared.DB, now time.Time) ([]models.GovernanceAction, error) {
	var actions []models.GovernanceAction
	err := r.Repository.GetDB(tx).
		Where("active_key IS NOT NULL AND expiry IS NOT NULL AND expiry <= ?", now).
		Order("expiry ASC, id ASC").
		Find(&actions).Error
	return actions, err
}

// ClearActiveKey ends the restriction. Only one of two concurrent callers sees true.
func (r *governanceActionRepository) ClearActiveKey(tx shared.DB, id uuid.UUID) (bool, error) {
	res := r.Repository.GetDB(tx).Model(&models.GovernanceAction{}).
		Where("id = ? AND active_key IS NOT NULL", id).
		Update("active_key", nil)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *governanceActionRepository) SaveReviewDecision(tx shared.DB, action *models.GovernanceAction, from dtos.ActionStatus) (bool, error) {
	res := r.Repository.GetDB(tx).Model(&models.GovernanceAction{}).
		Where("id = ? AND status = ?", action.ID, from).
		Updates(map[string]any{
			"status":           action.Status,
			"reviewed_by":      action.ReviewedBy,
			"reviewed_at":      action.ReviewedAt,
			"escalation_level": action.EscalationLevel,
			"payload":          action.Payload,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
