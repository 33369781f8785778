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

package services

import (
	"encoding/json"
	"errors"

	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/shared"
	"gorm.io/gorm"
)

type configService struct {
	repository shared.ConfigRepository
}

func NewConfigService(repository shared.ConfigRepository) *configService {
	return &configService{
		repository: repository,
	}
}

// GetJSONConfig returns shared.ErrNotFound for a missing key.
func (service *configService) GetJSONConfig(key string, v any) error {
	var config models.Config
	if err := service.repository.GetDB(nil).Where("key = ?", key).First(&config).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NotFoundError{Entity: "config", ID: key}
		}
		return err
	}

	return json.Unmarshal([]byte(config.Val), v)
}

func (service *configService) SetJSONConfig(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return service.repository.Save(nil, &models.Config{
		Key: key,
		Val: string(b),
	})
}

func (service *configService) RemoveConfig(key string) error {
	return service.repository.GetDB(nil).Where("key = ?", key).Delete(&models.Config{}).Error
}
