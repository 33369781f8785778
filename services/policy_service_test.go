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
	"testing"

	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/database/repositories"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/integrationtestutil"
	"github.com/l3montree-dev/contentguard/mocks"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPolicyService(t *testing.T) {
	t.Run("should fall back to the defaults", func(t *testing.T) {
		db := integrationtestutil.InitSQLiteDatabase(t)
		service := NewPolicyService(repositories.NewPolicyConfigRepository(db), nil, shared.DefaultModerationConfig())

		policy, err := service.GetPolicy("owner")
		require.NoError(t, err)
		assert.True(t, policy.AutoScanEnabled)
		assert.Equal(t, dtos.SensitivityMedium, policy.SensitivityThreshold)
		assert.True(t, policy.NotifyOnViolation)
		assert.True(t, policy.NotifyOnQuarantine)
		assert.True(t, policy.AutoQuarantineCritical)
		assert.False(t, policy.AutoBlockSharing)
		assert.Equal(t, 7, policy.QuarantineDays)
	})

	t.Run("should serve cached policies until invalidated", func(t *testing.T) {
		db := integrationtestutil.InitSQLiteDatabase(t)
		repository := repositories.NewPolicyConfigRepository(db)
		service := NewPolicyService(repository, nil, shared.DefaultModerationConfig())

		_, err := service.GetPolicy("owner")
		require.NoError(t, err)

		stored := models.DefaultPolicyConfig("owner", 14)
		stored.SensitivityThreshold = dtos.SensitivityHigh
		require.NoError(t, repository.Upsert(nil, &stored))

		cached, err := service.GetPolicy("owner")
		require.NoError(t, err)
		assert.Equal(t, dtos.SensitivityMedium, cached.SensitivityThreshold)

		service.Invalidate("owner")
		fresh, err := service.GetPolicy("owner")
		require.NoError(t, err)
		assert.Equal(t, dtos.SensitivityHigh, fresh.SensitivityThreshold)
		assert.Equal(t, 14, fresh.QuarantineDays)
	})

	t.Run("should publish a change after an upsert", func(t *testing.T) {
		db := integrationtestutil.InitSQLiteDatabase(t)
		broker := mocks.NewPubSubBroker(t)
		broker.On("Publish", mock.Anything, mock.MatchedBy(func(msg shared.PubSubMessage) bool {
			return msg.GetChannel() == shared.PolicyConfigChange && msg.GetPayload()["ownerId"] == "owner"
		})).Return(nil).Once()
		service := NewPolicyService(repositories.NewPolicyConfigRepository(db), broker, shared.DefaultModerationConfig())

		policy := models.DefaultPolicyConfig("owner", 3)
		policy.AutoBlockSharing = true
		require.NoError(t, service.Upsert(&policy))

		stored, err := service.GetPolicy("owner")
		require.NoError(t, err)
		assert.True(t, stored.AutoBlockSharing)
		assert.Equal(t, 3, stored.QuarantineDays)
	})
}
