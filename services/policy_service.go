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
	"context"
	"errors"
	"log/slog"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/shared"
	"gorm.io/gorm"
)

type policyService struct {
	repository            shared.PolicyConfigRepository
	broker                shared.PubSubBroker
	cache                 *expirable.LRU[string, models.PolicyConfig]
	defaultQuarantineDays int
}

func NewPolicyService(repository shared.PolicyConfigRepository, broker shared.PubSubBroker, cfg shared.ModerationConfig) *policyService {
	return &policyService{
		repository:            repository,
		broker:                broker,
		cache:                 expirable.NewLRU[string, models.PolicyConfig](max(cfg.Policy.CacheSize, 1), nil, cfg.Policy.CacheTTL),
		defaultQuarantineDays: max(cfg.Policy.DefaultQuarantineDays, 1),
	}
}

// GetPolicy returns the stored policy of the owner or the defaults. Both are cached.
func (s *policyService) GetPolicy(ownerID string) (models.PolicyConfig, error) {
	if policy, ok := s.cache.Get(ownerID); ok {
		return policy, nil
	}

	policy, err := s.repository.FindByOwner(ownerID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PolicyConfig{}, err
		}
		policy = models.DefaultPolicyConfig(ownerID, s.defaultQuarantineDays)
	}
	if policy.QuarantineDays <= 0 {
		policy.QuarantineDays = s.defaultQuarantineDays
	}

	s.cache.Add(ownerID, policy)
	return policy, nil
}

func (s *policyService) Invalidate(ownerID string) {
	s.cache.Remove(ownerID)
}

// Upsert stores the policy and tells the other instances to drop their cached copy.
func (s *policyService) Upsert(policy *models.PolicyConfig) error {
	if err := s.repository.Upsert(nil, policy); err != nil {
		return err
	}
	s.Invalidate(policy.OwnerID)

	if s.broker != nil {
		msg := shared.NewSimplePubSubMessage(shared.PolicyConfigChange, map[string]any{"ownerId": policy.OwnerID})
		if err := s.broker.Publish(context.Background(), msg); err != nil {
			slog.Warn("could not publish policy change", "ownerId", policy.OwnerID, "err", err)
		}
	}
	return nil
}
