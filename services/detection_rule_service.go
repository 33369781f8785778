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
	"fmt"
	"log/slog"

	"github.com/gosimple/slug"
	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/detection"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/shared"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// ParseRuleImportFile reads a yaml rule file and validates every entry.
func ParseRuleImportFile(data []byte) ([]dtos.RuleImport, error) {
	var file dtos.RuleImportFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("could not parse rule file: %w", err)
	}
	if err := shared.V.Struct(file); err != nil {
		return nil, fmt.Errorf("invalid rule file: %w", err)
	}
	return file.Rules, nil
}

type detectionRuleService struct {
	ruleRepository shared.DetectionRuleRepository
	registry       *detection.PatternRegistry
	broker         shared.PubSubBroker
}

func NewDetectionRuleService(ruleRepository shared.DetectionRuleRepository, registry *detection.PatternRegistry, broker shared.PubSubBroker) *detectionRuleService {
	return &detectionRuleService{
		ruleRepository: ruleRepository,
		registry:       registry,
		broker:         broker,
	}
}

func (s *detectionRuleService) ListRules() ([]models.DetectionRule, error) {
	return s.ruleRepository.All()
}

func ruleFromImport(rule *models.DetectionRule, in dtos.RuleImport) {
	rule.Name = in.Name
	rule.Slug = slug.Make(in.Name)
	rule.Description = in.Description
	rule.Kind = in.Kind
	rule.Expression = in.Expression
	rule.Severity = in.Severity
	rule.Active = in.Active == nil || *in.Active
	rule.AutoQuarantine = in.AutoQuarantine
	rule.CaseSensitive = in.CaseSensitive
	rule.WholeWord = in.WholeWord
	rule.MinimumMatches = max(in.MinimumMatches, 1)
}

// ImportRules upserts the rules by slug. The whole import is rejected if a single rule does not compile.
func (s *detectionRuleService) ImportRules(ctx context.Context, rules []dtos.RuleImport) (int, error) {
	for i, in := range rules {
		if err := shared.V.Struct(in); err != nil {
			return 0, fmt.Errorf("rule %d: %w", i, err)
		}
		var candidate models.DetectionRule
		ruleFromImport(&candidate, in)
		if _, err := s.registry.Compile(candidate); err != nil {
			return 0, err
		}
	}

	err := s.ruleRepository.Transaction(func(tx shared.DB) error {
		for _, in := range rules {
			existing, err := s.ruleRepository.FindBySlug(tx, slug.Make(in.Name))
			switch {
			case err == nil:
				ruleFromImport(&existing, in)
				if err := s.ruleRepository.Save(tx, &existing); err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				var rule models.DetectionRule
				ruleFromImport(&rule, in)
				rule.Version = 1
				if err := s.ruleRepository.Create(tx, &rule); err != nil {
					return err
				}
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("could not import rules: %w", err)
	}

	slog.Info("detection rules imported", "count", len(rules))
	if _, err := s.Refresh(ctx); err != nil {
		return len(rules), err
	}
	return len(rules), nil
}

// Refresh reloads the local registry and tells the other instances to do the same.
func (s *detectionRuleService) Refresh(ctx context.Context) (dtos.RuleRefreshResponse, error) {
	snapshot, err := s.registry.Refresh()
	if err != nil {
		return dtos.RuleRefreshResponse{}, err
	}

	if s.broker != nil {
		msg := shared.NewSimplePubSubMessage(shared.DetectionRuleChange, map[string]any{"rules": snapshot.Len()})
		if err := s.broker.Publish(ctx, msg); err != nil {
			slog.Warn("could not publish detection rule change", "err", err)
		}
	}
	return dtos.RuleRefreshResponse{ActiveRules: snapshot.Len(), Degraded: snapshot.DegradedCount()}, nil
}
