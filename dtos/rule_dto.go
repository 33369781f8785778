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

package dtos

// RuleImport is one entry of a rule import file.
type RuleImport struct {
	Name           string   `yaml:"name" json:"name" validate:"required,max=255"`
	Description    string   `yaml:"description" json:"description"`
	Kind           RuleKind `yaml:"kind" json:"kind" validate:"required,oneof=regex keyword-list"`
	Expression     string   `yaml:"expression" json:"expression" validate:"required"`
	Severity       Severity `yaml:"severity" json:"severity" validate:"required,oneof=low medium high critical"`
	Active         *bool    `yaml:"active" json:"active"`
	AutoQuarantine bool     `yaml:"autoQuarantine" json:"autoQuarantine"`
	CaseSensitive  bool     `yaml:"caseSensitive" json:"caseSensitive"`
	WholeWord      bool     `yaml:"wholeWord" json:"wholeWord"`
	MinimumMatches int      `yaml:"minimumMatches" json:"minimumMatches" validate:"min=0"`
}

type RuleImportFile struct {
	Rules []RuleImport `yaml:"rules" validate:"dive"`
}

type RuleRefreshResponse struct {
	ActiveRules int `json:"activeRules"`
	Degraded    int `json:"degraded"`
}
