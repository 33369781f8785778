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

package detection

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/utils"
)

const (
	maxCountMultiplier  = 2.0
	maxLengthMultiplier = 2.0
	referenceLength     = 1000.0
)

type RuleContribution struct {
	RuleID       uuid.UUID
	Severity     dtos.Severity
	Contribution float64
}

type Assessment struct {
	Score           float64
	HighestSeverity *dtos.Severity
	RiskLevel       dtos.RiskLevel
	Contributions   []RuleContribution
}

// Contribution of a single matched rule before the length adjustment.
func Contribution(m RuleMatch) float64 {
	count := max(m.MatchCount, 1)
	c := m.Severity.Weight() * min(0.5+0.5*float64(count), maxCountMultiplier)
	if m.ContextBoosted {
		c *= ContextBoostFactor
	}
	return c
}

// lengthMultiplier favours short texts. A four character secret is worse than the same secret in a novel.
func lengthMultiplier(contentLength int) float64 {
	if contentLength <= 0 {
		return maxLengthMultiplier
	}
	return min(referenceLength/float64(contentLength), maxLengthMultiplier)
}

// Score aggregates the matches of a scan into a score between 0 and 100.
// The result does not depend on the order of matches.
func Score(matches []RuleMatch, contentLength int) Assessment {
	if len(matches) == 0 {
		return Assessment{Score: 0, RiskLevel: dtos.RiskLevelLow}
	}

	sorted := slices.Clone(matches)
	slices.SortFunc(sorted, func(a, b RuleMatch) int {
		return cmp.Compare(a.RuleID.String(), b.RuleID.String())
	})

	contributions := make([]RuleContribution, 0, len(sorted))
	sum := 0.0
	var highest *dtos.Severity
	for _, m := range sorted {
		c := Contribution(m)
		sum += c
		contributions = append(contributions, RuleContribution{RuleID: m.RuleID, Severity: m.Severity, Contribution: utils.RoundTo2(c)})
		if highest == nil || m.Severity.Weight() > highest.Weight() {
			highest = utils.Ptr(m.Severity)
		}
	}

	score := utils.RoundTo2(utils.Clamp(sum*lengthMultiplier(contentLength), 0, 100))
	return Assessment{
		Score:           score,
		HighestSeverity: highest,
		RiskLevel:       dtos.RiskLevelFromScore(score),
		Contributions:   contributions,
	}
}
