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
	"errors"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/utils"
	"golang.org/x/text/unicode/norm"
)

const (
	MaxLiteralMatches = 5
	SnippetRadius     = 50

	baseConfidence         = 0.6
	confidencePerMatch     = 0.1
	maxBaseConfidence      = 0.9
	contextBoostConfidence = 0.15
	ContextBoostFactor     = 1.25
)

var ErrInvalidEncoding = errors.New("content is not valid utf-8")

// field names which make a match more likely to be real
var sensitiveFieldHints = []string{
	"ssn", "social", "email", "mail", "phone", "mobile", "card", "credit", "iban", "account",
	"passport", "password", "secret", "token", "dob", "birth", "address", "tax",
}

type ScanContext struct {
	FieldName string
	Model     string
	App       string
	Size      int
}

type ScanInput struct {
	Text    string
	Context *ScanContext
}

type RuleMatch struct {
	RuleID         uuid.UUID
	RuleName       string
	Severity       dtos.Severity
	AutoQuarantine bool
	// Matches holds at most MaxLiteralMatches literal matches. MatchCount is not capped.
	Matches    []string
	MatchCount int
	// Snippet is the first match with SnippetRadius characters around it, every match starred out.
	Snippet        string
	StartOffset    int
	EndOffset      int
	Confidence     float64
	ContextBoosted bool
}

type ScanOutput struct {
	Matches       []RuleMatch
	Truncated     bool
	ContentLength int
}

type Scanner struct {
	maxChars int
}

// NewScanner returns a scanner which truncates texts longer than maxChars characters. Zero disables truncation.
func NewScanner(maxChars int) *Scanner {
	return &Scanner{maxChars: maxChars}
}

func isSensitiveField(fieldName string) bool {
	if fieldName == "" {
		return false
	}
	lower := strings.ToLower(fieldName)
	for _, hint := range sensitiveFieldHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// Normalize applies NFKC so full-width digits and similar look-alikes match the ascii rules.
func Normalize(text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", ErrInvalidEncoding
	}
	return norm.NFKC.String(text), nil
}

// Scan applies every rule of the snapshot to the text. Offsets are character offsets into the normalized text.
func (s *Scanner) Scan(snapshot *Snapshot, input ScanInput) (ScanOutput, error) {
	text, err := Normalize(input.Text)
	if err != nil {
		return ScanOutput{}, err
	}

	out := ScanOutput{ContentLength: utf8.RuneCountInString(text)}
	if s.maxChars > 0 && out.ContentLength > s.maxChars {
		text = truncateRunes(text, s.maxChars)
		out.Truncated = true
	}

	if strings.TrimSpace(text) == "" || snapshot == nil {
		return out, nil
	}

	boosted := input.Context != nil && isSensitiveField(input.Context.FieldName)
	idx := newRuneIndex(text)

	var hits []ruleHit
	var allLocs [][]int
	for _, rule := range snapshot.rules {
		if rule.Degraded || rule.Pattern == nil {
			continue
		}
		if locs, ok := findMatches(rule, text); ok {
			hits = append(hits, ruleHit{rule: rule, locs: locs})
			allLocs = append(allLocs, locs...)
		}
	}

	// one mask for all rules, so no snippet shows what another rule matched
	mask := matchMask(text, idx, allLocs)
	for _, hit := range hits {
		out.Matches = append(out.Matches, hit.toMatch(text, idx, mask, boosted))
	}

	slices.SortFunc(out.Matches, func(a, b RuleMatch) int {
		return cmp.Compare(a.RuleID.String(), b.RuleID.String())
	})
	return out, nil
}

type ruleHit struct {
	rule CompiledRule
	locs [][]int
}

// findMatches returns the byte ranges of all non empty matches, if there are at least the rule's minimum.
func findMatches(rule CompiledRule, text string) ([][]int, bool) {
	locs := rule.Pattern.FindAllStringIndex(text, -1)
	locs = slices.DeleteFunc(locs, func(loc []int) bool {
		return loc[0] == loc[1]
	})
	if len(locs) < max(rule.MinimumMatches, 1) {
		return nil, false
	}
	return locs, true
}

func (h ruleHit) toMatch(text string, idx runeIndex, mask []bool, boosted bool) RuleMatch {
	literals := make([]string, 0, min(len(h.locs), MaxLiteralMatches))
	for _, loc := range h.locs[:min(len(h.locs), MaxLiteralMatches)] {
		literals = append(literals, text[loc[0]:loc[1]])
	}

	confidence := min(baseConfidence+confidencePerMatch*float64(len(h.locs)-1), maxBaseConfidence)
	if boosted {
		confidence = min(confidence+contextBoostConfidence, 1.0)
	}

	start, end := idx.runeOffset(h.locs[0][0]), idx.runeOffset(h.locs[0][1])
	return RuleMatch{
		RuleID:         h.rule.ID,
		RuleName:       h.rule.Name,
		Severity:       h.rule.Severity,
		AutoQuarantine: h.rule.AutoQuarantine,
		Matches:        literals,
		MatchCount:     len(h.locs),
		Snippet:        redactedSnippet(idx, mask, h.locs[0]),
		StartOffset:    start,
		EndOffset:      end,
		Confidence:     utils.RoundTo2(confidence),
		ContextBoosted: boosted,
	}
}

func truncateRunes(text string, n int) string {
	i := 0
	for pos := range text {
		if i == n {
			return text[:pos]
		}
		i++
	}
	return text
}
