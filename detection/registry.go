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
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/monitoring"
	"github.com/l3montree-dev/contentguard/shared"
)

// neverMatch is used for rules which could not be compiled.
const neverMatch = `[^\s\S]`

var neverMatchRegexp = regexp.MustCompile(neverMatch)

var errEmptyExpression = errors.New("empty expression")

type RuleCompileError struct {
	RuleID   uuid.UUID
	RuleName string
	Err      error
}

func (e *RuleCompileError) Error() string {
	return fmt.Sprintf("could not compile rule %s (%s): %v", e.RuleName, e.RuleID, e.Err)
}

func (e *RuleCompileError) Unwrap() error {
	return e.Err
}

type RuleLoader interface {
	FindActive(tx shared.DB) ([]models.DetectionRule, error)
}

type CompiledRule struct {
	ID             uuid.UUID
	Name           string
	Kind           dtos.RuleKind
	Severity       dtos.Severity
	AutoQuarantine bool
	MinimumMatches int
	Pattern        *regexp.Regexp
	// Degraded rules failed to compile and never match.
	Degraded bool
}

// Snapshot is an immutable view of the active rules at load time.
type Snapshot struct {
	rules    []CompiledRule
	LoadedAt time.Time
}

func NewSnapshot(rules []CompiledRule) *Snapshot {
	sorted := slices.Clone(rules)
	slices.SortFunc(sorted, func(a, b CompiledRule) int {
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return &Snapshot{rules: sorted, LoadedAt: time.Now()}
}

func (s *Snapshot) Rules() []CompiledRule {
	return slices.Clone(s.rules)
}

func (s *Snapshot) OfKind(kind dtos.RuleKind) []CompiledRule {
	var out []CompiledRule
	for _, r := range s.rules {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

func (s *Snapshot) Len() int {
	return len(s.rules)
}

func (s *Snapshot) DegradedCount() int {
	n := 0
	for _, r := range s.rules {
		if r.Degraded {
			n++
		}
	}
	return n
}

type patternKey struct {
	expression    string
	kind          dtos.RuleKind
	caseSensitive bool
	wholeWord     bool
}

type compiledPattern struct {
	re  *regexp.Regexp
	err error
}

// PatternRegistry loads the active rules and publishes them as snapshots.
// Scans keep the snapshot they started with, a refresh swaps the pointer.
type PatternRegistry struct {
	loader RuleLoader

	cacheMu sync.Mutex
	cache   map[patternKey]compiledPattern

	snapshot atomic.Pointer[Snapshot]
}

func NewPatternRegistry(loader RuleLoader) *PatternRegistry {
	return &PatternRegistry{
		loader: loader,
		cache:  make(map[patternKey]compiledPattern),
	}
}

func keyOf(rule models.DetectionRule) patternKey {
	return patternKey{
		expression:    rule.Expression,
		kind:          rule.Kind,
		caseSensitive: rule.CaseSensitive,
		wholeWord:     rule.WholeWord,
	}
}

// BuildExpression turns the stored rule into the regular expression which is matched.
func BuildExpression(rule models.DetectionRule) (string, error) {
	var expr string
	switch rule.Kind {
	case dtos.RuleKindRegex:
		expr = strings.TrimSpace(rule.Expression)
	case dtos.RuleKindKeywordList:
		keywords := SplitKeywords(rule.Expression)
		if len(keywords) == 0 {
			return "", errEmptyExpression
		}
		quoted := make([]string, 0, len(keywords))
		for _, k := range keywords {
			quoted = append(quoted, regexp.QuoteMeta(k))
		}
		expr = strings.Join(quoted, "|")
	default:
		return "", fmt.Errorf("unknown rule kind %q", rule.Kind)
	}

	if expr == "" {
		return "", errEmptyExpression
	}
	if rule.WholeWord {
		expr = `\b(?:` + expr + `)\b`
	}
	if !rule.CaseSensitive {
		expr = `(?i)` + expr
	}
	return expr, nil
}

// SplitKeywords splits a newline or comma separated keyword list.
// Longer keywords come first so the alternation prefers "credit card" over "credit".
func SplitKeywords(list string) []string {
	fields := strings.FieldsFunc(list, func(r rune) bool {
		return r == '\n' || r == ',' || r == '\r'
	})
	seen := make(map[string]struct{}, len(fields))
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		k := strings.TrimSpace(f)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keywords = append(keywords, k)
	}
	slices.SortStableFunc(keywords, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return keywords
}

func (r *PatternRegistry) compilePattern(rule models.DetectionRule) compiledPattern {
	key := keyOf(rule)

	r.cacheMu.Lock()
	cached, ok := r.cache[key]
	r.cacheMu.Unlock()
	if ok {
		return cached
	}

	var result compiledPattern
	expr, err := BuildExpression(rule)
	if err != nil {
		result.err = err
	} else {
		result.re, result.err = regexp.Compile(expr)
	}

	r.cacheMu.Lock()
	r.cache[key] = result
	r.cacheMu.Unlock()
	return result
}

// Compile never fails hard. A rule which does not compile is returned degraded
// together with a RuleCompileError.
func (r *PatternRegistry) Compile(rule models.DetectionRule) (CompiledRule, error) {
	compiled := CompiledRule{
		ID:             rule.ID,
		Name:           rule.Name,
		Kind:           rule.Kind,
		Severity:       rule.Severity,
		AutoQuarantine: rule.AutoQuarantine,
		MinimumMatches: rule.EffectiveMinimumMatches(),
	}

	pattern := r.compilePattern(rule)
	if pattern.err != nil {
		compiled.Pattern = neverMatchRegexp
		compiled.Degraded = true
		return compiled, &RuleCompileError{RuleID: rule.ID, RuleName: rule.Name, Err: pattern.err}
	}
	compiled.Pattern = pattern.re
	return compiled, nil
}

// Load builds a fresh snapshot from the active rules. Zero rules is a valid snapshot.
func (r *PatternRegistry) Load() (*Snapshot, error) {
	rules, err := r.loader.FindActive(nil)
	if err != nil {
		return nil, fmt.Errorf("could not load active detection rules: %w", err)
	}

	compiled := make([]CompiledRule, 0, len(rules))
	used := make(map[patternKey]struct{}, len(rules))
	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		c, err := r.Compile(rule)
		if err != nil {
			slog.Warn("detection rule degraded to never match", "rule", rule.Name, "ruleID", rule.ID, "err", err)
			monitoring.RuleCompileErrors.Inc()
		}
		used[keyOf(rule)] = struct{}{}
		compiled = append(compiled, c)
	}

	// drop patterns of rules which are gone
	r.cacheMu.Lock()
	for key := range r.cache {
		if _, ok := used[key]; !ok {
			delete(r.cache, key)
		}
	}
	r.cacheMu.Unlock()

	return NewSnapshot(compiled), nil
}

func (r *PatternRegistry) Refresh() (*Snapshot, error) {
	snapshot, err := r.Load()
	if err != nil {
		return nil, err
	}
	r.snapshot.Store(snapshot)
	monitoring.ActiveDetectionRules.Set(float64(snapshot.Len()))
	slog.Info("detection rules refreshed", "rules", snapshot.Len(), "degraded", snapshot.DegradedCount())
	return snapshot, nil
}

// Current returns the published snapshot and loads one on first use.
func (r *PatternRegistry) Current() (*Snapshot, error) {
	if s := r.snapshot.Load(); s != nil {
		return s, nil
	}
	return r.Refresh()
}
