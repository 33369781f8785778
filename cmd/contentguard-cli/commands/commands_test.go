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

package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectFiles(t *testing.T) {
	t.Run("should walk directories recursively", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "b.txt"), []byte("b"), 0o600))

		files, err := collectFiles([]string{dir})
		assert.NoError(t, err)
		assert.ElementsMatch(t, []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "nested", "b.txt")}, files)
	})

	t.Run("should accept single files", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "single.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

		files, err := collectFiles([]string{file})
		assert.NoError(t, err)
		assert.Equal(t, []string{file}, files)
	})

	t.Run("should fail for missing paths", func(t *testing.T) {
		_, err := collectFiles([]string{filepath.Join(t.TempDir(), "missing")})
		assert.Error(t, err)
	})
}

func TestRenderScanResults(t *testing.T) {
	t.Run("should only list files with findings", func(t *testing.T) {
		results := map[string]shared.ModerationResult{
			"clean.txt":   {Scan: shared.ScanResult{Record: models.ScanRecord{Status: dtos.ScanStatusCompleted}}},
			"skipped.txt": {Skipped: true},
			"secret.txt": {
				Scan:    shared.ScanResult{Record: models.ScanRecord{Status: dtos.ScanStatusCompleted, RiskScore: 87.5}, Violations: []models.Violation{{}}},
				Actions: []models.GovernanceAction{{Kind: dtos.ActionKindQuarantine}},
			},
		}

		out := renderScanResults([]string{"clean.txt", "skipped.txt", "secret.txt", "unreadable.txt"}, results)
		assert.Contains(t, out, "secret.txt")
		assert.Contains(t, out, "quarantine")
		assert.NotContains(t, out, "clean.txt")
		assert.NotContains(t, out, "skipped.txt")
	})
}

func TestRenderRules(t *testing.T) {
	t.Run("should print one row per rule", func(t *testing.T) {
		out := renderRules([]models.DetectionRule{
			{Slug: "us-ssn", Name: "US SSN", Kind: dtos.RuleKindRegex, Severity: dtos.SeverityHigh, Active: true, Version: 2},
			{Slug: "internal-codenames", Name: "Codenames", Kind: dtos.RuleKindKeywordList, Severity: dtos.SeverityLow},
		})
		assert.Contains(t, out, "us-ssn")
		assert.Contains(t, out, "internal-codenames")
		assert.Contains(t, out, "keyword-list")
	})
}
