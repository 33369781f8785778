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
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

const fileContentKind = "file"

func NewScanCommand() *cobra.Command {
	scan := &cobra.Command{
		Use:   "scan <path>...",
		Short: "Scans files and applies the governance actions of the owner policy",
		Long:  `Directories are walked recursively. Every file is stored as content of kind "file" with its path as id.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerID, _ := cmd.Flags().GetString("owner")

			files, err := collectFiles(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				slog.Info("nothing to scan")
				return nil
			}

			p, err := newPipeline()
			if err != nil {
				return err
			}
			defer p.Close()

			results := make(map[string]shared.ModerationResult, len(files))
			bar := progressbar.Default(int64(len(files)))
			for _, file := range files {
				bar.Add(1) // nolint:errcheck
				data, err := os.ReadFile(file)
				if err != nil {
					slog.Warn("could not read file", "file", file, "err", err)
					continue
				}

				result, err := p.moderationService.Process(cmd.Context(), shared.NewTextContent(fileContentKind, file, string(data)), ownerID, dtos.ScanTriggerBulk)
				if err != nil {
					slog.Warn("could not scan file", "file", file, "err", err)
					continue
				}
				results[file] = result
			}

			fmt.Println(renderScanResults(files, results))
			return nil
		},
	}

	scan.Flags().StringP("owner", "o", "", "Owner whose policy applies to the scanned files")
	scan.MarkFlagRequired("owner") // nolint:errcheck
	return scan
}

func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			files = append(files, p)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// renderScanResults lists the files with at least one violation or action.
func renderScanResults(files []string, results map[string]shared.ModerationResult) string {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"File", "Status", "Risk score", "Violations", "Actions"})
	for _, file := range files {
		result, ok := results[file]
		if !ok || result.Skipped {
			continue
		}
		if len(result.Scan.Violations) == 0 && len(result.Actions) == 0 {
			continue
		}
		actions := make([]string, 0, len(result.Actions))
		for _, action := range result.Actions {
			actions = append(actions, string(action.Kind))
		}
		tw.AppendRow(table.Row{file, result.Scan.Record.Status, result.Scan.Record.RiskScore, len(result.Scan.Violations), actions})
	}
	tw.SetStyle(table.StyleLight)
	return tw.Render()
}
