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
	"log/slog"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/services"
	"github.com/spf13/cobra"
)

func NewRulesCommand() *cobra.Command {
	rules := cobra.Command{
		Use:   "rules",
		Short: "Manage detection rules",
	}

	rules.AddCommand(newRulesListCommand())
	rules.AddCommand(newRulesImportCommand())
	rules.AddCommand(newRulesRefreshCommand())
	return &rules
}

func renderRules(rules []models.DetectionRule) string {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Slug", "Name", "Kind", "Severity", "Active", "Auto quarantine", "Version"})
	for _, rule := range rules {
		tw.AppendRow(table.Row{rule.Slug, rule.Name, rule.Kind, rule.Severity, rule.Active, rule.AutoQuarantine, rule.Version})
	}
	tw.SetStyle(table.StyleLight)
	return tw.Render()
}

func newRulesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lists every detection rule",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			defer p.Close()

			rules, err := p.ruleService.ListRules()
			if err != nil {
				return err
			}
			fmt.Println(renderRules(rules))
			return nil
		},
	}
}

func newRulesImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Imports the rules of a yaml file. Rules with a known slug are updated.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			rules, err := services.ParseRuleImportFile(data)
			if err != nil {
				return err
			}

			p, err := newPipeline()
			if err != nil {
				return err
			}
			defer p.Close()

			imported, err := p.ruleService.ImportRules(cmd.Context(), rules)
			if err != nil {
				return err
			}
			slog.Info("imported detection rules", "count", imported, "file", args[0])
			return nil
		},
	}
}

func newRulesRefreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Tells every running instance to recompile its detection rules",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			defer p.Close()

			s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
			s.Suffix = " recompiling detection rules"
			s.Start()
			res, err := p.ruleService.Refresh(cmd.Context())
			s.Stop()
			if err != nil {
				return err
			}
			slog.Info("detection rules refreshed", "active", res.ActiveRules, "degraded", res.Degraded)
			return nil
		},
	}
}
