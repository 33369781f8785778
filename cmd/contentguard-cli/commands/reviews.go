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

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/l3montree-dev/contentguard/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewReviewsCommand() *cobra.Command {
	reviews := cobra.Command{
		Use:   "reviews",
		Short: "Work the review queue",
	}

	reviews.AddCommand(newReviewsListCommand())
	reviews.AddCommand(newReviewsApproveCommand())
	return &reviews
}

func renderReviewQueue(items []shared.ReviewQueueItem) string {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"ID", "Content", "Risk", "Priority", "Days pending", "Escalation"})
	for _, item := range items {
		content := fmt.Sprintf("%s/%s", item.Action.ScanRecord.ContentKind, item.Action.ScanRecord.ContentID)
		tw.AppendRow(table.Row{item.Action.ID, content, item.RiskLevel, item.Priority, item.DaysPending, item.Action.EscalationLevel})
	}
	tw.SetStyle(table.StyleLight)
	return tw.Render()
}

func newReviewsListCommand() *cobra.Command {
	list := &cobra.Command{
		Use:   "list",
		Short: "Lists the pending reviews, highest priority first",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			escalated, _ := cmd.Flags().GetBool("escalated")
			riskLevel, _ := cmd.Flags().GetString("risk-level")

			var filter dtos.ReviewQueueFilter
			if cmd.Flags().Changed("min-priority") {
				minPriority, _ := cmd.Flags().GetFloat64("min-priority")
				filter.MinPriority = &minPriority
			}
			if riskLevel != "" {
				filter.RiskLevel = utils.Ptr(dtos.RiskLevel(riskLevel))
			}

			p, err := newPipeline()
			if err != nil {
				return err
			}
			defer p.Close()

			var items []shared.ReviewQueueItem
			if escalated {
				items, err = p.reviewQueueService.EscalatedReviews()
			} else {
				items, err = p.reviewQueueService.PendingReviews(filter)
			}
			if err != nil {
				return err
			}
			fmt.Println(renderReviewQueue(items))
			return nil
		},
	}

	list.Flags().Bool("escalated", false, "Only list escalated reviews")
	list.Flags().Float64("min-priority", 0, "Minimum priority")
	list.Flags().String("risk-level", "", "Only list reviews of this risk level (low, medium, high, critical)")
	return list
}

func newReviewsApproveCommand() *cobra.Command {
	approve := &cobra.Command{
		Use:   "approve <id>...",
		Short: "Approves the given reviews and releases their restrictions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reviewer, _ := cmd.Flags().GetString("reviewer")
			notes, _ := cmd.Flags().GetString("notes")

			ids := make([]uuid.UUID, 0, len(args))
			for _, arg := range args {
				id, err := uuid.Parse(arg)
				if err != nil {
					return errors.Wrapf(err, "invalid review id %s", arg)
				}
				ids = append(ids, id)
			}

			p, err := newPipeline()
			if err != nil {
				return err
			}
			defer p.Close()

			failed := 0
			for _, res := range p.reviewQueueService.BulkApprove(cmd.Context(), ids, reviewer, notes) {
				if !res.Success {
					failed++
					slog.Error("could not approve review", "id", res.ID, "err", res.Error)
				}
			}
			slog.Info("approved reviews", "approved", len(ids)-failed, "failed", failed)
			if failed > 0 {
				return fmt.Errorf("%d of %d reviews could not be approved", failed, len(ids))
			}
			return nil
		},
	}

	approve.Flags().StringP("reviewer", "r", "", "User id of the reviewer. The reviewer needs the reviewer role.")
	approve.Flags().String("notes", "", "Notes stored with the decision")
	approve.MarkFlagRequired("reviewer") // nolint:errcheck
	return approve
}
