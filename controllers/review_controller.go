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

package controllers

import (
	"strconv"

	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/l3montree-dev/contentguard/utils"
	"github.com/labstack/echo/v4"
)

type ReviewController struct {
	reviewQueueService shared.ReviewQueueService
}

func NewReviewController(reviewQueueService shared.ReviewQueueService) *ReviewController {
	return &ReviewController{reviewQueueService: reviewQueueService}
}

func filterFromQuery(ctx shared.Context) (dtos.ReviewQueueFilter, error) {
	var filter dtos.ReviewQueueFilter
	if raw := ctx.QueryParam("minPriority"); raw != "" {
		minPriority, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, echo.NewHTTPError(400, "invalid minPriority").WithInternal(err)
		}
		filter.MinPriority = &minPriority
	}
	if raw := ctx.QueryParam("riskLevel"); raw != "" {
		riskLevel := dtos.RiskLevel(raw)
		switch riskLevel {
		case dtos.RiskLevelLow, dtos.RiskLevelMedium, dtos.RiskLevelHigh, dtos.RiskLevelCritical:
			filter.RiskLevel = utils.Ptr(riskLevel)
		default:
			return filter, echo.NewHTTPError(400, "invalid riskLevel")
		}
	}
	return filter, nil
}

// @Summary List pending reviews
// @Description Ordered by priority, oldest first on ties.
// @Tags Reviews
// @Param minPriority query number false "Minimum priority"
// @Param riskLevel query string false "Risk level"
// @Success 200 {array} shared.ReviewQueueItem
// @Router /reviews [get]
func (c *ReviewController) List(ctx shared.Context) error {
	filter, err := filterFromQuery(ctx)
	if err != nil {
		return err
	}

	items, err := c.reviewQueueService.PendingReviews(filter)
	if err != nil {
		return httpError(err, "could not list reviews")
	}
	return ctx.JSON(200, items)
}

func (c *ReviewController) ListEscalated(ctx shared.Context) error {
	items, err := c.reviewQueueService.EscalatedReviews()
	if err != nil {
		return httpError(err, "could not list escalated reviews")
	}
	return ctx.JSON(200, items)
}

func (c *ReviewController) Approve(ctx shared.Context) error {
	actionID, err := uuidParam(ctx, "actionId")
	if err != nil {
		return err
	}

	var req dtos.ReviewDecisionRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	action, err := c.reviewQueueService.Approve(ctx.Request().Context(), actionID, shared.GetUserID(ctx), req.Notes)
	if err != nil {
		return httpError(err, "could not approve review")
	}
	return ctx.JSON(200, action)
}

func (c *ReviewController) RequireAction(ctx shared.Context) error {
	actionID, err := uuidParam(ctx, "actionId")
	if err != nil {
		return err
	}

	var req dtos.RequireUserActionRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	action, err := c.reviewQueueService.RequireUserAction(ctx.Request().Context(), actionID, shared.GetUserID(ctx), req.Required, req.Notes)
	if err != nil {
		return httpError(err, "could not require user action")
	}
	return ctx.JSON(200, action)
}

func (c *ReviewController) Escalate(ctx shared.Context) error {
	actionID, err := uuidParam(ctx, "actionId")
	if err != nil {
		return err
	}

	var req dtos.ReviewDecisionRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	action, err := c.reviewQueueService.Escalate(ctx.Request().Context(), actionID, shared.GetUserID(ctx), req.Notes)
	if err != nil {
		return httpError(err, "could not escalate review")
	}
	return ctx.JSON(200, action)
}

// @Summary Approve many reviews at once
// @Description Every id is handled on its own. The response reports the outcome per id.
// @Tags Reviews
// @Param body body dtos.BulkApproveRequest true "Review ids"
// @Success 200 {array} dtos.BulkItemResult
// @Router /reviews/bulk-approve [post]
func (c *ReviewController) BulkApprove(ctx shared.Context) error {
	var req dtos.BulkApproveRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	results := c.reviewQueueService.BulkApprove(ctx.Request().Context(), req.ActionIDs, shared.GetUserID(ctx), req.Notes)
	return ctx.JSON(200, results)
}
