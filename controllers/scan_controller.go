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
	"errors"

	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/labstack/echo/v4"
)

type ScanController struct {
	dispatcher              shared.ScanDispatcher
	moderationService       shared.ModerationService
	scanService             shared.ScanService
	governanceActionService shared.GovernanceActionService
}

func NewScanController(
	dispatcher shared.ScanDispatcher,
	moderationService shared.ModerationService,
	scanService shared.ScanService,
	governanceActionService shared.GovernanceActionService,
) *ScanController {
	return &ScanController{
		dispatcher:              dispatcher,
		moderationService:       moderationService,
		scanService:             scanService,
		governanceActionService: governanceActionService,
	}
}

func contentFromRequest(req dtos.ScanRequest) shared.TextContent {
	return shared.TextContent{
		ContentKind: req.ContentKind,
		ContentID:   req.ContentID,
		Body:        req.Text,
		FieldName:   req.FieldName,
	}
}

// @Summary Enqueue a scan
// @Description Used by the write path of the host application. The scan runs in the background.
// @Tags Scans
// @Param body body dtos.ScanRequest true "Content to scan"
// @Success 202 {object} dtos.ScanAcceptedResponse
// @Failure 503 {object} object{message=string}
// @Router /scans [post]
func (c *ScanController) Enqueue(ctx shared.Context) error {
	var req dtos.ScanRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}
	if req.Trigger == "" {
		req.Trigger = dtos.ScanTriggerAutomatic
	}

	key, err := c.dispatcher.Enqueue(shared.ScanJob{
		Content: contentFromRequest(req),
		OwnerID: req.OwnerID,
		Trigger: req.Trigger,
	})
	if errors.Is(err, shared.ErrDuplicateJob) {
		return ctx.JSON(202, dtos.ScanAcceptedResponse{IdempotencyKey: key, Queued: false})
	}
	if err != nil {
		return httpError(err, "could not enqueue scan")
	}

	return ctx.JSON(202, dtos.ScanAcceptedResponse{IdempotencyKey: key, Queued: true})
}

// @Summary Scan and evaluate synchronously
// @Tags Scans
// @Param body body dtos.ScanRequest true "Content to scan"
// @Success 200 {object} shared.ModerationResult
// @Router /scans/sync [post]
func (c *ScanController) ScanSync(ctx shared.Context) error {
	var req dtos.ScanRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}
	if req.Trigger == "" {
		req.Trigger = dtos.ScanTriggerManual
	}

	result, err := c.moderationService.Process(ctx.Request().Context(), contentFromRequest(req), req.OwnerID, req.Trigger)
	if err != nil {
		return httpError(err, "could not scan content")
	}
	return ctx.JSON(200, result)
}

func (c *ScanController) ListByContent(ctx shared.Context) error {
	contentKind := ctx.QueryParam("contentKind")
	contentID := ctx.QueryParam("contentId")
	if contentKind == "" || contentID == "" {
		return echo.NewHTTPError(400, "contentKind and contentId are required")
	}

	scans, err := c.scanService.ListScansByContent(contentKind, contentID)
	if err != nil {
		return httpError(err, "could not list scans")
	}
	return ctx.JSON(200, scans)
}

func (c *ScanController) Read(ctx shared.Context) error {
	scanID, err := uuidParam(ctx, "scanId")
	if err != nil {
		return err
	}

	scan, err := c.scanService.GetScan(scanID)
	if err != nil {
		return httpError(err, "could not read scan")
	}
	return ctx.JSON(200, scan)
}

// ListViolations returns the unresolved violations of a scan.
func (c *ScanController) ListViolations(ctx shared.Context) error {
	scanID, err := uuidParam(ctx, "scanId")
	if err != nil {
		return err
	}

	violations, err := c.scanService.ListUnresolvedViolations(scanID)
	if err != nil {
		return httpError(err, "could not list violations")
	}
	return ctx.JSON(200, violations)
}

func (c *ScanController) ListActions(ctx shared.Context) error {
	scanID, err := uuidParam(ctx, "scanId")
	if err != nil {
		return err
	}

	actions, err := c.governanceActionService.ListByScan(scanID)
	if err != nil {
		return httpError(err, "could not list governance actions")
	}
	return ctx.JSON(200, actions)
}
