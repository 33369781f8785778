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
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/shared"
)

type ViolationController struct {
	scanService shared.ScanService
}

func NewViolationController(scanService shared.ScanService) *ViolationController {
	return &ViolationController{scanService: scanService}
}

// @Summary Resolve a violation
// @Description A violation can only be resolved once. A second attempt returns 409.
// @Tags Violations
// @Param violationId path string true "Violation ID"
// @Param body body dtos.ResolveViolationRequest true "Resolution"
// @Success 200 {object} models.Violation
// @Failure 409 {object} object{message=string}
// @Router /violations/{violationId}/resolve [post]
func (c *ViolationController) Resolve(ctx shared.Context) error {
	violationID, err := uuidParam(ctx, "violationId")
	if err != nil {
		return err
	}

	var req dtos.ResolveViolationRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	violation, err := c.scanService.ResolveViolation(violationID, shared.GetUserID(ctx), req.Kind, req.Notes)
	if err != nil {
		return httpError(err, "could not resolve violation")
	}
	return ctx.JSON(200, violation)
}
