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

type GovernanceActionController struct {
	governanceActionService shared.GovernanceActionService
}

func NewGovernanceActionController(governanceActionService shared.GovernanceActionService) *GovernanceActionController {
	return &GovernanceActionController{governanceActionService: governanceActionService}
}

func (c *GovernanceActionController) Read(ctx shared.Context) error {
	actionID, err := uuidParam(ctx, "actionId")
	if err != nil {
		return err
	}

	action, err := c.governanceActionService.Get(actionID)
	if err != nil {
		return httpError(err, "could not read governance action")
	}
	return ctx.JSON(200, action)
}

// @Summary Extend the expiry of an active restriction
// @Tags Actions
// @Param actionId path string true "Action ID"
// @Param body body dtos.ExtendExpiryRequest true "Days"
// @Success 200 {object} models.GovernanceAction
// @Failure 409 {object} object{message=string}
// @Router /actions/{actionId}/extend-expiry [post]
func (c *GovernanceActionController) ExtendExpiry(ctx shared.Context) error {
	actionID, err := uuidParam(ctx, "actionId")
	if err != nil {
		return err
	}

	var req dtos.ExtendExpiryRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	action, err := c.governanceActionService.ExtendExpiry(ctx.Request().Context(), actionID, req.Days, shared.GetUserID(ctx))
	if err != nil {
		return httpError(err, "could not extend expiry")
	}
	return ctx.JSON(200, action)
}

// Release lifts an active quarantine or sharing block before it expires.
func (c *GovernanceActionController) Release(ctx shared.Context) error {
	actionID, err := uuidParam(ctx, "actionId")
	if err != nil {
		return err
	}

	action, err := c.governanceActionService.Get(actionID)
	if err != nil {
		return httpError(err, "could not read governance action")
	}

	release, err := c.governanceActionService.Release(ctx.Request().Context(), action, shared.GetUserID(ctx), dtos.ReleaseCauseManual)
	if err != nil {
		return httpError(err, "could not release governance action")
	}
	return ctx.JSON(200, release)
}
