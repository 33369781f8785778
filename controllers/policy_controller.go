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
	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/labstack/echo/v4"
)

type PolicyController struct {
	policyService shared.PolicyService
}

func NewPolicyController(policyService shared.PolicyService) *PolicyController {
	return &PolicyController{policyService: policyService}
}

func ownerParam(ctx shared.Context) (string, error) {
	ownerID, err := shared.GetURLDecodedParam(ctx, "ownerId")
	if err != nil || ownerID == "" {
		return "", echo.NewHTTPError(400, "invalid ownerId")
	}
	return ownerID, nil
}

// Read returns the stored policy or the defaults if the owner never configured one.
func (c *PolicyController) Read(ctx shared.Context) error {
	ownerID, err := ownerParam(ctx)
	if err != nil {
		return err
	}

	policy, err := c.policyService.GetPolicy(ownerID)
	if err != nil {
		return httpError(err, "could not read policy")
	}
	return ctx.JSON(200, policy)
}

func (c *PolicyController) Update(ctx shared.Context) error {
	ownerID, err := ownerParam(ctx)
	if err != nil {
		return err
	}

	var req dtos.PolicyRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	policy := models.PolicyConfig{
		OwnerID:                ownerID,
		AutoScanEnabled:        req.AutoScanEnabled,
		SensitivityThreshold:   req.SensitivityThreshold,
		NotifyOnViolation:      req.NotifyOnViolation,
		NotifyOnQuarantine:     req.NotifyOnQuarantine,
		AutoQuarantineCritical: req.AutoQuarantineCritical,
		AutoBlockSharing:       req.AutoBlockSharing,
		QuarantineDays:         req.QuarantineDays,
	}
	if err := c.policyService.Upsert(&policy); err != nil {
		return httpError(err, "could not update policy")
	}
	return ctx.JSON(200, policy)
}
