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
	"io"

	"github.com/l3montree-dev/contentguard/services"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/labstack/echo/v4"
)

const maxRuleImportSize = 1 << 20

type DetectionRuleController struct {
	detectionRuleService shared.DetectionRuleService
}

func NewDetectionRuleController(detectionRuleService shared.DetectionRuleService) *DetectionRuleController {
	return &DetectionRuleController{detectionRuleService: detectionRuleService}
}

func (c *DetectionRuleController) List(ctx shared.Context) error {
	rules, err := c.detectionRuleService.ListRules()
	if err != nil {
		return httpError(err, "could not list detection rules")
	}
	return ctx.JSON(200, rules)
}

// @Summary Refresh the detection rules
// @Description Recompiles the rules on this instance and tells every other instance to do the same.
// @Tags Rules
// @Success 200 {object} dtos.RuleRefreshResponse
// @Router /rules/refresh [post]
func (c *DetectionRuleController) Refresh(ctx shared.Context) error {
	res, err := c.detectionRuleService.Refresh(ctx.Request().Context())
	if err != nil {
		return httpError(err, "could not refresh detection rules")
	}
	return ctx.JSON(200, res)
}

// Import accepts the same YAML file as the cli. JSON works as well.
func (c *DetectionRuleController) Import(ctx shared.Context) error {
	body, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxRuleImportSize))
	if err != nil {
		return echo.NewHTTPError(400, "could not read request body").WithInternal(err)
	}

	rules, err := services.ParseRuleImportFile(body)
	if err != nil {
		return echo.NewHTTPError(400, err.Error()).WithInternal(err)
	}

	imported, err := c.detectionRuleService.ImportRules(ctx.Request().Context(), rules)
	if err != nil {
		return httpError(err, "could not import detection rules")
	}
	return ctx.JSON(200, map[string]int{"imported": imported})
}
