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

	"github.com/google/uuid"
	"github.com/l3montree-dev/contentguard/detection"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/l3montree-dev/contentguard/statemachine"
	"github.com/labstack/echo/v4"
)

// httpError maps the domain errors of the services to status codes.
// Everything unknown is a 500 carrying msg.
func httpError(err error, msg string) error {
	var compileErr *detection.RuleCompileError
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return echo.NewHTTPError(404, err.Error()).WithInternal(err)
	case errors.Is(err, shared.ErrAlreadyResolved),
		errors.Is(err, statemachine.ErrInvalidTransition),
		errors.Is(err, shared.ErrNotActive):
		return echo.NewHTTPError(409, err.Error()).WithInternal(err)
	case errors.Is(err, shared.ErrInsufficientRole):
		return echo.NewHTTPError(403, err.Error()).WithInternal(err)
	case errors.Is(err, shared.ErrQueueFull):
		return echo.NewHTTPError(503, err.Error()).WithInternal(err)
	case errors.As(err, &compileErr):
		return echo.NewHTTPError(400, err.Error()).WithInternal(err)
	}
	return echo.NewHTTPError(500, msg).WithInternal(err)
}

func bindAndValidate(ctx shared.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return echo.NewHTTPError(400, "invalid request body").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}
	return nil
}

func uuidParam(ctx shared.Context, param string) (uuid.UUID, error) {
	id, err := shared.GetUUIDParam(ctx, param)
	if err != nil {
		return id, echo.NewHTTPError(400, "invalid "+param).WithInternal(err)
	}
	return id, nil
}
