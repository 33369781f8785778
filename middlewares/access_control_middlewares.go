// Copyright (C) 2025 l3montree GmbH
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

package middlewares

import (
	"log/slog"

	"github.com/l3montree-dev/contentguard/shared"
	"github.com/labstack/echo/v4"
)

// AccessControlFactory returns a middleware factory which checks the caller against rbac.
// It expects UserIDMiddleware to run first.
func AccessControlFactory(rbac shared.AccessControl) shared.RBACMiddleware {
	return func(obj shared.Object, act shared.Action) echo.MiddlewareFunc {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(ctx shared.Context) error {
				// get the user
				user := shared.GetUserID(ctx)

				allowed, err := rbac.IsAllowed(user, obj, act)
				if err != nil {
					return echo.NewHTTPError(500, "could not determine if the user has access").WithInternal(err)
				}

				// check if the user has the required role
				if !allowed {
					slog.Warn("access denied in accessControlMiddleware", "user", user, "object", obj, "action", act)
					return echo.NewHTTPError(403, "forbidden")
				}

				return next(ctx)
			}
		}
	}
}
