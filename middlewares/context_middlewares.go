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

package middlewares

import (
	"strings"

	"github.com/l3montree-dev/contentguard/shared"
	"github.com/labstack/echo/v4"
)

// UserIDHeader carries the id of the already authenticated user. Authentication happens in front of this service.
const UserIDHeader = "X-User-Id"

// UserIDMiddleware stores the caller in the request context and rejects anonymous requests.
func UserIDMiddleware() shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx shared.Context) error {
			userID := strings.TrimSpace(ctx.Request().Header.Get(UserIDHeader))
			if userID == "" {
				return echo.NewHTTPError(401, "no "+UserIDHeader+" header provided")
			}
			shared.SetUserID(ctx, userID)
			return next(ctx)
		}
	}
}
