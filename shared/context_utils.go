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

package shared

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

const userIDContextKey = "userID"

func SetUserID(ctx Context, userID string) {
	ctx.Set(userIDContextKey, userID)
}

// GetUserID returns the authenticated user id. Empty if the request is anonymous.
func GetUserID(ctx Context) string {
	userID, _ := ctx.Get(userIDContextKey).(string)
	return userID
}

func GetURLDecodedParam(ctx Context, param string) (string, error) {
	p := ctx.Param(param)
	if p == "" {
		return "", nil
	}

	return url.PathUnescape(SanitizeParam(p))
}

func GetUUIDParam(ctx Context, param string) (uuid.UUID, error) {
	p, err := GetURLDecodedParam(ctx, param)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(p)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", param, err)
	}
	return id, nil
}
