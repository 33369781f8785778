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

package accesscontrol

import (
	"github.com/l3montree-dev/contentguard/shared"
)

var _ shared.AccessControl = (*serviceTokenRBAC)(nil)

// serviceTokenRBAC lets the write-path hooks read scans and actions without a casbin role.
// Everything else is answered by the root access control.
type serviceTokenRBAC struct {
	rootAccessControl shared.AccessControl
	serviceToken      *string
}

func NewServiceTokenRBAC(rootAccessControl shared.AccessControl, serviceToken *string) *serviceTokenRBAC {
	if serviceToken != nil && *serviceToken == "" {
		serviceToken = nil
	}
	return &serviceTokenRBAC{
		rootAccessControl: rootAccessControl,
		serviceToken:      serviceToken,
	}
}

func (e *serviceTokenRBAC) isServiceToken(user string) bool {
	return e.serviceToken != nil && user == *e.serviceToken
}

func (e *serviceTokenRBAC) GrantRole(subject string, role shared.Role) error {
	return e.rootAccessControl.GrantRole(subject, role)
}

func (e *serviceTokenRBAC) RevokeRole(subject string, role shared.Role) error {
	return e.rootAccessControl.RevokeRole(subject, role)
}

func (e *serviceTokenRBAC) GetRoles(user string) ([]shared.Role, error) {
	if e.isServiceToken(user) {
		return []shared.Role{}, nil
	}
	return e.rootAccessControl.GetRoles(user)
}

func (e *serviceTokenRBAC) IsAllowed(userID string, object shared.Object, action shared.Action) (bool, error) {
	if e.isServiceToken(userID) {
		return action == shared.ActionRead, nil
	}

	return e.rootAccessControl.IsAllowed(userID, object, action)
}
