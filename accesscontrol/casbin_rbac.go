// Copyright (C) 2023 Tim Bastin, l3montree GmbH
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
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
package accesscontrol

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"

	"github.com/l3montree-dev/contentguard/shared"
	"github.com/l3montree-dev/contentguard/utils"
	"gorm.io/gorm"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

var _ shared.AccessControl = &casbinRBAC{}

type casbinRBAC struct {
	enforcer *casbin.SyncedEnforcer
}

type permission struct {
	role    shared.Role
	object  shared.Object
	actions []shared.Action
}

// defaultPermissions are seeded on startup. Every role inherits the permissions of the role below it.
var defaultPermissions = []permission{
	{shared.RoleReviewer, shared.ObjectReview, []shared.Action{shared.ActionRead, shared.ActionApprove, shared.ActionRequireAction, shared.ActionEscalate}},
	{shared.RoleReviewer, shared.ObjectViolation, []shared.Action{shared.ActionRead, shared.ActionResolve}},
	{shared.RoleReviewer, shared.ObjectAction, []shared.Action{shared.ActionRead}},
	{shared.RoleSeniorReviewer, shared.ObjectReview, []shared.Action{shared.ActionApproveEscalated}},
	{shared.RoleSeniorReviewer, shared.ObjectAction, []shared.Action{shared.ActionUpdate}},
	{shared.RoleAdmin, shared.ObjectRule, []shared.Action{shared.ActionRead, shared.ActionRefresh, shared.ActionImport}},
	{shared.RoleAdmin, shared.ObjectPolicy, []shared.Action{shared.ActionRead, shared.ActionUpdate}},
}

var roleHierarchy = [][2]shared.Role{
	{shared.RoleSeniorReviewer, shared.RoleReviewer},
	{shared.RoleAdmin, shared.RoleSeniorReviewer},
}

func userSubject(user string) string {
	return "user::" + user
}

func roleSubject(role shared.Role) string {
	return "role::" + string(role)
}

func (c *casbinRBAC) GrantRole(user string, role shared.Role) error {
	_, err := c.enforcer.AddRoleForUser(userSubject(user), roleSubject(role))
	return err
}

func (c *casbinRBAC) RevokeRole(user string, role shared.Role) error {
	_, err := c.enforcer.DeleteRoleForUser(userSubject(user), roleSubject(role))
	return err
}

func (c *casbinRBAC) InheritRole(roleWhichGetsPermissions, roleWhichProvidesPermissions shared.Role) error {
	_, err := c.enforcer.AddRoleForUser(roleSubject(roleWhichGetsPermissions), roleSubject(roleWhichProvidesPermissions))
	return err
}

// GetRoles returns the direct and inherited roles of the user.
func (c *casbinRBAC) GetRoles(user string) ([]shared.Role, error) {
	roles, err := c.enforcer.GetImplicitRolesForUser(userSubject(user))
	if err != nil {
		return nil, err
	}

	return utils.Map(utils.Filter(roles, func(r string) bool {
		return strings.HasPrefix(r, "role::")
	}), func(r string) shared.Role {
		return shared.Role(strings.TrimPrefix(r, "role::"))
	}), nil
}

func (c *casbinRBAC) AllowRole(role shared.Role, object shared.Object, actions []shared.Action) error {
	for _, ac := range actions {
		// AddPolicies refuses the whole batch if a single policy exists already
		if _, err := c.enforcer.AddPolicy(roleSubject(role), "obj::"+string(object), "act::"+string(ac)); err != nil {
			return err
		}
	}
	return nil
}

func (c *casbinRBAC) IsAllowed(user string, object shared.Object, action shared.Action) (bool, error) {
	return c.enforcer.Enforce(userSubject(user), "obj::"+string(object), "act::"+string(action))
}

// seed makes sure the default permissions and the role hierarchy exist. Existing policies are kept.
func (c *casbinRBAC) seed() error {
	for _, p := range defaultPermissions {
		if err := c.AllowRole(p.role, p.object, p.actions); err != nil {
			return fmt.Errorf("could not allow %s on %s: %w", p.role, p.object, err)
		}
	}
	for _, h := range roleHierarchy {
		if err := c.InheritRole(h[0], h[1]); err != nil {
			return fmt.Errorf("could not let %s inherit %s: %w", h[0], h[1], err)
		}
	}
	return nil
}

func loadModel() (model.Model, error) {
	path := os.Getenv("RBAC_CONFIG_PATH")
	if path == "" {
		return model.NewModelFromString(rbacModel)
	}
	return model.NewModelFromFile(path)
}

// NewCasbinRBAC persists policies through the gorm adapter and reloads them whenever another instance changes them.
func NewCasbinRBAC(db *gorm.DB, broker shared.PubSubBroker) (*casbinRBAC, error) {
	enforcer, err := buildEnforcer(db, broker)
	if err != nil {
		return nil, err
	}
	rbac := &casbinRBAC{enforcer: enforcer}
	if err := rbac.seed(); err != nil {
		return nil, err
	}
	return rbac, nil
}

func buildEnforcer(db *gorm.DB, broker shared.PubSubBroker) (*casbin.SyncedEnforcer, error) {
	// the adapter creates the casbin_rule table if it does not exist
	a, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}

	m, err := loadModel()
	if err != nil {
		return nil, fmt.Errorf("could not load rbac model: %w", err)
	}

	e, err := casbin.NewSyncedEnforcer(m, a)
	if err != nil {
		return nil, err
	}

	e.EnableLog(false)
	// make sure to publish a pub sub message when the policy changes
	watcher, err := newCasbinPubSubWatcher(broker)
	if err != nil {
		return nil, err
	}
	err = e.SetWatcher(watcher)
	if err != nil {
		return nil, fmt.Errorf("could not set watcher: %w", err)
	}
	// make sure to set the update callback
	err = watcher.SetUpdateCallback(func(string) {
		err := e.LoadPolicy()
		if err != nil {
			slog.Error("error while loading policy after update", "err", err)
		} else {
			slog.Debug("policy successfully reloaded after update")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("could not set update callback: %w", err)
	}

	// Load the policy from DB.
	if err = e.LoadPolicy(); err != nil {
		slog.Warn("LoadPolicy failed", "err", err)
	}

	return e, nil
}
