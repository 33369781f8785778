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
	"testing"
	"time"

	"github.com/l3montree-dev/contentguard/database"
	"github.com/l3montree-dev/contentguard/integrationtestutil"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/stretchr/testify/assert"
)

func newTestRBAC(t *testing.T) (*casbinRBAC, shared.DB, *database.InMemoryBroker) {
	db := integrationtestutil.InitSQLiteDatabase(t)
	broker := database.NewInMemoryBroker()
	t.Cleanup(broker.Close)
	rbac, err := NewCasbinRBAC(db, broker)
	assert.NoError(t, err)
	return rbac, db, broker
}

func TestCasbinRBAC(t *testing.T) {
	rbac, db, broker := newTestRBAC(t)
	assert.NoError(t, rbac.GrantRole("alice", shared.RoleReviewer))
	assert.NoError(t, rbac.GrantRole("bob", shared.RoleSeniorReviewer))
	assert.NoError(t, rbac.GrantRole("carol", shared.RoleAdmin))

	testCases := []struct {
		name     string
		user     string
		object   shared.Object
		action   shared.Action
		expected bool
	}{
		{"reviewer can approve reviews", "alice", shared.ObjectReview, shared.ActionApprove, true},
		{"reviewer can resolve violations", "alice", shared.ObjectViolation, shared.ActionResolve, true},
		{"reviewer cannot approve escalated reviews", "alice", shared.ObjectReview, shared.ActionApproveEscalated, false},
		{"reviewer cannot extend restrictions", "alice", shared.ObjectAction, shared.ActionUpdate, false},
		{"reviewer cannot refresh rules", "alice", shared.ObjectRule, shared.ActionRefresh, false},
		{"senior reviewer inherits reviewer permissions", "bob", shared.ObjectReview, shared.ActionEscalate, true},
		{"senior reviewer can approve escalated reviews", "bob", shared.ObjectReview, shared.ActionApproveEscalated, true},
		{"senior reviewer cannot import rules", "bob", shared.ObjectRule, shared.ActionImport, false},
		{"admin inherits everything", "carol", shared.ObjectReview, shared.ActionApproveEscalated, true},
		{"admin can import rules", "carol", shared.ObjectRule, shared.ActionImport, true},
		{"unknown users are denied", "mallory", shared.ObjectReview, shared.ActionRead, false},
	}

	for _, tc := range testCases {
		t.Run("should check that "+tc.name, func(t *testing.T) {
			allowed, err := rbac.IsAllowed(tc.user, tc.object, tc.action)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, allowed)
		})
	}

	t.Run("should return inherited roles", func(t *testing.T) {
		roles, err := rbac.GetRoles("bob")
		assert.NoError(t, err)
		assert.ElementsMatch(t, []shared.Role{shared.RoleSeniorReviewer, shared.RoleReviewer}, roles)
	})

	t.Run("should deny after the role was revoked", func(t *testing.T) {
		assert.NoError(t, rbac.GrantRole("dave", shared.RoleReviewer))
		assert.NoError(t, rbac.RevokeRole("dave", shared.RoleReviewer))

		allowed, err := rbac.IsAllowed("dave", shared.ObjectReview, shared.ActionRead)
		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("should keep existing policies when seeding again", func(t *testing.T) {
		second, err := NewCasbinRBAC(db, broker)
		assert.NoError(t, err)

		allowed, err := second.IsAllowed("alice", shared.ObjectReview, shared.ActionApprove)
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("should reload policies changed by another instance", func(t *testing.T) {
		second, err := NewCasbinRBAC(db, broker)
		assert.NoError(t, err)

		assert.NoError(t, rbac.GrantRole("erin", shared.RoleAdmin))

		assert.Eventually(t, func() bool {
			allowed, err := second.IsAllowed("erin", shared.ObjectRule, shared.ActionRefresh)
			return err == nil && allowed
		}, 2*time.Second, 20*time.Millisecond)
	})
}
