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
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/contentguard/detection"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/l3montree-dev/contentguard/statemachine"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestHTTPError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", shared.NewNotFoundError("scan", uuid.New()), 404},
		{"wrapped not found", fmt.Errorf("reading: %w", shared.ErrNotFound), 404},
		{"already resolved", shared.ErrAlreadyResolved, 409},
		{"invalid transition", fmt.Errorf("approved -> blocked: %w", statemachine.ErrInvalidTransition), 409},
		{"not active", shared.ErrNotActive, 409},
		{"insufficient role", shared.ErrInsufficientRole, 403},
		{"queue full", shared.ErrQueueFull, 503},
		{"compile error", &detection.RuleCompileError{RuleName: "broken", Err: fmt.Errorf("missing )")}, 400},
		{"anything else", fmt.Errorf("connection reset"), 500},
	}

	for _, c := range cases {
		t.Run("should map "+c.name+" to "+fmt.Sprint(c.status), func(t *testing.T) {
			err := httpError(c.err, "something went wrong")
			httpErr, ok := err.(*echo.HTTPError)
			assert.True(t, ok)
			assert.Equal(t, c.status, httpErr.Code)
			assert.ErrorIs(t, httpErr.Internal, c.err)
		})
	}

	t.Run("should not leak internal messages of unknown errors", func(t *testing.T) {
		err := httpError(fmt.Errorf("pq: password authentication failed"), "could not read scan")
		httpErr := err.(*echo.HTTPError)
		assert.Equal(t, "could not read scan", httpErr.Message)
	})
}

func TestFilterFromQuery(t *testing.T) {
	newCtx := func(query string) shared.Context {
		req := httptest.NewRequest("GET", "/reviews/?"+query, nil)
		return echo.New().NewContext(req, httptest.NewRecorder())
	}

	t.Run("should return an empty filter without query parameters", func(t *testing.T) {
		filter, err := filterFromQuery(newCtx(""))
		assert.NoError(t, err)
		assert.Nil(t, filter.MinPriority)
		assert.Nil(t, filter.RiskLevel)
	})

	t.Run("should parse both parameters", func(t *testing.T) {
		filter, err := filterFromQuery(newCtx("minPriority=42.5&riskLevel=critical"))
		assert.NoError(t, err)
		assert.Equal(t, 42.5, *filter.MinPriority)
		assert.Equal(t, dtos.RiskLevelCritical, *filter.RiskLevel)
	})

	t.Run("should reject an unknown risk level", func(t *testing.T) {
		_, err := filterFromQuery(newCtx("riskLevel=extreme"))
		assert.Equal(t, 400, err.(*echo.HTTPError).Code)
	})
}
