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

package shared_test

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUUIDParam(t *testing.T) {
	t.Run("should parse a valid uuid param", func(t *testing.T) {
		e := echo.New()
		ctx := e.NewContext(httptest.NewRequest("GET", "/", nil), httptest.NewRecorder())
		id := uuid.New()
		ctx.SetParamNames("scanId")
		ctx.SetParamValues(id.String())

		parsed, err := shared.GetUUIDParam(ctx, "scanId")
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	})

	t.Run("should reject an invalid uuid", func(t *testing.T) {
		e := echo.New()
		ctx := e.NewContext(httptest.NewRequest("GET", "/", nil), httptest.NewRecorder())
		ctx.SetParamNames("scanId")
		ctx.SetParamValues("not-a-uuid")

		_, err := shared.GetUUIDParam(ctx, "scanId")
		assert.Error(t, err)
	})
}

func TestUserIDContext(t *testing.T) {
	e := echo.New()
	ctx := e.NewContext(httptest.NewRequest("GET", "/", nil), httptest.NewRecorder())
	assert.Empty(t, shared.GetUserID(ctx))

	shared.SetUserID(ctx, "reviewer-1")
	assert.Equal(t, "reviewer-1", shared.GetUserID(ctx))
}

func TestNotFoundError(t *testing.T) {
	t.Run("should match ErrNotFound even when wrapped", func(t *testing.T) {
		err := fmt.Errorf("could not load: %w", shared.NewNotFoundError("scan", uuid.New()))
		assert.True(t, errors.Is(err, shared.ErrNotFound))

		var nf shared.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, "scan", nf.Entity)
	})

	t.Run("should not match other sentinel errors", func(t *testing.T) {
		err := shared.NewNotFoundError("scan", uuid.New())
		assert.False(t, errors.Is(err, shared.ErrAlreadyResolved))
	})
}

func TestScanJobIdempotencyKey(t *testing.T) {
	a := shared.ScanJob{Content: shared.NewTextContent("comment", "1", "hello"), OwnerID: "o", Trigger: dtos.ScanTriggerAutomatic}
	b := shared.ScanJob{Content: shared.NewTextContent("comment", "1", "hello"), OwnerID: "other", Trigger: dtos.ScanTriggerManual}
	c := shared.ScanJob{Content: shared.NewTextContent("comment", "1", "hello!"), OwnerID: "o", Trigger: dtos.ScanTriggerAutomatic}

	assert.Equal(t, a.IdempotencyKey(), b.IdempotencyKey())
	assert.NotEqual(t, a.IdempotencyKey(), c.IdempotencyKey())
	assert.Contains(t, a.IdempotencyKey(), "comment:1:")
}

func TestDefaultModerationConfig(t *testing.T) {
	cfg := shared.DefaultModerationConfig()
	assert.Equal(t, 4, cfg.Dispatcher.Workers)
	assert.Equal(t, 7, cfg.Policy.DefaultQuarantineDays)
	assert.Equal(t, 100_000, cfg.Scanner.MaxScanChars)
}

func TestLoadModerationConfigFromEnv(t *testing.T) {
	t.Setenv("CONTENTGUARD_DISPATCHER_WORKERS", "9")
	t.Setenv("CONTENTGUARD_WEBHOOK_URL", "https://hooks.example.com/cg")

	cfg, err := shared.LoadModerationConfig()
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Dispatcher.Workers)
	assert.Equal(t, "https://hooks.example.com/cg", cfg.Webhook.URL)
	assert.Equal(t, 256, cfg.Dispatcher.QueueSize)
}
