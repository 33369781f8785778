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

package router

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/contentguard/controllers"
	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/integrationtestutil"
	"github.com/l3montree-dev/contentguard/middlewares"
	"github.com/l3montree-dev/contentguard/mocks"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/l3montree-dev/contentguard/statemachine"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type testServer struct {
	e          *echo.Echo
	rbac       *mocks.AccessControl
	dispatcher *mocks.ScanDispatcher
	moderation *mocks.ModerationService
	scans      *mocks.ScanService
	actions    *mocks.GovernanceActionService
	reviews    *mocks.ReviewQueueService
	rules      *mocks.DetectionRuleService
	policies   *mocks.PolicyService
}

func newTestServer(t *testing.T) testServer {
	s := testServer{
		e:          middlewares.Server(),
		rbac:       mocks.NewAccessControl(t),
		dispatcher: mocks.NewScanDispatcher(t),
		moderation: mocks.NewModerationService(t),
		scans:      mocks.NewScanService(t),
		actions:    mocks.NewGovernanceActionService(t),
		reviews:    mocks.NewReviewQueueService(t),
		rules:      mocks.NewDetectionRuleService(t),
		policies:   mocks.NewPolicyService(t),
	}
	NewAPIV1Router(s.e,
		integrationtestutil.InitSQLiteDatabase(t),
		s.rbac,
		controllers.NewScanController(s.dispatcher, s.moderation, s.scans, s.actions),
		controllers.NewViolationController(s.scans),
		controllers.NewReviewController(s.reviews),
		controllers.NewGovernanceActionController(s.actions),
		controllers.NewDetectionRuleController(s.rules),
		controllers.NewPolicyController(s.policies),
	)
	return s
}

func (s testServer) allow(user string, object shared.Object, action shared.Action) {
	s.rbac.On("IsAllowed", user, object, action).Return(true, nil)
}

func (s testServer) do(method, path, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if user != "" {
		req.Header.Set(middlewares.UserIDHeader, user)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

const scanBody = `{"contentKind":"document","contentId":"doc-1","text":"my ssn is 123-45-6789","ownerId":"owner-1"}`

func TestHealth(t *testing.T) {
	t.Run("should report a healthy database", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do("GET", "/api/v1/health", "", "")
		assert.Equal(t, 200, rec.Code)
		assert.Contains(t, rec.Body.String(), "healthy")
	})
}

func TestScanRoutes(t *testing.T) {
	t.Run("should reject anonymous requests", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do("POST", "/api/v1/scans", "", scanBody)
		assert.Equal(t, 401, rec.Code)
	})

	t.Run("should enqueue an automatic scan", func(t *testing.T) {
		s := newTestServer(t)
		s.dispatcher.On("Enqueue", mock.MatchedBy(func(job shared.ScanJob) bool {
			return job.OwnerID == "owner-1" && job.Trigger == dtos.ScanTriggerAutomatic && job.Content.ID() == "doc-1"
		})).Return("document:doc-1:abc", nil)

		rec := s.do("POST", "/api/v1/scans", "hook", scanBody)
		assert.Equal(t, 202, rec.Code)

		var res dtos.ScanAcceptedResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.True(t, res.Queued)
		assert.Equal(t, "document:doc-1:abc", res.IdempotencyKey)
	})

	t.Run("should accept a duplicate without queueing it again", func(t *testing.T) {
		s := newTestServer(t)
		s.dispatcher.On("Enqueue", mock.Anything).Return("document:doc-1:abc", shared.ErrDuplicateJob)

		rec := s.do("POST", "/api/v1/scans", "hook", scanBody)
		assert.Equal(t, 202, rec.Code)

		var res dtos.ScanAcceptedResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.False(t, res.Queued)
	})

	t.Run("should answer 503 if the queue is full", func(t *testing.T) {
		s := newTestServer(t)
		s.dispatcher.On("Enqueue", mock.Anything).Return("", shared.ErrQueueFull)

		rec := s.do("POST", "/api/v1/scans", "hook", scanBody)
		assert.Equal(t, 503, rec.Code)
	})

	t.Run("should validate the request", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do("POST", "/api/v1/scans", "hook", `{"contentKind":"document","ownerId":"owner-1"}`)
		assert.Equal(t, 400, rec.Code)
	})

	t.Run("should scan synchronously with the manual trigger", func(t *testing.T) {
		s := newTestServer(t)
		s.moderation.On("Process", mock.Anything, mock.Anything, "owner-1", dtos.ScanTriggerManual).Return(shared.ModerationResult{Skipped: true}, nil)

		rec := s.do("POST", "/api/v1/scans/sync", "alice", scanBody)
		assert.Equal(t, 200, rec.Code)
		assert.Contains(t, rec.Body.String(), `"skipped":true`)
	})

	t.Run("should answer 404 for unknown scans", func(t *testing.T) {
		s := newTestServer(t)
		id := uuid.New()
		s.allow("alice", shared.ObjectViolation, shared.ActionRead)
		s.scans.On("GetScan", id).Return(models.ScanRecord{}, shared.NewNotFoundError("scan", id))

		rec := s.do("GET", "/api/v1/scans/"+id.String(), "alice", "")
		assert.Equal(t, 404, rec.Code)
	})

	t.Run("should answer 400 for malformed ids", func(t *testing.T) {
		s := newTestServer(t)
		s.allow("alice", shared.ObjectAction, shared.ActionRead)

		rec := s.do("GET", "/api/v1/scans/not-a-uuid/actions", "alice", "")
		assert.Equal(t, 400, rec.Code)
	})

	t.Run("should require both content query parameters", func(t *testing.T) {
		s := newTestServer(t)
		s.allow("alice", shared.ObjectViolation, shared.ActionRead)

		rec := s.do("GET", "/api/v1/scans?contentKind=document", "alice", "")
		assert.Equal(t, 400, rec.Code)
	})
}

func TestViolationRoutes(t *testing.T) {
	t.Run("should answer 409 if the violation was resolved before", func(t *testing.T) {
		s := newTestServer(t)
		id := uuid.New()
		s.allow("alice", shared.ObjectViolation, shared.ActionResolve)
		s.scans.On("ResolveViolation", id, "alice", dtos.ResolutionFalsePositive, "test data").Return(models.Violation{}, shared.ErrAlreadyResolved)

		rec := s.do("POST", "/api/v1/violations/"+id.String()+"/resolve", "alice", `{"kind":"false-positive","notes":"test data"}`)
		assert.Equal(t, 409, rec.Code)
	})

	t.Run("should reject unknown resolution kinds", func(t *testing.T) {
		s := newTestServer(t)
		s.allow("alice", shared.ObjectViolation, shared.ActionResolve)

		rec := s.do("POST", "/api/v1/violations/"+uuid.NewString()+"/resolve", "alice", `{"kind":"ignored"}`)
		assert.Equal(t, 400, rec.Code)
	})
}

func TestReviewRoutes(t *testing.T) {
	t.Run("should forbid users without the role", func(t *testing.T) {
		s := newTestServer(t)
		s.rbac.On("IsAllowed", "mallory", shared.ObjectReview, shared.ActionApprove).Return(false, nil)

		rec := s.do("POST", "/api/v1/reviews/"+uuid.NewString()+"/approve", "mallory", "")
		assert.Equal(t, 403, rec.Code)
	})

	t.Run("should answer 409 on a forbidden transition", func(t *testing.T) {
		s := newTestServer(t)
		id := uuid.New()
		s.allow("alice", shared.ObjectReview, shared.ActionApprove)
		s.reviews.On("Approve", mock.Anything, id, "alice", "ok").Return(models.GovernanceAction{}, errors.Wrap(statemachine.ErrInvalidTransition, "approved -> approved"))

		rec := s.do("POST", "/api/v1/reviews/"+id.String()+"/approve", "alice", `{"notes":"ok"}`)
		assert.Equal(t, 409, rec.Code)
	})

	t.Run("should answer 403 if an escalated review needs a senior reviewer", func(t *testing.T) {
		s := newTestServer(t)
		id := uuid.New()
		s.allow("alice", shared.ObjectReview, shared.ActionApprove)
		s.reviews.On("Approve", mock.Anything, id, "alice", "").Return(models.GovernanceAction{}, shared.ErrInsufficientRole)

		rec := s.do("POST", "/api/v1/reviews/"+id.String()+"/approve", "alice", "")
		assert.Equal(t, 403, rec.Code)
	})

	t.Run("should pass the queue filter", func(t *testing.T) {
		s := newTestServer(t)
		s.allow("alice", shared.ObjectReview, shared.ActionRead)
		s.reviews.On("PendingReviews", mock.MatchedBy(func(f dtos.ReviewQueueFilter) bool {
			return f.MinPriority != nil && *f.MinPriority == 50 && f.RiskLevel != nil && *f.RiskLevel == dtos.RiskLevelHigh
		})).Return([]shared.ReviewQueueItem{}, nil)

		rec := s.do("GET", "/api/v1/reviews?minPriority=50&riskLevel=high", "alice", "")
		assert.Equal(t, 200, rec.Code)
	})

	t.Run("should reject an invalid filter", func(t *testing.T) {
		s := newTestServer(t)
		s.allow("alice", shared.ObjectReview, shared.ActionRead)

		rec := s.do("GET", "/api/v1/reviews?minPriority=high", "alice", "")
		assert.Equal(t, 400, rec.Code)
	})

	t.Run("should list escalated reviews", func(t *testing.T) {
		s := newTestServer(t)
		s.allow("bob", shared.ObjectReview, shared.ActionRead)
		s.reviews.On("EscalatedReviews").Return([]shared.ReviewQueueItem{}, nil)

		rec := s.do("GET", "/api/v1/reviews/escalated", "bob", "")
		assert.Equal(t, 200, rec.Code)
	})

	t.Run("should report bulk results per id", func(t *testing.T) {
		s := newTestServer(t)
		ok, missing := uuid.New(), uuid.New()
		s.allow("alice", shared.ObjectReview, shared.ActionApprove)
		s.reviews.On("BulkApprove", mock.Anything, []uuid.UUID{ok, missing}, "alice", "").Return([]dtos.BulkItemResult{
			{ID: ok, Success: true},
			{ID: missing, Success: false, Error: "not found"},
		})

		rec := s.do("POST", "/api/v1/reviews/bulk-approve", "alice", `{"actionIds":["`+ok.String()+`","`+missing.String()+`"]}`)
		assert.Equal(t, 200, rec.Code)

		var results []dtos.BulkItemResult
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
		assert.Len(t, results, 2)
		assert.False(t, results[1].Success)
	})

	t.Run("should require a known user action", func(t *testing.T) {
		s := newTestServer(t)
		s.allow("alice", shared.ObjectReview, shared.ActionRequireAction)

		rec := s.do("POST", "/api/v1/reviews/"+uuid.NewString()+"/require-action", "alice", `{"required":"dance"}`)
		assert.Equal(t, 400, rec.Code)
	})
}

func TestActionRoutes(t *testing.T) {
	t.Run("should validate the number of days", func(t *testing.T) {
		s := newTestServer(t)
		s.allow("bob", shared.ObjectAction, shared.ActionUpdate)

		rec := s.do("POST", "/api/v1/actions/"+uuid.NewString()+"/extend-expiry", "bob", `{"days":0}`)
		assert.Equal(t, 400, rec.Code)
	})

	t.Run("should answer 409 when releasing an inactive action", func(t *testing.T) {
		s := newTestServer(t)
		id := uuid.New()
		action := models.GovernanceAction{Model: models.Model{ID: id}}
		s.allow("bob", shared.ObjectAction, shared.ActionUpdate)
		s.actions.On("Get", id).Return(action, nil)
		s.actions.On("Release", mock.Anything, action, "bob", dtos.ReleaseCauseManual).Return(models.GovernanceAction{}, shared.ErrNotActive)

		rec := s.do("POST", "/api/v1/actions/"+id.String()+"/release", "bob", "")
		assert.Equal(t, 409, rec.Code)
	})
}

func TestRuleAndPolicyRoutes(t *testing.T) {
	t.Run("should import rules from yaml", func(t *testing.T) {
		s := newTestServer(t)
		s.allow("carol", shared.ObjectRule, shared.ActionImport)
		s.rules.On("ImportRules", mock.Anything, mock.MatchedBy(func(rules []dtos.RuleImport) bool {
			return len(rules) == 1 && rules[0].Name == "US SSN"
		})).Return(1, nil)

		body := "rules:\n  - name: US SSN\n    kind: regex\n    expression: '\\d{3}-\\d{2}-\\d{4}'\n    severity: high\n"
		req := httptest.NewRequest("POST", "/api/v1/rules/import", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, "application/yaml")
		req.Header.Set(middlewares.UserIDHeader, "carol")
		rec := httptest.NewRecorder()
		s.e.ServeHTTP(rec, req)

		assert.Equal(t, 200, rec.Code)
		assert.JSONEq(t, `{"imported":1}`, rec.Body.String())
	})

	t.Run("should refresh rules", func(t *testing.T) {
		s := newTestServer(t)
		s.allow("carol", shared.ObjectRule, shared.ActionRefresh)
		s.rules.On("Refresh", mock.Anything).Return(dtos.RuleRefreshResponse{ActiveRules: 3, Degraded: 1}, nil)

		rec := s.do("POST", "/api/v1/rules/refresh", "carol", "")
		assert.Equal(t, 200, rec.Code)
		assert.JSONEq(t, `{"activeRules":3,"degraded":1}`, rec.Body.String())
	})

	t.Run("should store the policy of the owner in the path", func(t *testing.T) {
		s := newTestServer(t)
		s.allow("carol", shared.ObjectPolicy, shared.ActionUpdate)
		s.policies.On("Upsert", mock.MatchedBy(func(p *models.PolicyConfig) bool {
			return p.OwnerID == "owner-1" && p.AutoBlockSharing && p.SensitivityThreshold == dtos.SensitivityHigh
		})).Return(nil)

		rec := s.do("PUT", "/api/v1/policies/owner-1", "carol", `{"autoScanEnabled":true,"sensitivityThreshold":"high","autoBlockSharing":true,"quarantineDays":14}`)
		assert.Equal(t, 200, rec.Code)
	})
}
