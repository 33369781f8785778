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
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/labstack/echo/v4"
)

type DaemonRunner interface {
	RunExpiry(ctx context.Context) (int, error)
	Start()
}

type LeaderElector interface {
	IsLeader() bool
}

type ConfigRepository interface {
	Save(tx DB, config *models.Config) error
	GetDB(tx DB) DB
}

type ConfigService interface {
	// retrieves the value for the given key and unmarshals it into v
	GetJSONConfig(key string, v any) error
	SetJSONConfig(key string, v any) error
	RemoveConfig(key string) error
}

type DetectionRuleRepository interface {
	Repository[uuid.UUID, models.DetectionRule]
	FindActive(tx DB) ([]models.DetectionRule, error)
	FindBySlug(tx DB, slug string) (models.DetectionRule, error)
}

type ScanRecordRepository interface {
	Repository[uuid.UUID, models.ScanRecord]
	ReadWithViolations(id uuid.UUID) (models.ScanRecord, error)
	FindByContent(contentKind, contentID string) ([]models.ScanRecord, error)
}

type ViolationRepository interface {
	Repository[uuid.UUID, models.Violation]
	FindByScanRecord(tx DB, scanRecordID uuid.UUID) ([]models.Violation, error)
	FindUnresolvedByScanRecord(tx DB, scanRecordID uuid.UUID) ([]models.Violation, error)
	// MarkResolved only touches unresolved rows. It returns false if the violation was already resolved.
	MarkResolved(tx DB, id uuid.UUID, resolver string, kind dtos.ResolutionKind, notes string, at time.Time) (bool, error)
}

type GovernanceActionRepository interface {
	Repository[uuid.UUID, models.GovernanceAction]
	// CreateIfNotActive inserts the action unless another row holds the same active key.
	CreateIfNotActive(tx DB, action *models.GovernanceAction) (bool, error)
	FindByActiveKey(tx DB, activeKey string) (models.GovernanceAction, error)
	FindByScanRecord(tx DB, scanRecordID uuid.UUID) ([]models.GovernanceAction, error)
	FindActiveRestrictions(tx DB, activeKeys []string, now time.Time) ([]models.GovernanceAction, error)
	FindPendingReviews(tx DB) ([]models.GovernanceAction, error)
	FindEscalatedReviews(tx DB) ([]models.GovernanceAction, error)
	FindExpired(tx DB, now time.Time) ([]models.GovernanceAction, error)
	// ClearActiveKey returns false if the key was already cleared.
	ClearActiveKey(tx DB, id uuid.UUID) (bool, error)
	// SaveReviewDecision writes the decision only while the stored status is still from.
	// It returns false when a concurrent decision came first.
	SaveReviewDecision(tx DB, action *models.GovernanceAction, from dtos.ActionStatus) (bool, error)
}

type PolicyConfigRepository interface {
	FindByOwner(ownerID string) (models.PolicyConfig, error)
	Upsert(tx DB, policy *models.PolicyConfig) error
}

// PolicyResolver is the policy source of the pipeline.
type PolicyResolver interface {
	GetPolicy(ownerID string) (models.PolicyConfig, error)
}

type PolicyService interface {
	PolicyResolver
	Invalidate(ownerID string)
	Upsert(policy *models.PolicyConfig) error
}

type NotificationSink interface {
	Notify(ctx context.Context, ownerID string, event dtos.NotificationEvent, payload map[string]any) error
}

type ScanService interface {
	ScanAndStore(ctx context.Context, content ContentRef, ownerID string, trigger dtos.ScanTrigger) (ScanResult, error)
	GetScan(id uuid.UUID) (models.ScanRecord, error)
	ListScansByContent(contentKind, contentID string) ([]models.ScanRecord, error)
	ResolveViolation(id uuid.UUID, resolver string, kind dtos.ResolutionKind, notes string) (models.Violation, error)
	ListUnresolvedViolations(scanID uuid.UUID) ([]models.Violation, error)
}

type GovernanceActionService interface {
	Evaluate(ctx context.Context, scan models.ScanRecord, violations []models.Violation) ([]models.GovernanceAction, error)
	Release(ctx context.Context, target models.GovernanceAction, releasedBy string, cause dtos.ReleaseCause) (models.GovernanceAction, error)
	ReleaseRestrictions(ctx context.Context, scanID uuid.UUID, releasedBy string, cause dtos.ReleaseCause) ([]models.GovernanceAction, error)
	// ReleaseRestrictionsInTx does not notify. Pass the returned releases to NotifyReleased after the commit.
	ReleaseRestrictionsInTx(tx DB, scan models.ScanRecord, releasedBy string, cause dtos.ReleaseCause) ([]models.GovernanceAction, error)
	NotifyReleased(ctx context.Context, scan models.ScanRecord, releases []models.GovernanceAction)
	ExtendExpiry(ctx context.Context, actionID uuid.UUID, days int, reviewer string) (models.GovernanceAction, error)
	ReleaseExpired(ctx context.Context, now time.Time) (int, error)
	ListByScan(scanID uuid.UUID) ([]models.GovernanceAction, error)
	Get(id uuid.UUID) (models.GovernanceAction, error)
}

type ReviewQueueService interface {
	PendingReviews(filter dtos.ReviewQueueFilter) ([]ReviewQueueItem, error)
	EscalatedReviews() ([]ReviewQueueItem, error)
	Approve(ctx context.Context, actionID uuid.UUID, reviewer string, notes string) (models.GovernanceAction, error)
	RequireUserAction(ctx context.Context, actionID uuid.UUID, reviewer string, required dtos.UserActionKind, notes string) (models.GovernanceAction, error)
	Escalate(ctx context.Context, actionID uuid.UUID, reviewer string, notes string) (models.GovernanceAction, error)
	BulkApprove(ctx context.Context, actionIDs []uuid.UUID, reviewer string, notes string) []dtos.BulkItemResult
}

type ModerationService interface {
	Process(ctx context.Context, content ContentRef, ownerID string, trigger dtos.ScanTrigger) (ModerationResult, error)
	// Govern runs only the action engine for a scan which is stored already.
	Govern(ctx context.Context, scan ScanResult) (ModerationResult, error)
}

type ScanDispatcher interface {
	// Enqueue never blocks. It returns ErrQueueFull under backpressure.
	Enqueue(job ScanJob) (string, error)
}

type DetectionRuleService interface {
	ListRules() ([]models.DetectionRule, error)
	ImportRules(ctx context.Context, rules []dtos.RuleImport) (int, error)
	Refresh(ctx context.Context) (dtos.RuleRefreshResponse, error)
}

type AccessControl interface {
	GrantRole(user string, role Role) error
	RevokeRole(user string, role Role) error
	GetRoles(user string) ([]Role, error)
	IsAllowed(user string, object Object, action Action) (bool, error)
}

type RBACMiddleware = func(obj Object, act Action) echo.MiddlewareFunc

type Role string

const (
	RoleReviewer       Role = "reviewer"
	RoleSeniorReviewer Role = "senior-reviewer"
	RoleAdmin          Role = "admin"
)

type Action string

const (
	ActionRead             Action = "read"
	ActionApprove          Action = "approve"
	ActionRequireAction    Action = "require-action"
	ActionEscalate         Action = "escalate"
	ActionApproveEscalated Action = "approve-escalated"
	ActionResolve          Action = "resolve"
	ActionUpdate           Action = "update"
	ActionRefresh          Action = "refresh"
	ActionImport           Action = "import"
)

type Object string

const (
	ObjectReview    Object = "review"
	ObjectViolation Object = "violation"
	ObjectAction    Object = "action"
	ObjectRule      Object = "rules"
	ObjectPolicy    Object = "policy"
)
