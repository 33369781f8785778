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

package router

import (
	"github.com/l3montree-dev/contentguard/controllers"
	"github.com/l3montree-dev/contentguard/middlewares"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type APIV1Router struct {
	*echo.Group
}

func NewAPIV1Router(srv *echo.Echo,
	db shared.DB,
	rbac shared.AccessControl,
	scanController *controllers.ScanController,
	violationController *controllers.ViolationController,
	reviewController *controllers.ReviewController,
	governanceActionController *controllers.GovernanceActionController,
	detectionRuleController *controllers.DetectionRuleController,
	policyController *controllers.PolicyController,
) APIV1Router {
	apiV1Router := srv.Group("/api/v1")

	apiV1Router.GET("/health/", health(db))
	apiV1Router.GET("/info/", info(db))
	apiV1Router.GET("/metrics/", echo.WrapHandler(promhttp.Handler()))

	accessControl := middlewares.AccessControlFactory(rbac)
	// everything below needs a user
	authenticated := apiV1Router.Group("", middlewares.UserIDMiddleware())

	scanRouter := authenticated.Group("/scans")
	scanRouter.POST("/", scanController.Enqueue)
	scanRouter.POST("/sync/", scanController.ScanSync)
	scanRouter.GET("/", scanController.ListByContent, accessControl(shared.ObjectViolation, shared.ActionRead))
	scanRouter.GET("/:scanId/", scanController.Read, accessControl(shared.ObjectViolation, shared.ActionRead))
	scanRouter.GET("/:scanId/violations/", scanController.ListViolations, accessControl(shared.ObjectViolation, shared.ActionRead))
	scanRouter.GET("/:scanId/actions/", scanController.ListActions, accessControl(shared.ObjectAction, shared.ActionRead))

	authenticated.POST("/violations/:violationId/resolve/", violationController.Resolve, accessControl(shared.ObjectViolation, shared.ActionResolve))

	reviewRouter := authenticated.Group("/reviews")
	reviewRouter.GET("/", reviewController.List, accessControl(shared.ObjectReview, shared.ActionRead))
	reviewRouter.GET("/escalated/", reviewController.ListEscalated, accessControl(shared.ObjectReview, shared.ActionRead))
	reviewRouter.POST("/bulk-approve/", reviewController.BulkApprove, accessControl(shared.ObjectReview, shared.ActionApprove))
	reviewRouter.POST("/:actionId/approve/", reviewController.Approve, accessControl(shared.ObjectReview, shared.ActionApprove))
	reviewRouter.POST("/:actionId/require-action/", reviewController.RequireAction, accessControl(shared.ObjectReview, shared.ActionRequireAction))
	reviewRouter.POST("/:actionId/escalate/", reviewController.Escalate, accessControl(shared.ObjectReview, shared.ActionEscalate))

	actionRouter := authenticated.Group("/actions")
	actionRouter.GET("/:actionId/", governanceActionController.Read, accessControl(shared.ObjectAction, shared.ActionRead))
	actionRouter.POST("/:actionId/extend-expiry/", governanceActionController.ExtendExpiry, accessControl(shared.ObjectAction, shared.ActionUpdate))
	actionRouter.POST("/:actionId/release/", governanceActionController.Release, accessControl(shared.ObjectAction, shared.ActionUpdate))

	ruleRouter := authenticated.Group("/rules")
	ruleRouter.GET("/", detectionRuleController.List, accessControl(shared.ObjectRule, shared.ActionRead))
	ruleRouter.POST("/refresh/", detectionRuleController.Refresh, accessControl(shared.ObjectRule, shared.ActionRefresh))
	ruleRouter.POST("/import/", detectionRuleController.Import, accessControl(shared.ObjectRule, shared.ActionImport))

	policyRouter := authenticated.Group("/policies")
	policyRouter.GET("/:ownerId/", policyController.Read, accessControl(shared.ObjectPolicy, shared.ActionRead))
	policyRouter.PUT("/:ownerId/", policyController.Update, accessControl(shared.ObjectPolicy, shared.ActionUpdate))

	return APIV1Router{Group: apiV1Router}
}
