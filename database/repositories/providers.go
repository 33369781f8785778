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

package repositories

import (
	"github.com/l3montree-dev/contentguard/shared"
	"go.uber.org/fx"
)

// Module provides all repository constructors as their interfaces
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewConfigRepository, fx.As(new(shared.ConfigRepository)))),
	fx.Provide(fx.Annotate(NewDetectionRuleRepository, fx.As(new(shared.DetectionRuleRepository)))),
	fx.Provide(fx.Annotate(NewScanRecordRepository, fx.As(new(shared.ScanRecordRepository)))),
	fx.Provide(fx.Annotate(NewViolationRepository, fx.As(new(shared.ViolationRepository)))),
	fx.Provide(fx.Annotate(NewGovernanceActionRepository, fx.As(new(shared.GovernanceActionRepository)))),
	fx.Provide(fx.Annotate(NewPolicyConfigRepository, fx.As(new(shared.PolicyConfigRepository)))),
)
