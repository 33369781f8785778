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

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var RuleCompileErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "contentguard_rule_compile_errors_total",
	Help: "The total number of detection rules which could not be compiled",
})

var ActiveDetectionRules = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "contentguard_active_detection_rules",
	Help: "The number of detection rules in the current registry snapshot",
})

var ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "contentguard_scan_duration_seconds",
	Help:    "Duration of content scans including persistence in seconds",
	Buckets: prometheus.DefBuckets,
})

var ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "contentguard_scans_total",
	Help: "The total number of scans by status",
}, []string{"status"})

var ViolationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "contentguard_violations_total",
	Help: "The total number of violations by severity",
}, []string{"severity"})

var GovernanceActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "contentguard_governance_actions_total",
	Help: "The total number of created governance actions by kind",
}, []string{"kind"})

var NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "contentguard_notification_failures_total",
	Help: "The total number of notifications which could not be delivered",
})
