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

var ExpiryDaemonDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "contentguard_daemon_expiry_duration_seconds",
	Help:    "Duration of the expiry daemon run in seconds",
	Buckets: prometheus.DefBuckets,
})

var ExpiredActionsReleased = promauto.NewCounter(prometheus.CounterOpts{
	Name: "contentguard_daemon_expired_actions_released_total",
	Help: "The total number of restrictions released because their expiry passed",
})

var DispatcherQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "contentguard_dispatcher_queue_depth",
	Help: "The number of scan jobs waiting for a worker",
})

var DispatcherRejectedJobs = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "contentguard_dispatcher_rejected_jobs_total",
	Help: "The total number of scan jobs not accepted by the dispatcher",
}, []string{"reason"})

var DispatcherFailedJobs = promauto.NewCounter(prometheus.CounterOpts{
	Name: "contentguard_dispatcher_failed_jobs_total",
	Help: "The total number of scan jobs which failed after all attempts",
})
