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

package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/l3montree-dev/contentguard/monitoring"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/l3montree-dev/contentguard/utils"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

type ScanDispatcher struct {
	moderationService shared.ModerationService

	queue chan shared.ScanJob
	// accepted holds the idempotency keys of queued, running and recently finished jobs
	accepted *expirable.LRU[string, struct{}]
	retries  *rate.Limiter

	workers     int
	jobTimeout  time.Duration
	maxAttempts int

	mu      sync.Mutex
	stopped bool
}

func NewScanDispatcher(moderationService shared.ModerationService, cfg shared.ModerationConfig) *ScanDispatcher {
	c := cfg.Dispatcher
	return &ScanDispatcher{
		moderationService: moderationService,
		queue:             make(chan shared.ScanJob, max(c.QueueSize, 1)),
		accepted:          expirable.NewLRU[string, struct{}](max(c.DedupeSize, 1), nil, c.DedupeTTL),
		retries:           rate.NewLimiter(rate.Limit(max(c.RetryRate, 0.1)), 1),
		workers:           max(c.Workers, 1),
		jobTimeout:        c.JobTimeout,
		maxAttempts:       max(c.MaxAttempts, 1),
	}
}

// Enqueue never blocks. It returns shared.ErrQueueFull under backpressure and
// shared.ErrDuplicateJob for a job which was accepted recently.
func (d *ScanDispatcher) Enqueue(job shared.ScanJob) (string, error) {
	key := job.IdempotencyKey()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		monitoring.DispatcherRejectedJobs.WithLabelValues("stopped").Inc()
		return key, shared.ErrQueueFull
	}
	if d.accepted.Contains(key) {
		monitoring.DispatcherRejectedJobs.WithLabelValues("duplicate").Inc()
		return key, shared.ErrDuplicateJob
	}

	select {
	case d.queue <- job:
		d.accepted.Add(key, struct{}{})
		monitoring.DispatcherQueueDepth.Set(float64(len(d.queue)))
		return key, nil
	default:
		monitoring.DispatcherRejectedJobs.WithLabelValues("full").Inc()
		return key, shared.ErrQueueFull
	}
}

// Run processes jobs until the context is canceled. Jobs still queued at that point are dropped.
func (d *ScanDispatcher) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < d.workers; i++ {
		g.Go(func() error {
			d.work(ctx)
			return nil
		})
	}
	err := g.Wait()

	d.mu.Lock()
	d.stopped = true
	dropped := len(d.queue)
	d.mu.Unlock()
	if dropped > 0 {
		slog.Warn("scan dispatcher stopped with queued jobs", "dropped", dropped)
	}
	return err
}

func (d *ScanDispatcher) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-d.queue:
			monitoring.DispatcherQueueDepth.Set(float64(len(d.queue)))
			d.process(ctx, job)
		}
	}
}

// attempt scans and governs the job. Once a scan is stored, later attempts only govern it.
func (d *ScanDispatcher) attempt(ctx context.Context, job shared.ScanJob, stored *shared.ScanResult) (result shared.ModerationResult, err error) {
	if d.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.jobTimeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scan job panicked: %v", r)
		}
	}()
	if stored != nil {
		return d.moderationService.Govern(ctx, *stored)
	}
	return d.moderationService.Process(ctx, job.Content, job.OwnerID, job.Trigger)
}

func (d *ScanDispatcher) process(ctx context.Context, job shared.ScanJob) {
	var err error
	var stored *shared.ScanResult
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		if attempt > 1 {
			if waitErr := d.retries.Wait(ctx); waitErr != nil {
				err = waitErr
				break
			}
		}
		var result shared.ModerationResult
		result, err = d.attempt(ctx, job, stored)
		if err == nil {
			return
		}
		if stored == nil && result.Scan.Record.ID != uuid.Nil {
			stored = utils.Ptr(result.Scan)
		}
		slog.Warn("scan job failed", "attempt", attempt, "contentKind", job.Content.Kind(), "contentId", job.Content.ID(), "scanStored", stored != nil, "err", err)
	}

	monitoring.DispatcherFailedJobs.Inc()
	monitoring.Alert("scan job failed permanently", err)
	// a failed job may be submitted again
	d.accepted.Remove(job.IdempotencyKey())
}
