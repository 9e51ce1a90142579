// Package workers hosts the client's background jobs.
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/ayudin/go-course-keeper/internal/logger"
)

// Syncer is the slice of the orchestrator the worker drives.
type Syncer interface {
	SyncAll(ctx context.Context) error
}

// Freshness reports whether the locally cached course data is stale
// enough to warrant a background sync.
type Freshness func(ctx context.Context) bool

// AutoSyncJob runs a full synchronization on a ticker. It is idle until
// Start is called. When a freshness check is configured, ticks that find
// the cache still fresh are skipped.
type AutoSyncJob struct {
	syncer Syncer
	stale  Freshness
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewAutoSyncJob(syncer Syncer, stale Freshness, log *logger.Logger) *AutoSyncJob {
	return &AutoSyncJob{syncer: syncer, stale: stale, logger: log}
}

// Start stops any previously running job, then launches a background
// goroutine that syncs every interval. If interval is zero or negative
// it defaults to 15 minutes. The goroutine exits when ctx is cancelled
// or Stop is called.
func (j *AutoSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if j.stale != nil && !j.stale(jobCtx) {
					j.logger.Debug().Msg("cache still fresh, skipping auto-sync")
					continue
				}
				if err := j.syncer.SyncAll(jobCtx); err != nil {
					j.logger.Warn().Err(err).Msg("background sync failed")
				}
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until it
// has fully exited. Safe to call when the job is not running.
func (j *AutoSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
