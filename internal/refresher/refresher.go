// Package refresher runs the scheduled fetch cycle that keeps the matchup
// snapshot current.
package refresher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/XavierBriggs/fortuna/services/omnibet/internal/metrics"
	"github.com/XavierBriggs/fortuna/services/omnibet/internal/snapshot"
	"github.com/XavierBriggs/fortuna/services/omnibet/internal/source"
	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
)

// ErrBusy is returned when a cycle is requested while another is running
var ErrBusy = errors.New("refresh already in progress")

// Refresh outcomes, used as the metrics status label
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusFailure = "failure"
)

// Fetcher gathers matchups for every configured sport
type Fetcher interface {
	Aggregate(ctx context.Context) (*source.Result, error)
	Sports() []string
}

// SnapshotCache persists published snapshots
type SnapshotCache interface {
	Save(ctx context.Context, snap *snapshot.Snapshot) error
}

// Config controls scheduling
type Config struct {
	Schedule string        // cron expression, e.g. "@every 5m"
	Timeout  time.Duration // per cycle
	Now      func() time.Time
}

// Refresher replaces the snapshot on a schedule. When a sport cannot be
// fetched its matchups are carried over from the previous snapshot; when
// nothing can be fetched the previous snapshot stays in place.
type Refresher struct {
	fetcher  Fetcher
	store    *snapshot.Store
	cache    SnapshotCache
	schedule string
	timeout  time.Duration
	now      func() time.Time
	metrics  *metrics.Metrics
	logger   *zap.Logger

	cron    *cron.Cron
	running sync.Mutex
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// New creates a refresher. cache may be nil.
func New(cfg Config, fetcher Fetcher, store *snapshot.Store, cache SnapshotCache, m *metrics.Metrics, logger *zap.Logger) (*Refresher, error) {
	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", cfg.Schedule, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}

	return &Refresher{
		fetcher:  fetcher,
		store:    store,
		cache:    cache,
		schedule: cfg.Schedule,
		timeout:  cfg.Timeout,
		now:      cfg.Now,
		metrics:  m,
		logger:   logger,
		cron:     cron.New(),
	}, nil
}

// RunOnce performs a single fetch cycle and publishes the result
func (r *Refresher) RunOnce(ctx context.Context) (*snapshot.Snapshot, error) {
	if !r.running.TryLock() {
		return nil, ErrBusy
	}
	defer r.running.Unlock()

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.fetcher.Aggregate(ctx)
	if err != nil {
		r.metrics.RecordRefresh(StatusFailure, time.Since(start))
		r.logger.Error("refresh failed, keeping previous snapshot", zap.Error(err))
		return nil, fmt.Errorf("refresh: %w", err)
	}

	status := StatusSuccess
	matchups := result.Matchups
	if len(result.Failed) > 0 {
		status = StatusPartial
		matchups = r.carryOver(result)
	}

	snap := r.store.Replace(matchups, r.now())
	r.metrics.RecordSnapshot(snap.Len())

	if r.cache != nil {
		if err := r.cache.Save(ctx, snap); err != nil {
			r.logger.Warn("failed to cache snapshot", zap.String("snapshot_id", snap.ID.String()), zap.Error(err))
		}
	}

	elapsed := time.Since(start)
	r.metrics.RecordRefresh(status, elapsed)
	r.logger.Info("snapshot refreshed",
		zap.String("snapshot_id", snap.ID.String()),
		zap.String("status", status),
		zap.Int("matchups", snap.Len()),
		zap.Int("rejected", result.Rejected),
		zap.Int("failed_sports", len(result.Failed)),
		zap.Duration("duration", elapsed))

	return snap, nil
}

// carryOver merges fresh matchups with the previous snapshot's matchups for
// the sports that failed, keeping the configured sport order.
func (r *Refresher) carryOver(result *source.Result) []models.Matchup {
	prev, err := r.store.Current()
	if err != nil {
		return result.Matchups
	}

	merged := make([]models.Matchup, 0, len(result.Matchups))
	for _, sport := range r.fetcher.Sports() {
		if _, failed := result.Failed[sport]; failed {
			kept := prev.BySport(sport)
			r.logger.Warn("carrying over previous matchups", zap.String("sport", sport), zap.Int("matchups", len(kept)))
			merged = append(merged, kept...)
			continue
		}
		merged = append(merged, result.PerSport[sport]...)
	}

	return merged
}

// Start runs a cycle immediately, then on the configured schedule
func (r *Refresher) Start(ctx context.Context) error {
	ctx, r.cancel = context.WithCancel(ctx)

	job := func() {
		if _, err := r.RunOnce(ctx); errors.Is(err, ErrBusy) {
			r.logger.Debug("skipping refresh, previous cycle still running")
		}
	}

	if _, err := r.cron.AddFunc(r.schedule, job); err != nil {
		r.cancel()
		return fmt.Errorf("schedule refresh: %w", err)
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		job()
	}()
	r.cron.Start()
	r.logger.Info("refresher started", zap.String("schedule", r.schedule))
	return nil
}

// Stop halts scheduling, cancels the running cycle and waits for it.
// cron.Stop already waits for scheduled jobs; wg covers the initial run.
func (r *Refresher) Stop() {
	stopped := r.cron.Stop()
	if r.cancel != nil {
		r.cancel()
	}
	<-stopped.Done()
	r.wg.Wait()
	r.logger.Info("refresher stopped")
}
