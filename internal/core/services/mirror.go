package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lieblius/docmirror/internal/core/domain"
	"github.com/lieblius/docmirror/internal/core/ports/driven"
	"github.com/lieblius/docmirror/internal/core/ports/driving"
	"github.com/lieblius/docmirror/internal/logger"
)

// Ensure MirrorOrchestrator implements the interface.
var _ driving.Mirror = (*MirrorOrchestrator)(nil)

// DefaultWorkers is the default size of the download worker pool.
// The pool bounds in-flight work; the admission gate bounds the
// request rate, so more workers never raise the outbound rate.
const DefaultWorkers = 8

// MirrorOrchestrator coordinates one mirror run end to end:
// index check, optional backup-and-rebuild, then concurrent dispatch.
type MirrorOrchestrator struct {
	index    driven.IndexSource
	fetcher  driven.Fetcher
	store    driven.MirrorStore
	archiver driven.Archiver
	policy   domain.FreshnessPolicy
	workers  int

	// Status tracking
	mu     sync.RWMutex
	status *driving.RunStatus
}

// NewMirrorOrchestrator creates a new orchestrator.
// workers <= 0 selects DefaultWorkers.
func NewMirrorOrchestrator(
	index driven.IndexSource,
	fetcher driven.Fetcher,
	store driven.MirrorStore,
	archiver driven.Archiver,
	policy domain.FreshnessPolicy,
	workers int,
) *MirrorOrchestrator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &MirrorOrchestrator{
		index:    index,
		fetcher:  fetcher,
		store:    store,
		archiver: archiver,
		policy:   policy,
		workers:  workers,
	}
}

// Run executes one mirror run.
//
// Init mode forces every download and, when the index changed and a
// mirror already exists, archives and clears the mirror first.
// Update mode never rebuilds; it skips fresh files and forces
// missing ones. Per-document failures are isolated into the report;
// only index and backup failures abort the run.
func (o *MirrorOrchestrator) Run(ctx context.Context, mode domain.Mode) (*domain.Report, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
	}
	if !o.beginRun(mode) {
		return nil, domain.ErrRunInProgress
	}
	defer o.endRun()

	if mode == domain.ModeUpdate && !o.store.Exists() {
		return nil, domain.ErrMirrorMissing
	}

	// 1. Fetch the index and detect change against the snapshot.
	idx, err := o.index.Check(ctx)
	if err != nil {
		return nil, fmt.Errorf("check index: %w", err)
	}
	logger.Info("Index lists %d documents (changed: %v)", len(idx.Entries), idx.Changed)

	report := &domain.Report{
		RunID:   uuid.NewString(),
		Mode:    mode,
		Started: time.Now(),
	}

	// 2. Rebuild: archive, then clear. Never the reverse order.
	if mode == domain.ModeInit && idx.Changed && o.store.Exists() {
		name, err := o.archiver.Archive(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrBackupFailed, err)
		}
		logger.Info("Backup created: %s", name)

		if err := o.store.Clear(); err != nil {
			return nil, fmt.Errorf("clear mirror: %w", err)
		}
		logger.Info("Removed existing mirror at %s", o.store.Root())
		report.Rebuilt = true
	}

	// 3. Dispatch and aggregate in completion order.
	for res := range o.dispatch(ctx, mode, idx.Entries) {
		report.Add(res)
		o.trackResult(res)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Complete(time.Now())
	logger.Info("Run %s complete: %d written, %d skipped, %d failed (%.1fs)",
		report.RunID, report.Written, report.Skipped, report.Failed, report.Elapsed.Seconds())
	return report, nil
}

// Status returns progress for the active run.
func (o *MirrorOrchestrator) Status() *driving.RunStatus {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.status == nil {
		return &driving.RunStatus{}
	}
	// Return a copy to avoid race conditions.
	s := *o.status
	return &s
}

// dispatch fans descriptors out to the worker pool and returns the
// channel of results, closed once every descriptor has resolved.
func (o *MirrorOrchestrator) dispatch(
	ctx context.Context,
	mode domain.Mode,
	entries []domain.Descriptor,
) <-chan domain.Result {
	// Buffered so producers never block on a slow consumer.
	results := make(chan domain.Result, len(entries))
	jobs := make(chan domain.Descriptor)

	var wg sync.WaitGroup
	for i := 0; i < o.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := range jobs {
				results <- o.fetchOne(ctx, mode, d)
			}
		}()
	}

	go func() {
		defer close(jobs)

		// Collision check: two entries mapping to one local path
		// would race on the same file, so the later entry fails.
		assigned := make(map[string]string, len(entries))
		for _, d := range entries {
			if prev, dup := assigned[d.LocalPath]; dup {
				results <- domain.Result{
					Descriptor: d,
					Outcome:    domain.OutcomeFailed,
					Err: fmt.Errorf("%w: %s already assigned to %s",
						domain.ErrPathCollision, d.LocalPath, prev),
				}
				continue
			}
			assigned[d.LocalPath] = d.URL

			select {
			case jobs <- d:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// fetchOne resolves a single descriptor to an outcome.
func (o *MirrorOrchestrator) fetchOne(ctx context.Context, mode domain.Mode, d domain.Descriptor) domain.Result {
	force := mode == domain.ModeInit

	age, exists := o.store.Age(d.LocalPath)
	if !exists {
		// Missing files are always fetched, even in update mode.
		force = true
	}

	if !o.policy.ShouldFetch(exists, age, force) {
		logger.Debug("Skipping fresh file: %s", d.LocalPath)
		return domain.Result{Descriptor: d, Outcome: domain.OutcomeSkipped}
	}

	data, err := o.fetcher.Fetch(ctx, d.DownloadURL())
	if err != nil {
		logger.Warn("Failed to download %s: %v", d.DownloadURL(), err)
		return domain.Result{Descriptor: d, Outcome: domain.OutcomeFailed, Err: err}
	}

	kind := domain.DetectKind(data)
	if err := o.store.Write(d.LocalPath, data); err != nil {
		logger.Warn("Failed to write %s: %v", d.LocalPath, err)
		return domain.Result{Descriptor: d, Outcome: domain.OutcomeFailed, Err: err}
	}

	logger.Debug("Downloaded %s -> %s (%s)", d.DownloadURL(), d.LocalPath, kind)
	return domain.Result{Descriptor: d, Outcome: domain.OutcomeWritten, Kind: kind}
}

// beginRun claims the single-run slot. Returns false if a run is
// already active.
func (o *MirrorOrchestrator) beginRun(mode domain.Mode) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.status != nil && o.status.Running {
		return false
	}
	o.status = &driving.RunStatus{Running: true, Mode: mode}
	return true
}

// endRun releases the run slot.
func (o *MirrorOrchestrator) endRun() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status = nil
}

// trackResult updates live progress counters.
func (o *MirrorOrchestrator) trackResult(res domain.Result) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.status == nil {
		return
	}
	o.status.Processed++
	if res.Outcome == domain.OutcomeFailed {
		o.status.Failed++
	}
}
