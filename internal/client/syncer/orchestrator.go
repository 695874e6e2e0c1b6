package syncer

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/planner/internal/logging"
)

// Orchestrator runs full sync passes, at most one at a time.
type Orchestrator struct {
	running atomic.Bool
	rec     *Reconciler
	log     logging.Logger
}

func NewOrchestrator(rec *Reconciler, log logging.Logger) *Orchestrator {
	return &Orchestrator{rec: rec, log: log}
}

// SyncAll downloads every collection in dependency order. When a pass is
// already running it returns immediately with ok == false and touches
// neither the server nor the store.
func (o *Orchestrator) SyncAll(ctx context.Context) (rep Report, ok bool) {
	if !o.running.CompareAndSwap(false, true) {
		o.log.Debug(ctx, "sync already in progress")
		return Report{}, false
	}
	defer o.running.Store(false)

	o.log.Info(ctx, "sync started")
	rep = o.rec.DownloadAll(ctx)
	o.log.Info(ctx, "sync finished",
		"duration", rep.Finished.Sub(rep.Started),
		"failed_stages", len(rep.Failed()),
		"aborted", rep.Err != nil)
	return rep, true
}

// Running reports whether a pass is in progress.
func (o *Orchestrator) Running() bool { return o.running.Load() }

// Run calls SyncAll every interval until ctx is done. Ticks for which
// online returns false are skipped; a nil online means always online.
func (o *Orchestrator) Run(ctx context.Context, interval time.Duration, online func() bool) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if online != nil && !online() {
				continue
			}
			o.SyncAll(ctx)
		}
	}
}
