package gallery

import (
	"context"
	"log"
	"time"

	"github.com/clipgallery/clipgallery-go/internal/model"
)

// PrefetchWorker is a periodic background job that refreshes page 1 of every
// platform store so the landing gallery serves from cache.
type PrefetchWorker struct {
	orch     *Orchestrator
	interval time.Duration
	stopCh   chan struct{}
}

// NewPrefetchWorker creates a worker that ticks every interval.
func NewPrefetchWorker(orch *Orchestrator, interval time.Duration) *PrefetchWorker {
	return &PrefetchWorker{
		orch:     orch,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the warm loop. It runs one tick immediately, then every
// interval.
func (w *PrefetchWorker) Start(ctx context.Context) {
	log.Printf("prefetch-worker: starting (interval=%s)", w.interval)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("prefetch-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("prefetch-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *PrefetchWorker) Stop() {
	close(w.stopCh)
}

// tick warms page 1 for each platform. A store sitting past page 1 is left
// alone so the worker never fights user navigation.
func (w *PrefetchWorker) tick(ctx context.Context) {
	start := time.Now()
	warmed := 0

	for _, p := range model.DefaultPlatformOrder {
		store := w.orch.Store(p)
		if store == nil {
			continue
		}
		snap := store.Snapshot()
		if snap.State == StateLoading || snap.Page.CurrentPage > 1 {
			continue
		}
		store.Refresh(ctx)
		if s := store.Snapshot(); s.State == StateError {
			log.Printf("prefetch-worker: %s: %s", p, s.Error)
			continue
		}
		warmed++
	}

	log.Printf("prefetch-worker: tick complete — %d platforms warmed (%s)",
		warmed, time.Since(start).Round(time.Millisecond))
}
