package gallery

import (
	"sync"

	"github.com/clipgallery/clipgallery-go/internal/model"
)

// Reporter receives a platform section's filtered result count. Reports are
// upserts: repeating a platform overwrites its previous count.
type Reporter func(platform model.Platform, count int)

// Results is the concurrency-safe platform result map fed by Reporters.
// Last write wins per platform.
type Results struct {
	mu     sync.Mutex
	counts model.ResultMap
}

// NewResults returns an empty result map.
func NewResults() *Results {
	return &Results{counts: make(model.ResultMap)}
}

// Report upserts the filtered count for a platform.
func (r *Results) Report(platform model.Platform, count int) {
	if platform == "" {
		return
	}
	r.mu.Lock()
	r.counts[platform] = count
	r.mu.Unlock()
}

// Snapshot returns a copy of the current counts.
func (r *Results) Snapshot() model.ResultMap {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(model.ResultMap, len(r.counts))
	for p, n := range r.counts {
		out[p] = n
	}
	return out
}
