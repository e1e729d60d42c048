package gallery

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/clipgallery/clipgallery-go/internal/model"
)

// InstrumentedFetcher wraps a PageFetcher with Prometheus timing and failure
// counting. Nil collectors are skipped, so it is safe without metrics wired.
type InstrumentedFetcher struct {
	Inner    PageFetcher
	Duration prometheus.Histogram
	Failures prometheus.Counter
}

func (f *InstrumentedFetcher) FetchPage(ctx context.Context, platform model.Platform, page int) (model.Page, error) {
	start := time.Now()
	result, err := f.Inner.FetchPage(ctx, platform, page)
	if f.Duration != nil {
		f.Duration.Observe(time.Since(start).Seconds())
	}
	if err != nil && f.Failures != nil {
		f.Failures.Inc()
	}
	return result, err
}
