package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds all Prometheus collectors for the ClipGallery services.
var Metrics = struct {
	RequestDuration     *prometheus.HistogramVec
	RequestsInFlight    prometheus.Gauge
	PageCacheHits       prometheus.Counter
	PageCacheMisses     prometheus.Counter
	SourceFetchDuration prometheus.Histogram
	SourceFetchFailures prometheus.Counter
	DBPoolActive        prometheus.GaugeFunc
	DBPoolIdle          prometheus.GaugeFunc
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup. pool is
// nil for the gallery service, which has no database.
func InitMetrics(pool *pgxpool.Pool) {
	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clipgallery_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "clipgallery_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.PageCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clipgallery_page_cache_hits_total",
			Help: "Total page cache hits across platform stores.",
		},
	)

	Metrics.PageCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clipgallery_page_cache_misses_total",
			Help: "Total page cache misses across platform stores.",
		},
	)

	Metrics.SourceFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clipgallery_source_fetch_duration_seconds",
			Help:    "Duration of video-metadata source fetches.",
			Buckets: prometheus.DefBuckets,
		},
	)

	Metrics.SourceFetchFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clipgallery_source_fetch_failures_total",
			Help: "Total failed video-metadata source fetches.",
		},
	)

	// DB pool gauges — read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "clipgallery_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "clipgallery_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.PageCacheHits,
		Metrics.PageCacheMisses,
		Metrics.SourceFetchDuration,
		Metrics.SourceFetchFailures,
	)
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	if rest, ok := strings.CutPrefix(path, "/api/gallery/"); ok {
		switch rest {
		case "cache/clear", "filters/clear":
			return path
		}
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return "/api/gallery/:platform/" + rest[i+1:]
		}
		return "/api/gallery/:platform"
	}
	return path
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
