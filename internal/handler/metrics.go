package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/Anthonytesla02/YoutubeNichePro/internal/fetcher"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/youtube"
)

// Metrics holds all Prometheus collectors for the backend.
var Metrics = struct {
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	QuotaUnitsUsed   prometheus.CounterFunc
	CacheHits        prometheus.CounterFunc
	CacheMisses      prometheus.CounterFunc
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
// Quota and cache counters read live tallies from the client and fetcher,
// the same way pool gauges read pgxpool stats.
func InitMetrics(client *youtube.Client, f *fetcher.Fetcher) {
	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nichepro_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "nichepro_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.CacheHits = prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "nichepro_cache_hits_total",
			Help: "Total cache store hits.",
		},
		func() float64 { return float64(f.CacheHits()) },
	)

	Metrics.CacheMisses = prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "nichepro_cache_misses_total",
			Help: "Total cache store misses.",
		},
		func() float64 { return float64(f.CacheMisses()) },
	)

	prometheus.MustRegister(
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.CacheHits,
		Metrics.CacheMisses,
	)

	if client != nil {
		Metrics.QuotaUnitsUsed = prometheus.NewCounterFunc(
			prometheus.CounterOpts{
				Name: "nichepro_quota_units_used_total",
				Help: "Upstream API quota units consumed since startup.",
			},
			func() float64 { return float64(client.QuotaUsed()) },
		)
		prometheus.MustRegister(Metrics.QuotaUnitsUsed)
	}
}

// MetricsMiddleware records request duration and in-flight count.
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
	if strings.HasPrefix(path, "/api/related/") {
		return "/api/related/:videoId"
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
