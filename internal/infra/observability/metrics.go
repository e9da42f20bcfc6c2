package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the app.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can serve it.
	Registry *prometheus.Registry

	apiCallDuration *prometheus.HistogramVec
	apiErrors       *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. A private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once in tests.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		apiCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "homebook_api_call_duration_seconds",
				Help:    "Duration of expense API calls by resource.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"resource"},
		),
		apiErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homebook_api_errors_total",
				Help: "Total non-success responses from the expense API.",
			},
			[]string{"resource"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homebook_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homebook_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homebook_requests_total",
				Help: "Total UI requests processed.",
			},
			[]string{"status"},
		),
	}
}

// RecordAPICall records the duration of one expense API call.
func (m *Metrics) RecordAPICall(resource string, d time.Duration) {
	m.apiCallDuration.WithLabelValues(resource).Observe(d.Seconds())
}

// IncrAPIError increments the upstream error counter.
func (m *Metrics) IncrAPIError(resource string) {
	m.apiErrors.WithLabelValues(resource).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// Snapshot is a point-in-time view of the client-side counters,
// served on the operational summary endpoint.
type Snapshot struct {
	RequestsTotal float64 `json:"requests_total"`
	ErrorRate     float64 `json:"error_rate"`
	CacheHitRate  float64 `json:"cache_hit_rate"`
}

// GetSnapshot gathers current counter values.
func (m *Metrics) GetSnapshot() *Snapshot {
	success := getCounterValue(m.requestsTotal, "success")
	errored := getCounterValue(m.requestsTotal, "error")
	hits := getCounterValue(m.cacheHits, "household")
	misses := getCounterValue(m.cacheMisses, "household")

	total := success + errored
	errorRate := float64(0)
	hitRate := float64(0)
	if total > 0 {
		errorRate = errored / total
	}
	if hits+misses > 0 {
		hitRate = hits / (hits + misses)
	}

	return &Snapshot{
		RequestsTotal: total,
		ErrorRate:     errorRate,
		CacheHitRate:  hitRate,
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
