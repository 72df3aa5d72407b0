package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wellspring_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// SessionsPublished counts draft sessions transitioned to published.
	SessionsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wellspring_sessions_published_total",
		Help: "Total number of sessions published",
	})

	// CompletionsRecorded counts completion records written, labeled by category.
	CompletionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wellspring_completions_recorded_total",
		Help: "Total number of session completions recorded",
	}, []string{"category"})

	// EngagementToggles counts follow/like toggle operations by kind and direction.
	EngagementToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wellspring_engagement_toggles_total",
		Help: "Total number of engagement toggles by kind (follow, like) and direction (on, off)",
	}, []string{"kind", "direction"})

	// DashboardRequests counts dashboard aggregations by period and whether any
	// sub-aggregation degraded.
	DashboardRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wellspring_dashboard_requests_total",
		Help: "Total number of dashboard aggregations by period and result",
	}, []string{"period", "result"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
