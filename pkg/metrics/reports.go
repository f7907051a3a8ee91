package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReportQueryMetrics records metadata for aggregation queries.
type ReportQueryMetrics struct {
	duration *prometheus.HistogramVec
	failure  *prometheus.CounterVec
}

// NewReportQueryMetrics registers the report query metrics on the provided registerer.
func NewReportQueryMetrics(reg prometheus.Registerer) *ReportQueryMetrics {
	if reg == nil {
		return &ReportQueryMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "report_query_duration_seconds",
		Help:    "Duration of report aggregation queries in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_query_failure",
		Help: "Failed report aggregation queries.",
	}, []string{"query"})
	reg.MustRegister(duration, failure)
	return &ReportQueryMetrics{
		duration: duration,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named query.
func (m *ReportQueryMetrics) ObserveDuration(query string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(query)).Observe(duration.Seconds())
}

// IncFailure increments the failure counter for the named query.
func (m *ReportQueryMetrics) IncFailure(query string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(query)).Inc()
}

func normalizeLabel(query string) string {
	if query == "" {
		return "unknown"
	}
	return query
}
