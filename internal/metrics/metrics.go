package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worklens_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "worklens_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	reportsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worklens_reports_created_total",
		Help: "Count of reports submitted, labelled by entity kind",
	}, []string{"entity_kind"})

	reportsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worklens_reports_resolved_total",
		Help: "Count of report resolutions by decision",
	}, []string{"decision"})

	bansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worklens_bans_total",
		Help: "Count of ban and unban operations by kind",
	}, []string{"kind", "action"})

	cascadeDeletes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worklens_cascade_deletes_total",
		Help: "Count of moderation content deletions by entity kind",
	}, []string{"entity_kind"})

	pendingReports = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "worklens_pending_reports",
		Help: "Number of reports awaiting resolution (sampled by digest job)",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveReportCreated increments the submitted-report counter for an entity kind.
func ObserveReportCreated(entityKind string) {
	reportsCreated.WithLabelValues(entityKind).Inc()
}

// ObserveReportResolved increments the resolution counter for a decision.
func ObserveReportResolved(decision string) {
	reportsResolved.WithLabelValues(decision).Inc()
}

// ObserveBan records a ban-engine operation. kind is "account" or "mentor",
// action is "ban" or "unban".
func ObserveBan(kind, action string) {
	bansTotal.WithLabelValues(kind, action).Inc()
}

// ObserveCascadeDelete increments the moderation deletion counter.
func ObserveCascadeDelete(entityKind string) {
	cascadeDeletes.WithLabelValues(entityKind).Inc()
}

// SetPendingReports sets the pending-report gauge.
func SetPendingReports(count int) {
	if count < 0 {
		count = 0
	}
	pendingReports.Set(float64(count))
}
