package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	QuotesTotal    *prometheus.CounterVec
	QuoteDuration  *prometheus.HistogramVec
	PlanDiffsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		QuotesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rateengine_quotes_total",
				Help: "Total quote fetches by source and status (ok, dropped, unavailable)",
			},
			[]string{"source", "status"},
		),
		QuoteDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rateengine_quote_duration_seconds",
				Help:    "Quote fetch+normalize duration in seconds by source",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		PlanDiffsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rateengine_plan_diffs_total",
				Help: "Total plan diff computations by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// RecordQuote records a quote fetch outcome. Implements courier.Recorder.
func (m *Metrics) RecordQuote(source, status string, duration float64) {
	m.QuotesTotal.WithLabelValues(source, status).Inc()
	m.QuoteDuration.WithLabelValues(source).Observe(duration)
}

// RecordPlanDiff records a plan diff outcome.
func (m *Metrics) RecordPlanDiff(changed bool) {
	outcome := "unchanged"
	if changed {
		outcome = "changed"
	}
	m.PlanDiffsTotal.WithLabelValues(outcome).Inc()
}
