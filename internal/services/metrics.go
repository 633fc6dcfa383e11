package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all custom Prometheus metrics for the pipeline
type Metrics struct {
	// Scheduled job metrics
	JobRuns        *prometheus.CounterVec
	JobDuration    *prometheus.HistogramVec
	UsersProcessed *prometheus.CounterVec

	// Document writes by collection
	RecordsWritten *prometheus.CounterVec

	// Pattern detector hits
	DetectorHits *prometheus.CounterVec

	// Ingest metrics
	SignalsIngested prometheus.Counter
	SignalsRejected prometheus.Counter

	// Push delivery by outcome
	PushDeliveries *prometheus.CounterVec
}

var globalMetrics *Metrics

// InitMetrics initializes the Prometheus metrics
func InitMetrics() *Metrics {
	metrics := &Metrics{
		JobRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "auralog_job_runs_total",
			Help: "Total scheduled job runs by job name and status",
		}, []string{"job", "status"}), // status: "ok" or "error"

		JobDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "auralog_job_duration_seconds",
			Help:    "Scheduled job run duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
		}, []string{"job"}),

		UsersProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "auralog_job_users_processed_total",
			Help: "Users processed per job by outcome",
		}, []string{"job", "outcome"}), // outcome: "ok", "skipped", "error"

		RecordsWritten: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "auralog_records_written_total",
			Help: "Derived records written by collection",
		}, []string{"collection"}),

		DetectorHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "auralog_detector_hits_total",
			Help: "Pattern detector positive detections by detector",
		}, []string{"detector"}),

		SignalsIngested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "auralog_signals_ingested_total",
			Help: "Raw signal events accepted by the ingest endpoint",
		}),

		SignalsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "auralog_signals_rejected_total",
			Help: "Raw signal events rejected by validation",
		}),

		PushDeliveries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "auralog_push_deliveries_total",
			Help: "Push notification deliveries by outcome",
		}, []string{"outcome"}), // outcome: "ok", "invalid_token", "error"
	}

	globalMetrics = metrics
	return metrics
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	return globalMetrics
}

// RecordJobRun records a completed job run.
func (m *Metrics) RecordJobRun(job string, seconds float64, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.JobRuns.WithLabelValues(job, status).Inc()
	m.JobDuration.WithLabelValues(job).Observe(seconds)
}

// RecordUserOutcome records a per-user outcome within a batch job.
func (m *Metrics) RecordUserOutcome(job, outcome string) {
	m.UsersProcessed.WithLabelValues(job, outcome).Inc()
}

// RecordWrite records a derived record write.
func (m *Metrics) RecordWrite(collection string) {
	m.RecordsWritten.WithLabelValues(collection).Inc()
}

// RecordDetectorHit records a positive pattern detection.
func (m *Metrics) RecordDetectorHit(detector string) {
	m.DetectorHits.WithLabelValues(detector).Inc()
}
