package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	rt2d42 = "rt2d42"

	// Upload metrics
	uploadsTotal = "uploads_total"

	// Stage metrics
	stageDurationSeconds = "stage_duration_seconds"

	// Labels
	entityLabel = "entity"
	statusLabel = "status"
	stageLabel  = "stage"
)

var uploadsTotalLabels = []string{
	entityLabel,
	statusLabel,
}

var stageDurationLabels = []string{
	stageLabel,
}

/**
* Metrics definition
**/
var uploadsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: rt2d42,
		Name:      uploadsTotal,
		Help:      "number of records processed per Device42 entity and outcome",
	},
	uploadsTotalLabels,
)

var stageDurationMetric = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: rt2d42,
		Name:      stageDurationSeconds,
		Help:      "time spent in each migration stage",
		Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
	},
	stageDurationLabels,
)

func IncreaseUploadsTotalMetric(entity, status string) {
	labels := prometheus.Labels{
		entityLabel: entity,
		statusLabel: status,
	}
	uploadsTotalMetric.With(labels).Inc()
}

func ObserveStageDurationMetric(stage string, seconds float64) {
	labels := prometheus.Labels{
		stageLabel: stage,
	}
	stageDurationMetric.With(labels).Observe(seconds)
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(uploadsTotalMetric)
	prometheus.MustRegister(stageDurationMetric)
}
