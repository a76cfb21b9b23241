package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IndicatorsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ti_indicators_processed_total",
			Help: "Indicators written to the record store",
		},
	)

	IndicatorsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ti_indicators_skipped_total",
			Help: "Records skipped because no indicator value was found",
		},
	)

	DuplicateIndicators = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ti_indicators_duplicate_in_file_total",
			Help: "Indicator values seen more than once within a single file",
		},
	)

	IndicatorsByType = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ti_indicators_by_type_total",
			Help: "Indicators written, by indicator type",
		},
		[]string{"indicator_type"},
	)

	RecordsParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ti_records_parsed_total",
			Help: "Records decoded from input files",
		},
		[]string{"format"},
	)

	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ti_run_duration_seconds",
			Help:    "Time spent processing one object",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"outcome"},
	)

	MetricEmitFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ti_metric_emit_failures_total",
			Help: "Failed attempts to emit the processed-count metric",
		},
	)

	SummaryPublishFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ti_summary_publish_failures_total",
			Help: "Failed attempts to publish a run summary",
		},
	)
)
