package metrics

import (
	"context"
	"log/slog"
	"time"
)

const (
	// ProcessedMetricName is the metric emitted once per run.
	ProcessedMetricName = "IndicatorsProcessed"
	UnitCount           = "Count"
	DefaultNamespace    = "ThreatIntelPipeline"
)

// Datum is a single metric data point.
type Datum struct {
	Namespace string
	Name      string
	Value     float64
	Unit      string
	Timestamp time.Time
}

// Sink receives metric data points.
type Sink interface {
	PutMetric(ctx context.Context, d Datum) error
}

// Reporter emits the processed-count metric on a best-effort basis.
type Reporter struct {
	sink      Sink
	namespace string
	now       func() time.Time
}

// NewReporter returns a Reporter writing to sink. A nil sink only updates
// the local Prometheus collectors.
func NewReporter(sink Sink, namespace string) *Reporter {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Reporter{sink: sink, namespace: namespace, now: time.Now}
}

// ReportProcessed emits one IndicatorsProcessed data point. Failures are
// logged and counted; they never reach the caller.
func (r *Reporter) ReportProcessed(ctx context.Context, count int) {
	IndicatorsProcessed.Add(float64(count))
	if r.sink == nil {
		return
	}

	d := Datum{
		Namespace: r.namespace,
		Name:      ProcessedMetricName,
		Value:     float64(count),
		Unit:      UnitCount,
		Timestamp: r.now().UTC(),
	}
	if err := r.sink.PutMetric(ctx, d); err != nil {
		MetricEmitFailures.Inc()
		slog.Warn("could not put metric data", "metric", d.Name, "value", count, "err", err)
	}
}
