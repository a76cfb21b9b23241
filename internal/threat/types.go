package threat

import (
	"context"
	"time"
)

// Fields is one parsed input row: column or document key to raw value.
type Fields map[string]string

// Indicator is a normalized piece of threat intelligence ready to persist.
type Indicator struct {
	Value      string    `json:"indicator_value" dynamodbav:"indicator_value"`
	Type       string    `json:"indicator_type" dynamodbav:"indicator_type"`
	SourceFile string    `json:"source_file" dynamodbav:"source_file"`
	IngestedAt time.Time `json:"ingested_at" dynamodbav:"ingested_at"`
}

// ObjectRef names the single stored object an invocation processes.
type ObjectRef struct {
	Bucket string
	Key    string
}

// String renders the reference as an s3:// URL, or the bare key when no
// bucket is set (local files).
func (r ObjectRef) String() string {
	if r.Bucket == "" {
		return r.Key
	}
	return "s3://" + r.Bucket + "/" + r.Key
}

// ObjectFetcher reads the full content of a stored object.
type ObjectFetcher interface {
	Fetch(ctx context.Context, ref ObjectRef) ([]byte, error)
}

// FetcherFunc adapts a function to ObjectFetcher.
type FetcherFunc func(ctx context.Context, ref ObjectRef) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, ref ObjectRef) ([]byte, error) { return f(ctx, ref) }

// IndicatorStore persists indicators keyed by their value.
type IndicatorStore interface {
	Put(ctx context.Context, ind Indicator) error
}

// MetricsReporter emits the processed count. It never fails the caller.
type MetricsReporter interface {
	ReportProcessed(ctx context.Context, count int)
}

// SummaryPublisher announces a finished run.
type SummaryPublisher interface {
	PublishSummary(ctx context.Context, sourceFile string, processed int) error
}
