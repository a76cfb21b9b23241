// Package app assembles the ingestion pipeline from configuration.
package app

import (
	"context"
	"log/slog"

	"threatingest/internal/cloud"
	"threatingest/internal/config"
	"threatingest/internal/handler"
	"threatingest/internal/metrics"
	"threatingest/internal/notify"
	"threatingest/internal/threat"
)

// Mode selects how collaborators are wired.
type Mode int

const (
	// ModeLambda requires the table and topic and emits CloudWatch metrics.
	ModeLambda Mode = iota
	// ModeLocal falls back to an in-memory store and a log channel when the
	// table or topic is unset, and keeps metrics in Prometheus only.
	ModeLocal
)

// App is the wired pipeline plus the handles the entrypoints need.
type App struct {
	Clients  *cloud.Clients
	Pipeline *threat.Pipeline
	Handler  *handler.Handler
	// Memory is non-nil when indicators are kept in process.
	Memory *threat.MemoryStore
}

// Option adjusts the wiring.
type Option func(*options)

type options struct {
	fetcher threat.ObjectFetcher
}

// WithFetcher replaces the S3 object fetcher.
func WithFetcher(f threat.ObjectFetcher) Option {
	return func(o *options) { o.fetcher = f }
}

// Build creates the client bundle once and wires the pipeline.
func Build(ctx context.Context, cfg *config.Config, mode Mode, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	clients, err := cloud.NewClients(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a := &App{Clients: clients}

	fetcher := o.fetcher
	if fetcher == nil {
		fetcher = cloud.NewObjectStore(clients.S3)
	}

	var store threat.IndicatorStore
	if cfg.TableName != "" {
		store = cloud.NewIndicatorTable(clients.DynamoDB, cfg.TableName)
	} else {
		a.Memory = threat.NewMemoryStore()
		store = a.Memory
		slog.Warn("DDB_TABLE not set, keeping indicators in memory")
	}

	var channel notify.Channel
	if cfg.TopicARN != "" {
		channel = cloud.NewTopic(clients.SNS, cfg.TopicARN)
	} else {
		channel = notify.LogChannel{}
		slog.Warn("SNS_TOPIC_ARN not set, logging summaries instead")
	}

	var sink metrics.Sink
	if mode == ModeLambda {
		sink = cloud.NewMetricSink(clients.CloudWatch)
	}

	a.Pipeline = threat.NewPipeline(
		fetcher,
		store,
		metrics.NewReporter(sink, cfg.MetricNamespace),
		notify.NewPublisher(channel),
	)
	a.Handler = handler.New(a.Pipeline)
	return a, nil
}
