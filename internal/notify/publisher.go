// Package notify publishes the per-run ingestion summary.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"threatingest/internal/metrics"
	"threatingest/internal/threat"
)

// Subject is the fixed subject line of every summary message.
const Subject = "Threat Intel Ingest Summary"

// Summary describes one finished ingestion run.
type Summary struct {
	SourceFile          string    `json:"source_file"`
	ProcessedIndicators int       `json:"processed_indicators"`
	Timestamp           time.Time `json:"timestamp"`
}

// Channel delivers a message to subscribers.
type Channel interface {
	Publish(ctx context.Context, subject, message string) error
}

// Publisher builds run summaries and sends them over a Channel.
type Publisher struct {
	channel Channel
	now     func() time.Time
}

func NewPublisher(ch Channel) *Publisher {
	return &Publisher{channel: ch, now: time.Now}
}

// PublishSummary sends the summary for sourceFile. Unlike metric emission,
// a failure here is returned to the caller.
func (p *Publisher) PublishSummary(ctx context.Context, sourceFile string, processed int) error {
	msg, err := json.Marshal(Summary{
		SourceFile:          sourceFile,
		ProcessedIndicators: processed,
		Timestamp:           p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: encode: %w", threat.ErrPublish, err)
	}
	if err := p.channel.Publish(ctx, Subject, string(msg)); err != nil {
		metrics.SummaryPublishFailures.Inc()
		return fmt.Errorf("%w: %w", threat.ErrPublish, err)
	}
	return nil
}

// LogChannel writes messages to the structured log instead of a topic.
type LogChannel struct{}

func (LogChannel) Publish(ctx context.Context, subject, message string) error {
	slog.InfoContext(ctx, "summary", "subject", subject, "message", message)
	return nil
}
